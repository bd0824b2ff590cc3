package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/maleksellami/caisse-backend/internal/domain/entity"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

var _ repository.DriverRepository = (*DriverRepo)(nil)

const driverColumns = `id, nom_complet, matricule_par_defaut, marque_vehicule,
		tolerance_caisses_mensuelle, statut, created_at, updated_at`

// DriverRepo implémentation de DriverRepository sur PostgreSQL (pool ou tx).
type DriverRepo struct {
	q Querier
}

// NewDriverRepository construit l'adaptateur. Passer un pool ou une tx (Querier).
func NewDriverRepository(q Querier) *DriverRepo {
	return &DriverRepo{q: q}
}

func scanDriver(row rowScanner) (*entity.Driver, error) {
	var d entity.Driver
	err := row.Scan(
		&d.ID, &d.NomComplet, &d.MatriculeParDefaut, &d.MarqueVehicule,
		&d.ToleranceCaissesMensuelle, &d.Statut, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create insère un chauffeur.
func (r *DriverRepo) Create(d *entity.Driver) error {
	query := `
		INSERT INTO drivers (` + driverColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.NomComplet, d.MatriculeParDefaut, d.MarqueVehicule,
		d.ToleranceCaissesMensuelle, d.Statut, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create driver: %w", err)
	}
	return nil
}

// GetByID charge un chauffeur. nil, nil si inexistant.
func (r *DriverRepo) GetByID(id string) (*entity.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`
	d, err := scanDriver(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver: %w", err)
	}
	return d, nil
}

// List retourne tous les chauffeurs, par nom.
func (r *DriverRepo) List() ([]*entity.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers ORDER BY nom_complet`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()

	var drivers []*entity.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows drivers: %w", err)
	}
	return drivers, nil
}

// UpdateStatut met à jour le statut opérationnel d'un chauffeur.
func (r *DriverRepo) UpdateStatut(id, statut string) error {
	query := `UPDATE drivers SET statut = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, statut)
	if err != nil {
		return fmt.Errorf("update driver statut: %w", err)
	}
	return nil
}
