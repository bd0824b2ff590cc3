package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/maleksellami/caisse-backend/internal/domain/entity"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

var _ repository.TourRepository = (*TourRepo)(nil)

const tourColumns = `id, matricule_vehicule, driver_id, secteur_id, statut,
		nbre_caisses_depart, nbre_caisses_retour,
		poids_vide, poids_brut_sortie, poids_brut_retour, poids_tare, poids_net_calcule,
		agent_controle_id, securite_id_sortie, securite_id_entree, agent_hygiene_id,
		photo_depart_url, photo_retour_url, photos_hygiene, notes_hygiene, statut_hygiene,
		produits_poulet, date_pesee_vide, date_chargement, date_sortie, date_entree,
		date_retour_controle, date_hygiene, created_at, updated_at`

// TourRepo implémentation de TourRepository sur PostgreSQL (pool ou tx).
type TourRepo struct {
	q Querier
}

// NewTourRepository construit l'adaptateur. Passer un pool ou une tx (Querier).
func NewTourRepository(q Querier) *TourRepo {
	return &TourRepo{q: q}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTour(row rowScanner) (*entity.Tour, error) {
	var t entity.Tour
	err := row.Scan(
		&t.ID, &t.MatriculeVehicule, &t.DriverID, &t.SecteurID, &t.Statut,
		&t.NbreCaissesDepart, &t.NbreCaissesRetour,
		&t.PoidsVide, &t.PoidsBrutSortie, &t.PoidsBrutRetour, &t.PoidsTare, &t.PoidsNetCalcule,
		&t.AgentControleID, &t.SecuriteIDSortie, &t.SecuriteIDEntree, &t.AgentHygieneID,
		&t.PhotoDepartURL, &t.PhotoRetourURL, &t.PhotosHygiene, &t.NotesHygiene, &t.StatutHygiene,
		&t.ProduitsPoulet, &t.DatePeseeVide, &t.DateChargement, &t.DateSortie, &t.DateEntree,
		&t.DateRetourControle, &t.DateHygiene, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create insère une tournée.
func (r *TourRepo) Create(t *entity.Tour) error {
	query := `
		INSERT INTO tours (` + tourColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.MatriculeVehicule, t.DriverID, t.SecteurID, t.Statut,
		t.NbreCaissesDepart, t.NbreCaissesRetour,
		t.PoidsVide, t.PoidsBrutSortie, t.PoidsBrutRetour, t.PoidsTare, t.PoidsNetCalcule,
		t.AgentControleID, t.SecuriteIDSortie, t.SecuriteIDEntree, t.AgentHygieneID,
		t.PhotoDepartURL, t.PhotoRetourURL, t.PhotosHygiene, t.NotesHygiene, t.StatutHygiene,
		t.ProduitsPoulet, t.DatePeseeVide, t.DateChargement, t.DateSortie, t.DateEntree,
		t.DateRetourControle, t.DateHygiene, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create tour: %w", err)
	}
	return nil
}

// GetByID charge une tournée. nil, nil si inexistante.
func (r *TourRepo) GetByID(id string) (*entity.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours WHERE id = $1`
	t, err := scanTour(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tour: %w", err)
	}
	return t, nil
}

// GetForUpdate charge une tournée en verrouillant sa ligne. nil, nil si inexistante.
func (r *TourRepo) GetForUpdate(id string) (*entity.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours WHERE id = $1 FOR UPDATE`
	t, err := scanTour(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tour for update: %w", err)
	}
	return t, nil
}

// Update réécrit les colonnes mutables d'une tournée.
func (r *TourRepo) Update(t *entity.Tour) error {
	query := `
		UPDATE tours SET
			matricule_vehicule = $2, driver_id = $3, secteur_id = $4, statut = $5,
			nbre_caisses_depart = $6, nbre_caisses_retour = $7,
			poids_vide = $8, poids_brut_sortie = $9, poids_brut_retour = $10,
			poids_tare = $11, poids_net_calcule = $12,
			agent_controle_id = $13, securite_id_sortie = $14, securite_id_entree = $15,
			agent_hygiene_id = $16, photo_depart_url = $17, photo_retour_url = $18,
			photos_hygiene = $19, notes_hygiene = $20, statut_hygiene = $21,
			produits_poulet = $22, date_pesee_vide = $23, date_chargement = $24,
			date_sortie = $25, date_entree = $26, date_retour_controle = $27,
			date_hygiene = $28, updated_at = $29
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.MatriculeVehicule, t.DriverID, t.SecteurID, t.Statut,
		t.NbreCaissesDepart, t.NbreCaissesRetour,
		t.PoidsVide, t.PoidsBrutSortie, t.PoidsBrutRetour, t.PoidsTare, t.PoidsNetCalcule,
		t.AgentControleID, t.SecuriteIDSortie, t.SecuriteIDEntree, t.AgentHygieneID,
		t.PhotoDepartURL, t.PhotoRetourURL, t.PhotosHygiene, t.NotesHygiene, t.StatutHygiene,
		t.ProduitsPoulet, t.DatePeseeVide, t.DateChargement, t.DateSortie, t.DateEntree,
		t.DateRetourControle, t.DateHygiene, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tour: %w", err)
	}
	return nil
}

// List retourne une page de tournées, les plus récentes d'abord.
func (r *TourRepo) List(filter repository.TourFilter) ([]*entity.Tour, error) {
	var conditions []string
	var args []any
	if filter.Statut != "" {
		args = append(args, filter.Statut)
		conditions = append(conditions, fmt.Sprintf("statut = $%d", len(args)))
	}
	if filter.Matricule != "" {
		args = append(args, "%"+filter.Matricule+"%")
		conditions = append(conditions, fmt.Sprintf("matricule_vehicule ILIKE $%d", len(args)))
	}

	query := `SELECT ` + tourColumns + ` FROM tours`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tours: %w", err)
	}
	defer rows.Close()
	return collectTours(rows)
}

// ListActive retourne les tournées non terminées, les plus récentes d'abord.
func (r *TourRepo) ListActive(limit int) ([]*entity.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours
		WHERE statut <> $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, entity.TourStatutTerminee, limit)
	if err != nil {
		return nil, fmt.Errorf("list active tours: %w", err)
	}
	defer rows.Close()
	return collectTours(rows)
}

// LatestMatricule retourne le matricule de la tournée la plus récente ("" si aucune).
func (r *TourRepo) LatestMatricule() (string, error) {
	query := `SELECT matricule_vehicule FROM tours
		WHERE matricule_vehicule <> '' ORDER BY created_at DESC LIMIT 1`
	var matricule string
	err := r.q.QueryRow(context.Background(), query).Scan(&matricule)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("latest matricule: %w", err)
	}
	return matricule, nil
}

func collectTours(rows pgx.Rows) ([]*entity.Tour, error) {
	var tours []*entity.Tour
	for rows.Next() {
		t, err := scanTour(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tour: %w", err)
		}
		tours = append(tours, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows tours: %w", err)
	}
	return tours, nil
}
