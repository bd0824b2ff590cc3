package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/maleksellami/caisse-backend/internal/domain/entity"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

var _ repository.ConflictRepository = (*ConflictRepo)(nil)

const conflictColumns = `id, tour_id, quantite_perdue, montant_dette_tnd,
		depasse_tolerance, statut, notes_direction, direction_id_approbation,
		date_approbation, created_at`

// ConflictRepo implémentation de ConflictRepository sur PostgreSQL (pool ou tx).
type ConflictRepo struct {
	q Querier
}

// NewConflictRepository construit l'adaptateur. Passer un pool ou une tx (Querier).
func NewConflictRepository(q Querier) *ConflictRepo {
	return &ConflictRepo{q: q}
}

func scanConflict(row rowScanner) (*entity.Conflict, error) {
	var c entity.Conflict
	err := row.Scan(
		&c.ID, &c.TourID, &c.QuantitePerdue, &c.MontantDetteTND,
		&c.DepasseTolerance, &c.Statut, &c.NotesDirection, &c.DirectionIDApprobation,
		&c.DateApprobation, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create insère un conflit.
func (r *ConflictRepo) Create(c *entity.Conflict) error {
	query := `
		INSERT INTO conflicts (` + conflictColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.TourID, c.QuantitePerdue, c.MontantDetteTND,
		c.DepasseTolerance, c.Statut, c.NotesDirection, c.DirectionIDApprobation,
		c.DateApprobation, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create conflict: %w", err)
	}
	return nil
}

// GetByID charge un conflit. nil, nil si inexistant.
func (r *ConflictRepo) GetByID(id string) (*entity.Conflict, error) {
	query := `SELECT ` + conflictColumns + ` FROM conflicts WHERE id = $1`
	c, err := scanConflict(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conflict: %w", err)
	}
	return c, nil
}

// GetForUpdate charge un conflit en verrouillant sa ligne. nil, nil si inexistant.
func (r *ConflictRepo) GetForUpdate(id string) (*entity.Conflict, error) {
	query := `SELECT ` + conflictColumns + ` FROM conflicts WHERE id = $1 FOR UPDATE`
	c, err := scanConflict(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conflict for update: %w", err)
	}
	return c, nil
}

// Update réécrit les colonnes de résolution d'un conflit.
func (r *ConflictRepo) Update(c *entity.Conflict) error {
	query := `
		UPDATE conflicts SET
			statut = $2, notes_direction = $3, direction_id_approbation = $4,
			date_approbation = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Statut, c.NotesDirection, c.DirectionIDApprobation, c.DateApprobation,
	)
	if err != nil {
		return fmt.Errorf("update conflict: %w", err)
	}
	return nil
}

// List retourne une page de conflits, les plus récents d'abord.
func (r *ConflictRepo) List(statut string, limit, offset int) ([]*entity.Conflict, error) {
	var rows pgx.Rows
	var err error
	if statut != "" {
		query := `SELECT ` + conflictColumns + ` FROM conflicts
			WHERE statut = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		rows, err = r.q.Query(context.Background(), query, statut, limit, offset)
	} else {
		query := `SELECT ` + conflictColumns + ` FROM conflicts
			ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		rows, err = r.q.Query(context.Background(), query, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("list conflicts: %w", err)
	}
	defer rows.Close()
	return collectConflicts(rows)
}

// ListUrgent retourne les conflits en attente pour le triage Direction:
// hors tolérance d'abord, puis quantité perdue décroissante, puis les plus anciens.
func (r *ConflictRepo) ListUrgent(limit int) ([]*entity.Conflict, error) {
	query := `SELECT ` + conflictColumns + ` FROM conflicts
		WHERE statut = $1
		ORDER BY depasse_tolerance DESC, quantite_perdue DESC, created_at ASC
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, entity.ConflictStatutEnAttente, limit)
	if err != nil {
		return nil, fmt.Errorf("list urgent conflicts: %w", err)
	}
	defer rows.Close()
	return collectConflicts(rows)
}

// ListByDriver retourne les conflits des tournées d'un chauffeur, les plus récents d'abord.
func (r *ConflictRepo) ListByDriver(driverID string, limit int) ([]*entity.Conflict, error) {
	query := `SELECT c.id, c.tour_id, c.quantite_perdue, c.montant_dette_tnd,
			c.depasse_tolerance, c.statut, c.notes_direction, c.direction_id_approbation,
			c.date_approbation, c.created_at
		FROM conflicts c
		JOIN tours t ON t.id = c.tour_id
		WHERE t.driver_id = $1
		ORDER BY c.created_at DESC
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, driverID, limit)
	if err != nil {
		return nil, fmt.Errorf("list conflicts by driver: %w", err)
	}
	defer rows.Close()
	return collectConflicts(rows)
}

func collectConflicts(rows pgx.Rows) ([]*entity.Conflict, error) {
	var conflicts []*entity.Conflict
	for rows.Next() {
		c, err := scanConflict(rows)
		if err != nil {
			return nil, fmt.Errorf("scan conflict: %w", err)
		}
		conflicts = append(conflicts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows conflicts: %w", err)
	}
	return conflicts, nil
}
