package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/maleksellami/caisse-backend/internal/domain/entity"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

var _ repository.SecteurRepository = (*SecteurRepo)(nil)

// SecteurRepo implémentation de SecteurRepository sur PostgreSQL (pool ou tx).
type SecteurRepo struct {
	q Querier
}

// NewSecteurRepository construit l'adaptateur. Passer un pool ou une tx (Querier).
func NewSecteurRepository(q Querier) *SecteurRepo {
	return &SecteurRepo{q: q}
}

// GetByID charge un secteur. nil, nil si inexistant.
func (r *SecteurRepo) GetByID(id string) (*entity.Secteur, error) {
	query := `SELECT id, nom, created_at FROM secteurs WHERE id = $1`
	var s entity.Secteur
	err := r.q.QueryRow(context.Background(), query, id).Scan(&s.ID, &s.Nom, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get secteur: %w", err)
	}
	return &s, nil
}

// List retourne tous les secteurs, par nom.
func (r *SecteurRepo) List() ([]*entity.Secteur, error) {
	query := `SELECT id, nom, created_at FROM secteurs ORDER BY nom`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list secteurs: %w", err)
	}
	defer rows.Close()

	var secteurs []*entity.Secteur
	for rows.Next() {
		var s entity.Secteur
		if err := rows.Scan(&s.ID, &s.Nom, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan secteur: %w", err)
		}
		secteurs = append(secteurs, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows secteurs: %w", err)
	}
	return secteurs, nil
}

// UpsertByNom retourne le secteur portant ce nom, en le créant au besoin.
func (r *SecteurRepo) UpsertByNom(nom string) (*entity.Secteur, error) {
	query := `
		INSERT INTO secteurs (id, nom, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (nom) DO UPDATE SET nom = EXCLUDED.nom
		RETURNING id, nom, created_at`
	var s entity.Secteur
	err := r.q.QueryRow(context.Background(), query, uuid.NewString(), nom).Scan(&s.ID, &s.Nom, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert secteur: %w", err)
	}
	return &s, nil
}
