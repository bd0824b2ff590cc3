package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/maleksellami/caisse-backend/internal/domain/entity"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

var _ repository.ConfigRepository = (*ConfigRepo)(nil)

// ConfigRepo implémentation de ConfigRepository sur PostgreSQL (pool ou tx).
type ConfigRepo struct {
	q Querier
}

// NewConfigRepository construit l'adaptateur. Passer un pool ou une tx (Querier).
func NewConfigRepository(q Querier) *ConfigRepo {
	return &ConfigRepo{q: q}
}

// Get charge la configuration caisse. nil, nil si aucune ligne.
func (r *ConfigRepo) Get() (*entity.CaisseConfig, error) {
	query := `SELECT id, valeur_tnd, updated_at FROM caisse_configs LIMIT 1`
	var c entity.CaisseConfig
	err := r.q.QueryRow(context.Background(), query).Scan(&c.ID, &c.ValeurTND, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get caisse config: %w", err)
	}
	return &c, nil
}

// Upsert insère ou réécrit la ligne unique de configuration.
func (r *ConfigRepo) Upsert(c *entity.CaisseConfig) error {
	query := `
		INSERT INTO caisse_configs (id, valeur_tnd, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (verrou) DO UPDATE SET
			valeur_tnd = EXCLUDED.valeur_tnd,
			updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(context.Background(), query, c.ID, c.ValeurTND, c.UpdatedAt); err != nil {
		return fmt.Errorf("upsert caisse config: %w", err)
	}
	return nil
}
