package repository

import "github.com/maleksellami/caisse-backend/internal/domain/entity"

// ConfigRepository définit le port de la configuration caisse (ligne unique, nullable).
type ConfigRepository interface {
	// Get retourne nil, nil si aucune configuration n'existe (le caller applique le repli).
	Get() (*entity.CaisseConfig, error)
	Upsert(cfg *entity.CaisseConfig) error
}
