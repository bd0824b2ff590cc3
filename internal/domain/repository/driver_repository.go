package repository

import "github.com/maleksellami/caisse-backend/internal/domain/entity"

// DriverRepository définit le port de persistance des chauffeurs (DIP).
type DriverRepository interface {
	Create(driver *entity.Driver) error
	GetByID(id string) (*entity.Driver, error)
	List() ([]*entity.Driver, error)
	UpdateStatut(id, statut string) error
}
