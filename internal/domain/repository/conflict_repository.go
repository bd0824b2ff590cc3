package repository

import "github.com/maleksellami/caisse-backend/internal/domain/entity"

// ConflictRepository définit le port de persistance des conflits (DIP).
type ConflictRepository interface {
	Create(conflict *entity.Conflict) error
	GetByID(id string) (*entity.Conflict, error)
	// GetForUpdate verrouille la ligne du conflit pour la résolution:
	// deux approbations simultanées ne peuvent pas passer toutes les deux.
	GetForUpdate(id string) (*entity.Conflict, error)
	Update(conflict *entity.Conflict) error
	List(statut string, limit, offset int) ([]*entity.Conflict, error)
	// ListUrgent retourne les conflits EN_ATTENTE classés pour le triage Direction:
	// hors tolérance d'abord, puis quantité perdue décroissante, puis les plus anciens.
	ListUrgent(limit int) ([]*entity.Conflict, error)
	ListByDriver(driverID string, limit int) ([]*entity.Conflict, error)
}
