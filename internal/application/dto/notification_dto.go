package dto

import (
	"time"

	"github.com/maleksellami/caisse-backend/internal/domain/entity"
)

// NotificationDTO message de la boîte de réception.
type NotificationDTO struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Message    string    `json:"message"`
	TourID     *string   `json:"tour_id,omitempty"`
	ConflictID *string   `json:"conflict_id,omitempty"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToNotificationDTO convertit l'entité en DTO.
func ToNotificationDTO(n *entity.Notification) NotificationDTO {
	return NotificationDTO{
		ID:         n.ID,
		Type:       n.Type,
		Message:    n.Message,
		TourID:     n.TourID,
		ConflictID: n.ConflictID,
		IsRead:     n.IsRead,
		CreatedAt:  n.CreatedAt,
	}
}

// UnreadCountResponse compteur de notifications non lues.
type UnreadCountResponse struct {
	Count int `json:"count"`
}
