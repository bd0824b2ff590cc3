package entity

import "time"

// Types de notification internes.
const (
	NotificationConflict        = "CONFLICT"
	NotificationHygieneRequired = "HYGIENE_REQUIRED"
	NotificationHygieneReject   = "HYGIENE_REJECT"
)

// Notification message persisté dans la boîte de réception d'un utilisateur.
type Notification struct {
	ID         string
	UserID     string
	Type       string
	Message    string
	TourID     *string
	ConflictID *string
	IsRead     bool
	CreatedAt  time.Time
}
