package repository

import "github.com/maleksellami/caisse-backend/internal/domain/entity"

// NotificationRepository définit le port de persistance des notifications (DIP).
type NotificationRepository interface {
	CreateMany(notifications []*entity.Notification) error
	ListByUser(userID string, limit int) ([]*entity.Notification, error)
	// MarkRead marque la notification lue si elle appartient à userID.
	// Retourne le nombre de lignes touchées (0 si inexistante ou autre utilisateur).
	MarkRead(id, userID string) (int, error)
	MarkAllRead(userID string) error
	CountUnread(userID string) (int, error)
}
