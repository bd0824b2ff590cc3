package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/maleksellami/caisse-backend/internal/domain/entity"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implémentation de NotificationRepository sur PostgreSQL (pool ou tx).
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construit l'adaptateur. Passer un pool ou une tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// CreateMany insère un lot de notifications en un seul batch.
func (r *NotificationRepo) CreateMany(notifications []*entity.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO notifications (id, user_id, type, message, tour_id, conflict_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, n := range notifications {
		batch.Queue(query, n.ID, n.UserID, n.Type, n.Message, n.TourID, n.ConflictID, n.IsRead, n.CreatedAt)
	}

	br := r.q.SendBatch(context.Background(), batch)
	defer br.Close()
	for range notifications {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("create notifications: %w", err)
		}
	}
	return nil
}

// ListByUser retourne les notifications d'un utilisateur, les plus récentes d'abord.
func (r *NotificationRepo) ListByUser(userID string, limit int) ([]*entity.Notification, error) {
	query := `SELECT id, user_id, type, message, tour_id, conflict_id, is_read, created_at
		FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Message, &n.TourID, &n.ConflictID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead marque une notification lue si elle appartient à userID.
func (r *NotificationRepo) MarkRead(id, userID string) (int, error) {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`
	tag, err := r.q.Exec(context.Background(), query, id, userID)
	if err != nil {
		return 0, fmt.Errorf("mark notification read: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// MarkAllRead marque toutes les notifications de l'utilisateur comme lues.
func (r *NotificationRepo) MarkAllRead(userID string) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`
	if _, err := r.q.Exec(context.Background(), query, userID); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

// CountUnread compte les notifications non lues de l'utilisateur.
func (r *NotificationRepo) CountUnread(userID string) (int, error) {
	query := `SELECT count(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`
	var count int
	if err := r.q.QueryRow(context.Background(), query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}
