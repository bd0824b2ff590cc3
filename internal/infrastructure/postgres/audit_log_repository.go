package postgres

import (
	"context"
	"fmt"

	"github.com/maleksellami/caisse-backend/internal/domain/entity"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implémentation de AuditLogRepository sur PostgreSQL (pool ou tx).
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construit l'adaptateur. Passer un pool ou une tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create insère une ligne d'audit.
func (r *AuditLogRepo) Create(l *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, user_id, action, target_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query, l.ID, l.UserID, l.Action, l.TargetID, l.Details, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}
