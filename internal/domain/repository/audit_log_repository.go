package repository

import "github.com/maleksellami/caisse-backend/internal/domain/entity"

// AuditLogRepository définit le port du journal d'audit (append-only).
type AuditLogRepository interface {
	Create(log *entity.AuditLog) error
}
