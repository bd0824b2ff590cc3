package entity

import "time"

// Actions auditées.
const (
	AuditConflictApproved = "CONFLICT_APPROVED"
	AuditConflictRejected = "CONFLICT_REJECTED"
	AuditStockInitialise  = "STOCK_INITIALISE"
	AuditStockAjuste      = "STOCK_AJUSTE"
)

// AuditLog trace une action sensible de Direction/Admin.
type AuditLog struct {
	ID        string
	UserID    string
	Action    string
	TargetID  string
	Details   string // JSON libre décrivant l'état après action
	CreatedAt time.Time
}
