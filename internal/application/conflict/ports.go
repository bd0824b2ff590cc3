package conflict

import (
	"context"

	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

// TxRunner exécute une fonction dans une transaction BD, en passant des
// repositories attachés à cette transaction. La résolution d'un conflit écrit
// le conflit et sa ligne d'audit atomiquement.
type TxRunner interface {
	RunConflict(ctx context.Context, fn func(
		conflictRepo repository.ConflictRepository,
		auditRepo repository.AuditLogRepository,
	) error) error
}
