package stock

import (
	"context"

	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

// TxRunner exécute une fonction dans une transaction BD, en passant des
// repositories attachés à cette transaction. Garantit l'atomicité solde + registre.
type TxRunner interface {
	RunStock(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		mouvementRepo repository.MouvementRepository,
		auditRepo repository.AuditLogRepository,
	) error) error
}
