package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maleksellami/caisse-backend/internal/application/conflict"
	"github.com/maleksellami/caisse-backend/internal/application/stock"
	"github.com/maleksellami/caisse-backend/internal/application/tour"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

// Vérifications de conformité aux ports applicatifs.
var _ tour.TxRunner = (*TxRunner)(nil)
var _ stock.TxRunner = (*TxRunner)(nil)
var _ conflict.TxRunner = (*TxRunner)(nil)

// TxRunner exécute des callbacks dans une transaction PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construit le runner avec le pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run démarre une transaction pour les transitions de tournée et exécute fn
// avec des repositories attachés à la transaction, puis Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	tourRepo repository.TourRepository,
	driverRepo repository.DriverRepository,
	secteurRepo repository.SecteurRepository,
	stockRepo repository.StockRepository,
	mouvementRepo repository.MouvementRepository,
	conflictRepo repository.ConflictRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewTourRepository(tx),
		NewDriverRepository(tx),
		NewSecteurRepository(tx),
		NewStockRepository(tx),
		NewMouvementRepository(tx),
		NewConflictRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunStock démarre une transaction pour les écritures au registre des caisses.
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	mouvementRepo repository.MouvementRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockRepository(tx), NewMouvementRepository(tx), NewAuditLogRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunConflict démarre une transaction pour la résolution d'un conflit.
func (r *TxRunner) RunConflict(ctx context.Context, fn func(
	conflictRepo repository.ConflictRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewConflictRepository(tx), NewAuditLogRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
