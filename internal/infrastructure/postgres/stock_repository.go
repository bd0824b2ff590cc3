package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/maleksellami/caisse-backend/internal/domain/entity"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implémentation de StockRepository sur PostgreSQL (pool ou tx).
// La table stock_caisses ne porte qu'une ligne, verrouillée par la colonne verrou.
type StockRepo struct {
	q Querier
}

// NewStockRepository construit l'adaptateur. Passer un pool ou une tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func scanStock(row rowScanner) (*entity.StockCaisse, error) {
	var s entity.StockCaisse
	err := row.Scan(&s.ID, &s.StockActuel, &s.StockInitial, &s.SeuilAlertePct, &s.Initialise, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Get charge la ligne de stock. nil, nil si jamais initialisée.
func (r *StockRepo) Get() (*entity.StockCaisse, error) {
	query := `SELECT id, stock_actuel, stock_initial, seuil_alerte_pct, initialise, updated_at
		FROM stock_caisses LIMIT 1`
	s, err := scanStock(r.q.QueryRow(context.Background(), query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return s, nil
}

// GetForUpdate charge la ligne de stock en la verrouillant (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate() (*entity.StockCaisse, error) {
	query := `SELECT id, stock_actuel, stock_initial, seuil_alerte_pct, initialise, updated_at
		FROM stock_caisses LIMIT 1 FOR UPDATE`
	s, err := scanStock(r.q.QueryRow(context.Background(), query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return s, nil
}

// Upsert insère ou réécrit la ligne unique de stock.
func (r *StockRepo) Upsert(s *entity.StockCaisse) error {
	query := `
		INSERT INTO stock_caisses (id, stock_actuel, stock_initial, seuil_alerte_pct, initialise, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (verrou) DO UPDATE SET
			stock_actuel = EXCLUDED.stock_actuel,
			stock_initial = EXCLUDED.stock_initial,
			seuil_alerte_pct = EXCLUDED.seuil_alerte_pct,
			initialise = EXCLUDED.initialise,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.StockActuel, s.StockInitial, s.SeuilAlertePct, s.Initialise, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}
