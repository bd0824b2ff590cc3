package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/maleksellami/caisse-backend/internal/domain/entity"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

var _ repository.MouvementRepository = (*MouvementRepo)(nil)

const mouvementColumns = `id, type, quantite, solde_apres, tour_id, conflict_id, user_id, notes, created_at`

// MouvementRepo implémentation de MouvementRepository sur PostgreSQL (pool ou tx).
// Le registre est append-only: aucune méthode de mise à jour ni de suppression.
type MouvementRepo struct {
	q Querier
}

// NewMouvementRepository construit l'adaptateur. Passer un pool ou une tx (Querier).
func NewMouvementRepository(q Querier) *MouvementRepo {
	return &MouvementRepo{q: q}
}

// Create insère une écriture au registre.
func (r *MouvementRepo) Create(m *entity.MouvementCaisse) error {
	query := `
		INSERT INTO mouvements_caisse (` + mouvementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Type, m.Quantite, m.SoldeApres, m.TourID, m.ConflictID, m.UserID, m.Notes, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create mouvement: %w", err)
	}
	return nil
}

// List retourne une page du registre, les écritures les plus récentes d'abord.
func (r *MouvementRepo) List(filter repository.MouvementFilter) ([]*entity.MouvementCaisse, error) {
	where, args := mouvementWhere(filter)
	args = append(args, filter.Limit)
	limitPos := len(args)
	args = append(args, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM mouvements_caisse%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		mouvementColumns, where, limitPos, limitPos+1)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list mouvements: %w", err)
	}
	defer rows.Close()

	var mouvements []*entity.MouvementCaisse
	for rows.Next() {
		var m entity.MouvementCaisse
		if err := rows.Scan(&m.ID, &m.Type, &m.Quantite, &m.SoldeApres, &m.TourID, &m.ConflictID, &m.UserID, &m.Notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan mouvement: %w", err)
		}
		mouvements = append(mouvements, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows mouvements: %w", err)
	}
	return mouvements, nil
}

// Count compte les écritures correspondant au filtre.
func (r *MouvementRepo) Count(filter repository.MouvementFilter) (int, error) {
	where, args := mouvementWhere(filter)
	var count int
	err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM mouvements_caisse`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count mouvements: %w", err)
	}
	return count, nil
}

// SumQuantite retourne la somme signée des quantités correspondant au filtre.
func (r *MouvementRepo) SumQuantite(filter repository.MouvementFilter) (int, error) {
	where, args := mouvementWhere(filter)
	var sum int
	err := r.q.QueryRow(context.Background(), `SELECT COALESCE(sum(quantite), 0) FROM mouvements_caisse`+where, args...).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum mouvements: %w", err)
	}
	return sum, nil
}

func mouvementWhere(filter repository.MouvementFilter) (string, []any) {
	var conditions []string
	var args []any
	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.TourID != "" {
		args = append(args, filter.TourID)
		conditions = append(conditions, fmt.Sprintf("tour_id = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
