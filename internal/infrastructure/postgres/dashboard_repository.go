package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/maleksellami/caisse-backend/internal/domain/entity"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo requêtes d'agrégation du tableau de bord. Lecture seule.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construit l'adaptateur. Passer un pool ou une tx (Querier).
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// KPIs calcule les indicateurs de tête pour la journée donnée.
func (r *DashboardRepo) KPIs(ctx context.Context, jour time.Time) (*repository.KPIResult, error) {
	var res repository.KPIResult

	tourQuery := `
		SELECT
			count(*) FILTER (WHERE statut <> $1),
			count(*) FILTER (WHERE statut = $1 AND updated_at::date = $2::date)
		FROM tours`
	err := r.q.QueryRow(ctx, tourQuery, entity.TourStatutTerminee, jour).Scan(&res.ToursActives, &res.ToursTermineesJour)
	if err != nil {
		return nil, fmt.Errorf("kpis tours: %w", err)
	}

	conflictQuery := `
		SELECT count(*), COALESCE(sum(montant_dette_tnd) FILTER (WHERE quantite_perdue > 0), 0)
		FROM conflicts WHERE statut = $1`
	err = r.q.QueryRow(ctx, conflictQuery, entity.ConflictStatutEnAttente).Scan(&res.ConflitsEnAttente, &res.DetteTotaleTND)
	if err != nil {
		return nil, fmt.Errorf("kpis conflicts: %w", err)
	}

	// Circulation = caisses parties moins caisses soldées (les écritures DEPART
	// et RETOUR s'annulent quand la tournée est close).
	circulationQuery := `
		SELECT -COALESCE(sum(quantite), 0) FROM mouvements_caisse
		WHERE type IN ($1, $2)`
	err = r.q.QueryRow(ctx, circulationQuery, entity.MouvementDepartTournee, entity.MouvementRetourTournee).Scan(&res.CaissesEnCirculation)
	if err != nil {
		return nil, fmt.Errorf("kpis circulation: %w", err)
	}

	st, err := NewStockRepository(r.q).Get()
	if err != nil {
		return nil, err
	}
	if st != nil {
		res.StockActuel = st.StockActuel
		res.StockEnAlerte = st.EnAlerte()
	}
	return &res, nil
}

// PertesParDriver agrège les conflits par chauffeur sur la période, les dettes
// les plus lourdes d'abord.
func (r *DashboardRepo) PertesParDriver(ctx context.Context, from, to time.Time) ([]*repository.PerteDriverResult, error) {
	query := `
		SELECT d.id, d.nom_complet,
			count(c.id),
			COALESCE(sum(GREATEST(c.quantite_perdue, 0)), 0),
			COALESCE(sum(c.montant_dette_tnd) FILTER (WHERE c.quantite_perdue > 0), 0),
			COALESCE(sum(c.montant_dette_tnd) FILTER (WHERE c.quantite_perdue > 0 AND c.statut = $3), 0)
		FROM conflicts c
		JOIN tours t ON t.id = c.tour_id
		JOIN drivers d ON d.id = t.driver_id
		WHERE c.created_at >= $1 AND c.created_at <= $2
		GROUP BY d.id, d.nom_complet
		ORDER BY 5 DESC`
	rows, err := r.q.Query(ctx, query, from, to, entity.ConflictStatutEnAttente)
	if err != nil {
		return nil, fmt.Errorf("pertes par driver: %w", err)
	}
	defer rows.Close()

	var results []*repository.PerteDriverResult
	for rows.Next() {
		var p repository.PerteDriverResult
		if err := rows.Scan(&p.DriverID, &p.NomComplet, &p.NbConflits, &p.CaissesPerdues, &p.DetteTotaleTND, &p.DetteRestante); err != nil {
			return nil, fmt.Errorf("scan perte driver: %w", err)
		}
		results = append(results, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows pertes: %w", err)
	}
	return results, nil
}

// FinanceMois agrège les conflits du mois calendaire (format YYYY-MM).
func (r *DashboardRepo) FinanceMois(ctx context.Context, mois string) (*repository.FinanceMoisResult, error) {
	query := `
		SELECT
			COALESCE(sum(GREATEST(quantite_perdue, 0)), 0),
			COALESCE(sum(montant_dette_tnd) FILTER (WHERE quantite_perdue > 0), 0),
			COALESCE(sum(montant_dette_tnd) FILTER (WHERE quantite_perdue > 0 AND statut = $2), 0),
			COALESCE(sum(montant_dette_tnd) FILTER (WHERE quantite_perdue > 0 AND statut = $3), 0),
			count(*) FILTER (WHERE statut = $4)
		FROM conflicts
		WHERE to_char(created_at, 'YYYY-MM') = $1`
	res := repository.FinanceMoisResult{Mois: mois}
	err := r.q.QueryRow(ctx, query, mois,
		entity.ConflictStatutPayee, entity.ConflictStatutAnnule, entity.ConflictStatutEnAttente,
	).Scan(&res.CaissesPerdues, &res.DetteGeneree, &res.DetteRecouvree, &res.DetteAnnulee, &res.ConflitsOuverts)
	if err != nil {
		return nil, fmt.Errorf("finance mois: %w", err)
	}
	return &res, nil
}
