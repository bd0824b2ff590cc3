package dashboard

import (
	"context"
	"regexp"
	"time"

	"github.com/maleksellami/caisse-backend/internal/domain"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

var moisRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// UseCase requêtes d'agrégation du tableau de bord Direction. Lecture seule.
type UseCase struct {
	dashboardRepo repository.DashboardRepository
}

// NewUseCase construit le cas d'usage.
func NewUseCase(dashboardRepo repository.DashboardRepository) *UseCase {
	return &UseCase{dashboardRepo: dashboardRepo}
}

// KPIs retourne les indicateurs de tête pour la journée courante.
func (uc *UseCase) KPIs(ctx context.Context) (*repository.KPIResult, error) {
	return uc.dashboardRepo.KPIs(ctx, time.Now().UTC())
}

// Pertes retourne les pertes cumulées par chauffeur sur la période. Par défaut
// les 30 derniers jours.
func (uc *UseCase) Pertes(ctx context.Context, from, to time.Time) ([]*repository.PerteDriverResult, error) {
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	if from.After(to) {
		return nil, domain.ErrInvalidInput
	}
	return uc.dashboardRepo.PertesParDriver(ctx, from, to)
}

// FinanceMois retourne la synthèse financière d'un mois au format YYYY-MM.
// Le mois courant est pris si le paramètre est vide.
func (uc *UseCase) FinanceMois(ctx context.Context, mois string) (*repository.FinanceMoisResult, error) {
	if mois == "" {
		mois = time.Now().UTC().Format("2006-01")
	}
	if !moisRe.MatchString(mois) {
		return nil, domain.ErrInvalidInput
	}
	return uc.dashboardRepo.FinanceMois(ctx, mois)
}
