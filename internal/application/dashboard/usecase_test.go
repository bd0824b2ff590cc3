package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maleksellami/caisse-backend/internal/application/dashboard"
	"github.com/maleksellami/caisse-backend/internal/domain"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

// fakeDashboardRepo enregistre les paramètres reçus pour vérifier les défauts.
type fakeDashboardRepo struct {
	pertesFrom  time.Time
	pertesTo    time.Time
	financeMois string
}

func (r *fakeDashboardRepo) KPIs(ctx context.Context, jour time.Time) (*repository.KPIResult, error) {
	return &repository.KPIResult{}, nil
}

func (r *fakeDashboardRepo) PertesParDriver(ctx context.Context, from, to time.Time) ([]*repository.PerteDriverResult, error) {
	r.pertesFrom, r.pertesTo = from, to
	return nil, nil
}

func (r *fakeDashboardRepo) FinanceMois(ctx context.Context, mois string) (*repository.FinanceMoisResult, error) {
	r.financeMois = mois
	return &repository.FinanceMoisResult{Mois: mois}, nil
}

func TestPertes_PeriodeParDefautDeTrenteJours(t *testing.T) {
	repo := &fakeDashboardRepo{}
	uc := dashboard.NewUseCase(repo)

	_, err := uc.Pertes(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.WithinDuration(t, time.Now().UTC(), repo.pertesTo, time.Minute)
	assert.WithinDuration(t, repo.pertesTo.AddDate(0, 0, -30), repo.pertesFrom, time.Minute)
}

func TestPertes_PeriodeInverseeRefusee(t *testing.T) {
	uc := dashboard.NewUseCase(&fakeDashboardRepo{})

	from := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.Pertes(context.Background(), from, to)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFinanceMois_MoisCourantParDefaut(t *testing.T) {
	repo := &fakeDashboardRepo{}
	uc := dashboard.NewUseCase(repo)

	res, err := uc.FinanceMois(context.Background(), "")
	require.NoError(t, err)

	attendu := time.Now().UTC().Format("2006-01")
	assert.Equal(t, attendu, res.Mois)
	assert.Equal(t, attendu, repo.financeMois)
}

func TestFinanceMois_FormatInvalideRefuse(t *testing.T) {
	uc := dashboard.NewUseCase(&fakeDashboardRepo{})

	for _, mois := range []string{"2026-13", "2026-0", "aout-2026", "2026/08"} {
		_, err := uc.FinanceMois(context.Background(), mois)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, mois)
	}
}

func TestFinanceMois_FormatValideAccepte(t *testing.T) {
	repo := &fakeDashboardRepo{}
	uc := dashboard.NewUseCase(repo)

	_, err := uc.FinanceMois(context.Background(), "2026-08")
	require.NoError(t, err)
	assert.Equal(t, "2026-08", repo.financeMois)
}
