package stock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maleksellami/caisse-backend/internal/application/stock"
	"github.com/maleksellami/caisse-backend/internal/domain"
	"github.com/maleksellami/caisse-backend/internal/domain/entity"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en mémoire
// ──────────────────────────────────────────────────────────────────────────────

type fakeStockRepo struct {
	stock *entity.StockCaisse
}

func (r *fakeStockRepo) Get() (*entity.StockCaisse, error) {
	if r.stock == nil {
		return nil, nil
	}
	cp := *r.stock
	return &cp, nil
}

func (r *fakeStockRepo) GetForUpdate() (*entity.StockCaisse, error) { return r.Get() }

func (r *fakeStockRepo) Upsert(st *entity.StockCaisse) error {
	cp := *st
	r.stock = &cp
	return nil
}

type fakeMouvementRepo struct {
	mouvements []*entity.MouvementCaisse
}

func (r *fakeMouvementRepo) Create(m *entity.MouvementCaisse) error {
	cp := *m
	r.mouvements = append(r.mouvements, &cp)
	return nil
}

func (r *fakeMouvementRepo) List(filter repository.MouvementFilter) ([]*entity.MouvementCaisse, error) {
	return r.mouvements, nil
}

func (r *fakeMouvementRepo) Count(filter repository.MouvementFilter) (int, error) {
	return len(r.mouvements), nil
}

func (r *fakeMouvementRepo) SumQuantite(filter repository.MouvementFilter) (int, error) {
	sum := 0
	for _, m := range r.mouvements {
		sum += m.Quantite
	}
	return sum, nil
}

type fakeAuditRepo struct {
	logs []*entity.AuditLog
}

func (r *fakeAuditRepo) Create(l *entity.AuditLog) error {
	r.logs = append(r.logs, l)
	return nil
}

type fakeConfigRepo struct {
	cfg *entity.CaisseConfig
}

func (r *fakeConfigRepo) Get() (*entity.CaisseConfig, error) { return r.cfg, nil }

func (r *fakeConfigRepo) Upsert(c *entity.CaisseConfig) error {
	r.cfg = c
	return nil
}

type fakeTxRunner struct {
	stock      *fakeStockRepo
	mouvements *fakeMouvementRepo
	audits     *fakeAuditRepo
}

func (r *fakeTxRunner) RunStock(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	mouvementRepo repository.MouvementRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	return fn(r.stock, r.mouvements, r.audits)
}

// ──────────────────────────────────────────────────────────────────────────────
// Montage
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc         *stock.UseCase
	stock      *fakeStockRepo
	mouvements *fakeMouvementRepo
	audits     *fakeAuditRepo
	config     *fakeConfigRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		stock:      &fakeStockRepo{},
		mouvements: &fakeMouvementRepo{},
		audits:     &fakeAuditRepo{},
		config:     &fakeConfigRepo{},
	}
	runner := &fakeTxRunner{stock: f.stock, mouvements: f.mouvements, audits: f.audits}
	f.uc = stock.NewUseCase(runner, f.stock, f.mouvements, f.config, 20, decimal.NewFromInt(50))
	return f
}

// ──────────────────────────────────────────────────────────────────────────────
// Initialisation
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_AvantInitialisationRetourneStockNotReady(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Get()
	assert.ErrorIs(t, err, domain.ErrStockNotReady)
}

func TestInit_MetEnPlaceLeStockEtLEcritureInitiale(t *testing.T) {
	f := newFixture(t)

	st, err := f.uc.Init(context.Background(), 500, 15, "admin-1")
	require.NoError(t, err)

	assert.Equal(t, 500, st.StockActuel)
	assert.Equal(t, 500, st.StockInitial)
	assert.Equal(t, 15, st.SeuilAlertePct)
	assert.True(t, st.Initialise)

	require.Len(t, f.mouvements.mouvements, 1)
	m := f.mouvements.mouvements[0]
	assert.Equal(t, entity.MouvementInitialisation, m.Type)
	assert.Equal(t, 500, m.Quantite)
	assert.Equal(t, 500, m.SoldeApres)

	require.Len(t, f.audits.logs, 1)
	assert.Equal(t, entity.AuditStockInitialise, f.audits.logs[0].Action)
}

func TestInit_SeuilHorsBornesRepliSurDefaut(t *testing.T) {
	f := newFixture(t)

	st, err := f.uc.Init(context.Background(), 500, 0, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, 20, st.SeuilAlertePct, "0 est hors bornes, repli sur le défaut du service")
}

func TestInit_DejaInitialiseRefuse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Init(ctx, 500, 15, "admin-1")
	require.NoError(t, err)

	_, err = f.uc.Init(ctx, 300, 15, "admin-1")
	assert.ErrorIs(t, err, domain.ErrInvalidState, "les corrections passent par Ajuster")
	assert.Equal(t, 500, f.stock.stock.StockActuel, "le stock ne doit pas être écrasé")
}

func TestInit_QuantiteNulleRefusee(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Init(context.Background(), 0, 15, "admin-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustement
// ──────────────────────────────────────────────────────────────────────────────

func TestAjuster_AppliqueUneCorrectionSignee(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.Init(ctx, 500, 15, "admin-1")
	require.NoError(t, err)

	st, err := f.uc.Ajuster(ctx, -12, "casse constatée à l'inventaire", "admin-1")
	require.NoError(t, err)

	assert.Equal(t, 488, st.StockActuel)

	require.Len(t, f.mouvements.mouvements, 2)
	m := f.mouvements.mouvements[1]
	assert.Equal(t, entity.MouvementAjustement, m.Type)
	assert.Equal(t, -12, m.Quantite)
	assert.Equal(t, 488, m.SoldeApres)
	require.NotNil(t, m.Notes)

	require.Len(t, f.audits.logs, 2)
	assert.Equal(t, entity.AuditStockAjuste, f.audits.logs[1].Action)
}

func TestAjuster_SansNotesRefuse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.Init(ctx, 500, 15, "admin-1")
	require.NoError(t, err)

	_, err = f.uc.Ajuster(ctx, -12, "  ", "admin-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un ajustement doit être motivé")
}

func TestAjuster_QuantiteNulleRefusee(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Ajuster(context.Background(), 0, "rien", "admin-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAjuster_SoldeNegatifRefuse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.Init(ctx, 10, 15, "admin-1")
	require.NoError(t, err)

	_, err = f.uc.Ajuster(ctx, -11, "tentative de passer sous zéro", "admin-1")
	assert.ErrorIs(t, err, domain.ErrStockInsuffisant)
	assert.Equal(t, 10, f.stock.stock.StockActuel)
	assert.Len(t, f.mouvements.mouvements, 1, "aucune écriture pour un mouvement refusé")
}

func TestAjuster_AvantInitialisationRefuse(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Ajuster(context.Background(), 5, "réception fournisseur", "admin-1")
	assert.ErrorIs(t, err, domain.ErrStockNotReady)
}

// ──────────────────────────────────────────────────────────────────────────────
// Valeur caisse et alerte
// ──────────────────────────────────────────────────────────────────────────────

func TestValeurCaisse_RepliSurLeDefautSansConfig(t *testing.T) {
	f := newFixture(t)

	valeur, err := f.uc.ValeurCaisse()
	require.NoError(t, err)
	assert.True(t, valeur.Equal(decimal.NewFromInt(50)))
}

func TestSetValeurCaisse_PersisteLaNouvelleValeur(t *testing.T) {
	f := newFixture(t)

	cfg, err := f.uc.SetValeurCaisse(decimal.RequireFromString("62.5"))
	require.NoError(t, err)
	assert.True(t, cfg.ValeurTND.Equal(decimal.RequireFromString("62.5")))

	valeur, err := f.uc.ValeurCaisse()
	require.NoError(t, err)
	assert.True(t, valeur.Equal(decimal.RequireFromString("62.5")), "la valeur configurée prime sur le défaut")
}

func TestSetValeurCaisse_ValeurNulleRefusee(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.SetValeurCaisse(decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStockCaisse_SeuilAlerte(t *testing.T) {
	st := &entity.StockCaisse{StockActuel: 90, StockInitial: 500, SeuilAlertePct: 20, Initialise: true}

	assert.Equal(t, 100, st.SeuilAlerte())
	assert.True(t, st.EnAlerte(), "90 <= 100")

	st.StockActuel = 101
	assert.False(t, st.EnAlerte())
}
