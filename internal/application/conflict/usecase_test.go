package conflict_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maleksellami/caisse-backend/internal/application/conflict"
	"github.com/maleksellami/caisse-backend/internal/domain"
	"github.com/maleksellami/caisse-backend/internal/domain/entity"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en mémoire
// ──────────────────────────────────────────────────────────────────────────────

type fakeConflictRepo struct {
	conflicts map[string]*entity.Conflict
}

func (r *fakeConflictRepo) Create(c *entity.Conflict) error {
	cp := *c
	r.conflicts[c.ID] = &cp
	return nil
}

func (r *fakeConflictRepo) GetByID(id string) (*entity.Conflict, error) {
	c, ok := r.conflicts[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeConflictRepo) GetForUpdate(id string) (*entity.Conflict, error) { return r.GetByID(id) }

func (r *fakeConflictRepo) Update(c *entity.Conflict) error {
	cp := *c
	r.conflicts[c.ID] = &cp
	return nil
}

func (r *fakeConflictRepo) List(statut string, limit, offset int) ([]*entity.Conflict, error) {
	var out []*entity.Conflict
	for _, c := range r.conflicts {
		if statut != "" && c.Statut != statut {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeConflictRepo) ListUrgent(limit int) ([]*entity.Conflict, error) {
	return r.List(entity.ConflictStatutEnAttente, limit, 0)
}

func (r *fakeConflictRepo) ListByDriver(driverID string, limit int) ([]*entity.Conflict, error) {
	return r.List("", limit, 0)
}

type fakeTourRepo struct {
	tours map[string]*entity.Tour
}

func (r *fakeTourRepo) Create(t *entity.Tour) error { r.tours[t.ID] = t; return nil }

func (r *fakeTourRepo) GetByID(id string) (*entity.Tour, error) {
	t, ok := r.tours[id]
	if !ok {
		return nil, nil
	}
	return t, nil
}

func (r *fakeTourRepo) GetForUpdate(id string) (*entity.Tour, error) { return r.GetByID(id) }

func (r *fakeTourRepo) Update(t *entity.Tour) error { r.tours[t.ID] = t; return nil }

func (r *fakeTourRepo) List(f repository.TourFilter) ([]*entity.Tour, error) { return nil, nil }

func (r *fakeTourRepo) ListActive(limit int) ([]*entity.Tour, error) { return nil, nil }

func (r *fakeTourRepo) LatestMatricule() (string, error) { return "", nil }

type fakeAuditRepo struct {
	logs []*entity.AuditLog
}

func (r *fakeAuditRepo) Create(l *entity.AuditLog) error {
	r.logs = append(r.logs, l)
	return nil
}

type fakeTxRunner struct {
	conflicts *fakeConflictRepo
	audits    *fakeAuditRepo
}

func (r *fakeTxRunner) RunConflict(ctx context.Context, fn func(
	conflictRepo repository.ConflictRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	return fn(r.conflicts, r.audits)
}

// ──────────────────────────────────────────────────────────────────────────────
// Montage
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc        *conflict.UseCase
	conflicts *fakeConflictRepo
	audits    *fakeAuditRepo
}

// newFixture monte le cas d'usage avec un conflit en attente (5 caisses, 250 TND)
// rattaché à une tournée close.
func newFixture(t *testing.T) (*fixture, *entity.Conflict) {
	t.Helper()
	conflicts := &fakeConflictRepo{conflicts: map[string]*entity.Conflict{}}
	tours := &fakeTourRepo{tours: map[string]*entity.Tour{}}
	audits := &fakeAuditRepo{}

	tr := &entity.Tour{
		ID:                "tour-1",
		MatriculeVehicule: "253 TU 4821",
		Statut:            entity.TourStatutTerminee,
		NbreCaissesDepart: 50,
	}
	require.NoError(t, tours.Create(tr))

	c := &entity.Conflict{
		ID:               "conflict-1",
		TourID:           tr.ID,
		QuantitePerdue:   5,
		MontantDetteTND:  decimal.NewFromInt(250),
		DepasseTolerance: true,
		Statut:           entity.ConflictStatutEnAttente,
		CreatedAt:        time.Now().UTC(),
	}
	require.NoError(t, conflicts.Create(c))

	uc := conflict.NewUseCase(&fakeTxRunner{conflicts: conflicts, audits: audits}, conflicts, tours)
	return &fixture{uc: uc, conflicts: conflicts, audits: audits}, c
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_HydrateLaTournee(t *testing.T) {
	f, c := newFixture(t)

	detail, err := f.uc.Get(c.ID)
	require.NoError(t, err)

	assert.Equal(t, c.ID, detail.Conflict.ID)
	require.NotNil(t, detail.Tour)
	assert.Equal(t, "tour-1", detail.Tour.ID)
}

func TestGet_InexistantRetourneNotFound(t *testing.T) {
	f, _ := newFixture(t)

	_, err := f.uc.Get("conflict-inconnu")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApprove_MarqueLaDettePayeeEtAudite(t *testing.T) {
	f, c := newFixture(t)

	resolved, err := f.uc.Approve(context.Background(), c.ID, "direction-1", "payée en espèces")
	require.NoError(t, err)

	assert.Equal(t, entity.ConflictStatutPayee, resolved.Statut)
	require.NotNil(t, resolved.DirectionIDApprobation)
	assert.Equal(t, "direction-1", *resolved.DirectionIDApprobation)
	assert.NotNil(t, resolved.DateApprobation)
	require.NotNil(t, resolved.NotesDirection)
	assert.Equal(t, "payée en espèces", *resolved.NotesDirection)

	require.Len(t, f.audits.logs, 1)
	assert.Equal(t, entity.AuditConflictApproved, f.audits.logs[0].Action)
	assert.Equal(t, c.ID, f.audits.logs[0].TargetID)
	assert.Contains(t, f.audits.logs[0].Details, "250")
}

func TestApprove_SansNotesAccepte(t *testing.T) {
	f, c := newFixture(t)

	resolved, err := f.uc.Approve(context.Background(), c.ID, "direction-1", "")
	require.NoError(t, err)

	assert.Equal(t, entity.ConflictStatutPayee, resolved.Statut)
	assert.Nil(t, resolved.NotesDirection)
}

func TestReject_AnnuleLaDette(t *testing.T) {
	f, c := newFixture(t)

	resolved, err := f.uc.Reject(context.Background(), c.ID, "direction-1", "caisses retrouvées au dépôt")
	require.NoError(t, err)

	assert.Equal(t, entity.ConflictStatutAnnule, resolved.Statut)
	require.Len(t, f.audits.logs, 1)
	assert.Equal(t, entity.AuditConflictRejected, f.audits.logs[0].Action)
}

func TestReject_SansNotesRefuse(t *testing.T) {
	f, c := newFixture(t)

	_, err := f.uc.Reject(context.Background(), c.ID, "direction-1", "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un rejet doit être motivé")
	assert.Empty(t, f.audits.logs)
}

func TestResolve_DejaResoluRefuse(t *testing.T) {
	f, c := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Approve(ctx, c.ID, "direction-1", "")
	require.NoError(t, err)

	_, err = f.uc.Approve(ctx, c.ID, "direction-2", "")
	assert.ErrorIs(t, err, domain.ErrAlreadyResolved, "un conflit résolu ne se rouvre jamais")

	_, err = f.uc.Reject(ctx, c.ID, "direction-2", "tentative tardive")
	assert.ErrorIs(t, err, domain.ErrAlreadyResolved)

	stored, err := f.conflicts.GetByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ConflictStatutPayee, stored.Statut, "la première résolution reste")
	require.NotNil(t, stored.DirectionIDApprobation)
	assert.Equal(t, "direction-1", *stored.DirectionIDApprobation)
}

func TestResolve_InexistantRetourneNotFound(t *testing.T) {
	f, _ := newFixture(t)

	_, err := f.uc.Approve(context.Background(), "conflict-inconnu", "direction-1", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
