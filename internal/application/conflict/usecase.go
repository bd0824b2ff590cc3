package conflict

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/maleksellami/caisse-backend/internal/domain"
	"github.com/maleksellami/caisse-backend/internal/domain/entity"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

// UseCase gère le cycle de vie des conflits de caisses: consultation, triage
// des urgences et résolution par la Direction. Un conflit résolu ne se rouvre
// jamais, la résolution se fait sous verrou de ligne.
type UseCase struct {
	txRunner     TxRunner
	conflictRepo repository.ConflictRepository
	tourRepo     repository.TourRepository
}

// NewUseCase construit le cas d'usage.
func NewUseCase(txRunner TxRunner, conflictRepo repository.ConflictRepository, tourRepo repository.TourRepository) *UseCase {
	return &UseCase{txRunner: txRunner, conflictRepo: conflictRepo, tourRepo: tourRepo}
}

// ConflictDetail conflit accompagné de sa tournée (peut être nil si purgée).
type ConflictDetail struct {
	Conflict *entity.Conflict
	Tour     *entity.Tour
}

// Get charge un conflit avec sa tournée.
func (uc *UseCase) Get(id string) (*ConflictDetail, error) {
	c, err := uc.conflictRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return uc.hydrate(c, map[string]*entity.Tour{})
}

// List retourne une page de conflits, filtrée par statut si fourni.
func (uc *UseCase) List(statut string, limit, offset int) ([]*ConflictDetail, error) {
	if limit <= 0 {
		limit = 20
	}
	conflicts, err := uc.conflictRepo.List(statut, limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.hydrateAll(conflicts)
}

// ListUrgent retourne les conflits en attente classés pour le triage Direction:
// hors tolérance d'abord, puis quantité perdue décroissante, puis les plus anciens.
func (uc *UseCase) ListUrgent(limit int) ([]*ConflictDetail, error) {
	if limit <= 0 {
		limit = 20
	}
	conflicts, err := uc.conflictRepo.ListUrgent(limit)
	if err != nil {
		return nil, err
	}
	return uc.hydrateAll(conflicts)
}

// ListByDriver retourne l'historique des conflits d'un chauffeur.
func (uc *UseCase) ListByDriver(driverID string, limit int) ([]*ConflictDetail, error) {
	if limit <= 0 {
		limit = 50
	}
	conflicts, err := uc.conflictRepo.ListByDriver(driverID, limit)
	if err != nil {
		return nil, err
	}
	return uc.hydrateAll(conflicts)
}

// Approve marque la dette comme payée. ErrAlreadyResolved si le conflit n'est
// plus en attente.
func (uc *UseCase) Approve(ctx context.Context, conflictID, directionID, notes string) (*entity.Conflict, error) {
	return uc.resolve(ctx, conflictID, directionID, notes, entity.ConflictStatutPayee, entity.AuditConflictApproved, false)
}

// Reject annule le conflit sans recouvrement. Les notes sont obligatoires.
func (uc *UseCase) Reject(ctx context.Context, conflictID, directionID, notes string) (*entity.Conflict, error) {
	return uc.resolve(ctx, conflictID, directionID, notes, entity.ConflictStatutAnnule, entity.AuditConflictRejected, true)
}

func (uc *UseCase) resolve(ctx context.Context, conflictID, directionID, notes, statut, auditAction string, notesRequises bool) (*entity.Conflict, error) {
	notes = strings.TrimSpace(notes)
	if notesRequises && notes == "" {
		return nil, domain.ErrInvalidInput
	}

	var result *entity.Conflict
	err := uc.txRunner.RunConflict(ctx, func(
		conflictRepo repository.ConflictRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		c, err := conflictRepo.GetForUpdate(conflictID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		if c.Statut != entity.ConflictStatutEnAttente {
			return domain.ErrAlreadyResolved
		}

		now := time.Now().UTC()
		c.Statut = statut
		c.DirectionIDApprobation = &directionID
		c.DateApprobation = &now
		if notes != "" {
			c.NotesDirection = &notes
		}
		if err := conflictRepo.Update(c); err != nil {
			return err
		}

		details, _ := json.Marshal(map[string]any{
			"statut":            statut,
			"quantite_perdue":   c.QuantitePerdue,
			"montant_dette_tnd": c.MontantDetteTND.String(),
			"notes":             notes,
		})
		if err := auditRepo.Create(&entity.AuditLog{
			ID:        uuid.NewString(),
			UserID:    directionID,
			Action:    auditAction,
			TargetID:  c.ID,
			Details:   string(details),
			CreatedAt: now,
		}); err != nil {
			return err
		}
		result = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *UseCase) hydrateAll(conflicts []*entity.Conflict) ([]*ConflictDetail, error) {
	tours := map[string]*entity.Tour{}
	details := make([]*ConflictDetail, 0, len(conflicts))
	for _, c := range conflicts {
		d, err := uc.hydrate(c, tours)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

func (uc *UseCase) hydrate(c *entity.Conflict, tours map[string]*entity.Tour) (*ConflictDetail, error) {
	t, ok := tours[c.TourID]
	if !ok {
		var err error
		t, err = uc.tourRepo.GetByID(c.TourID)
		if err != nil {
			return nil, err
		}
		tours[c.TourID] = t
	}
	return &ConflictDetail{Conflict: c, Tour: t}, nil
}
