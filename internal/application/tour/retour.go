package tour

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/maleksellami/caisse-backend/internal/application/stock"
	"github.com/maleksellami/caisse-backend/internal/domain"
	"github.com/maleksellami/caisse-backend/internal/domain/caisse"
	"github.com/maleksellami/caisse-backend/internal/domain/entity"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

// RetourInput entrée pour le comptage des caisses au retour (agent de contrôle).
type RetourInput struct {
	NbreCaissesRetour int
	PhotoBase64       string
	AgentControleID   string
}

// Retour compte les caisses rendues, réintègre le stock et lève un conflit si
// des caisses manquent. Un retour excédentaire réintègre tel quel, sans
// conflit: il n'y a jamais de créance envers le chauffeur. La tournée part en
// contrôle hygiène si elle transportait du poulet, sinon elle est close.
//
// Côté registre: RETOUR_TOURNEE solde la circulation de la tournée, puis
// PERTE_CONFIRMEE retire les caisses manquantes. Le solde net vaut donc
// toujours -perte (ou +surplus), et la perte porte sa propre écriture.
func (uc *UseCase) Retour(ctx context.Context, tourID string, input RetourInput) (*entity.Tour, *entity.Conflict, error) {
	if input.NbreCaissesRetour < 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	valeur, err := uc.valeurCaisse()
	if err != nil {
		return nil, nil, err
	}
	photoURL, err := uc.savePhoto(input.PhotoBase64, "retour")
	if err != nil {
		return nil, nil, err
	}

	var (
		result   *entity.Tour
		conflict *entity.Conflict
	)
	err = uc.txRunner.Run(ctx, func(
		tourRepo repository.TourRepository,
		driverRepo repository.DriverRepository,
		_ repository.SecteurRepository,
		stockRepo repository.StockRepository,
		mouvementRepo repository.MouvementRepository,
		conflictRepo repository.ConflictRepository,
	) error {
		t, err := tourRepo.GetForUpdate(tourID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if t.Statut != entity.TourStatutAttenteDechargement {
			return domain.ErrInvalidState
		}

		tolerance := toleranceCaissesDefaut
		if t.DriverID != nil {
			driver, err := driverRepo.GetByID(*t.DriverID)
			if err != nil {
				return err
			}
			if driver != nil {
				tolerance = driver.ToleranceCaissesMensuelle
			}
		}

		ecart := caisse.Rapprocher(t.NbreCaissesDepart, input.NbreCaissesRetour, valeur, tolerance)

		reintegration := input.NbreCaissesRetour
		if ecart.Conflictuel() {
			reintegration = t.NbreCaissesDepart
		}
		if _, err := stock.Appliquer(stockRepo, mouvementRepo, &entity.MouvementCaisse{
			Type:     entity.MouvementRetourTournee,
			Quantite: reintegration,
			TourID:   &t.ID,
			UserID:   &input.AgentControleID,
		}); err != nil {
			return err
		}

		if ecart.Conflictuel() {
			conflict = &entity.Conflict{
				ID:               uuid.NewString(),
				TourID:           t.ID,
				QuantitePerdue:   ecart.QuantitePerdue,
				MontantDetteTND:  ecart.MontantDetteTND,
				DepasseTolerance: ecart.DepasseTolerance,
				Statut:           entity.ConflictStatutEnAttente,
				CreatedAt:        time.Now().UTC(),
			}
			if err := conflictRepo.Create(conflict); err != nil {
				return err
			}
			if _, err := stock.Appliquer(stockRepo, mouvementRepo, &entity.MouvementCaisse{
				Type:       entity.MouvementPerteConfirmee,
				Quantite:   -ecart.QuantitePerdue,
				TourID:     &t.ID,
				ConflictID: &conflict.ID,
				UserID:     &input.AgentControleID,
			}); err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		t.NbreCaissesRetour = &input.NbreCaissesRetour
		t.PhotoRetourURL = photoURL
		t.DateRetourControle = &now
		t.UpdatedAt = now

		driverStatut := entity.DriverStatutUsine
		if t.ProduitsPoulet {
			t.Statut = entity.TourStatutAttenteHygiene
			driverStatut = entity.DriverStatutAttenteHygiene
		} else {
			t.Statut = entity.TourStatutTerminee
		}
		if err := tourRepo.Update(t); err != nil {
			return err
		}
		if t.DriverID != nil {
			if err := driverRepo.UpdateStatut(*t.DriverID, driverStatut); err != nil {
				return err
			}
		}
		result = t
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	// Notifications hors transaction, après commit.
	if conflict != nil {
		uc.notifier.NotifyConflict(conflict, result)
	}
	if result.Statut == entity.TourStatutAttenteHygiene {
		uc.notifier.NotifyHygieneRequired(result)
	}
	return result, conflict, nil
}

// HygieneInput entrée du contrôle hygiène (agent hygiène).
type HygieneInput struct {
	Statut         string
	Notes          string
	PhotosBase64   []string
	AgentHygieneID string
}

// Hygiene enregistre le résultat du contrôle hygiène et clôt la tournée.
// Un rejet est tracé et notifié mais clôt quand même: le camion ne reste pas
// bloqué en attente, le suivi du rejet se fait hors tournée.
func (uc *UseCase) Hygiene(ctx context.Context, tourID string, input HygieneInput) (*entity.Tour, error) {
	if input.Statut != entity.HygieneApprouve && input.Statut != entity.HygieneRejete {
		return nil, domain.ErrInvalidInput
	}
	if input.Statut == entity.HygieneRejete && strings.TrimSpace(input.Notes) == "" {
		return nil, domain.ErrInvalidInput
	}

	photos := make([]string, 0, len(input.PhotosBase64))
	for _, b64 := range input.PhotosBase64 {
		url, err := uc.savePhoto(b64, "hygiene")
		if err != nil {
			return nil, err
		}
		if url != nil {
			photos = append(photos, *url)
		}
	}

	var result *entity.Tour
	err := uc.txRunner.Run(ctx, func(
		tourRepo repository.TourRepository,
		driverRepo repository.DriverRepository,
		_ repository.SecteurRepository,
		_ repository.StockRepository,
		_ repository.MouvementRepository,
		_ repository.ConflictRepository,
	) error {
		t, err := tourRepo.GetForUpdate(tourID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if t.Statut != entity.TourStatutAttenteHygiene {
			return domain.ErrInvalidState
		}

		now := time.Now().UTC()
		statut := input.Statut
		t.StatutHygiene = &statut
		if notes := strings.TrimSpace(input.Notes); notes != "" {
			t.NotesHygiene = &notes
		}
		t.PhotosHygiene = photos
		t.AgentHygieneID = &input.AgentHygieneID
		t.DateHygiene = &now
		t.Statut = entity.TourStatutTerminee
		t.UpdatedAt = now
		if err := tourRepo.Update(t); err != nil {
			return err
		}
		if t.DriverID != nil {
			if err := driverRepo.UpdateStatut(*t.DriverID, entity.DriverStatutUsine); err != nil {
				return err
			}
		}
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	if input.Statut == entity.HygieneRejete {
		uc.notifier.NotifyHygieneReject(result)
	}
	return result, nil
}
