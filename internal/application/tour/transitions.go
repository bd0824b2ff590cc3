package tour

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maleksellami/caisse-backend/internal/application/stock"
	"github.com/maleksellami/caisse-backend/internal/domain"
	"github.com/maleksellami/caisse-backend/internal/domain/entity"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

// PeseeVideInput entrée pour la pesée à vide du camion (poste sécurité).
type PeseeVideInput struct {
	MatriculeVehicule string
	PoidsVide         decimal.Decimal
	SecuriteID        string
}

// PeseeVide ouvre une tournée en statut PREPARATION avec le poids à vide du camion.
func (uc *UseCase) PeseeVide(ctx context.Context, input PeseeVideInput) (*entity.Tour, error) {
	matricule := strings.TrimSpace(input.MatriculeVehicule)
	if matricule == "" || input.PoidsVide.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	t := &entity.Tour{
		ID:                uuid.NewString(),
		MatriculeVehicule: matricule,
		Statut:            entity.TourStatutPreparation,
		PoidsVide:         &input.PoidsVide,
		DatePeseeVide:     &now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.tourRepo.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

// ChargementInput entrée pour le chargement des caisses (agent de contrôle).
// DriverID prime sur DriverNom; un nom seul crée le chauffeur à la volée.
type ChargementInput struct {
	DriverID          string
	DriverNom         string
	SecteurID         string
	SecteurNom        string
	NbreCaissesDepart int
	ProduitsPoulet    bool
	PhotoBase64       string
	AgentControleID   string
}

// Chargement affecte chauffeur et secteur, décompte les caisses du stock
// (mouvement DEPART_TOURNEE) et passe la tournée en PRET_A_PARTIR.
func (uc *UseCase) Chargement(ctx context.Context, tourID string, input ChargementInput) (*entity.Tour, error) {
	if input.NbreCaissesDepart <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.DriverID == "" && strings.TrimSpace(input.DriverNom) == "" {
		return nil, domain.ErrInvalidInput
	}
	photoURL, err := uc.savePhoto(input.PhotoBase64, "chargement")
	if err != nil {
		return nil, err
	}

	var result *entity.Tour
	err = uc.txRunner.Run(ctx, func(
		tourRepo repository.TourRepository,
		driverRepo repository.DriverRepository,
		secteurRepo repository.SecteurRepository,
		stockRepo repository.StockRepository,
		mouvementRepo repository.MouvementRepository,
		_ repository.ConflictRepository,
	) error {
		t, err := tourRepo.GetForUpdate(tourID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if t.Statut != entity.TourStatutPreparation {
			return domain.ErrInvalidState
		}
		if err := uc.appliquerChargement(tourRepo, driverRepo, secteurRepo, stockRepo, mouvementRepo, t, input, photoURL); err != nil {
			return err
		}
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// appliquerChargement mutations communes au chargement et au flux historique de
// création en un appel. À appeler sous verrou de la ligne de tournée.
func (uc *UseCase) appliquerChargement(
	tourRepo repository.TourRepository,
	driverRepo repository.DriverRepository,
	secteurRepo repository.SecteurRepository,
	stockRepo repository.StockRepository,
	mouvementRepo repository.MouvementRepository,
	t *entity.Tour,
	input ChargementInput,
	photoURL *string,
) error {
	driver, err := uc.resolveDriver(driverRepo, input.DriverID, input.DriverNom)
	if err != nil {
		return err
	}

	var secteurID *string
	switch {
	case input.SecteurID != "":
		s, err := secteurRepo.GetByID(input.SecteurID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		secteurID = &s.ID
	case strings.TrimSpace(input.SecteurNom) != "":
		s, err := secteurRepo.UpsertByNom(strings.TrimSpace(input.SecteurNom))
		if err != nil {
			return err
		}
		secteurID = &s.ID
	}

	if _, err := stock.Appliquer(stockRepo, mouvementRepo, &entity.MouvementCaisse{
		Type:     entity.MouvementDepartTournee,
		Quantite: -input.NbreCaissesDepart,
		TourID:   &t.ID,
		UserID:   &input.AgentControleID,
	}); err != nil {
		return err
	}

	now := time.Now().UTC()
	t.DriverID = &driver.ID
	t.SecteurID = secteurID
	t.NbreCaissesDepart = input.NbreCaissesDepart
	t.ProduitsPoulet = input.ProduitsPoulet
	t.PhotoDepartURL = photoURL
	t.AgentControleID = &input.AgentControleID
	t.Statut = entity.TourStatutPretAPartir
	t.DateChargement = &now
	t.UpdatedAt = now
	if err := tourRepo.Update(t); err != nil {
		return err
	}
	return driverRepo.UpdateStatut(driver.ID, entity.DriverStatutPretAPartir)
}

func (uc *UseCase) resolveDriver(driverRepo repository.DriverRepository, driverID, driverNom string) (*entity.Driver, error) {
	if driverID != "" {
		d, err := driverRepo.GetByID(driverID)
		if err != nil {
			return nil, err
		}
		if d == nil {
			return nil, domain.ErrNotFound
		}
		return d, nil
	}

	now := time.Now().UTC()
	d := &entity.Driver{
		ID:                        uuid.NewString(),
		NomComplet:                strings.TrimSpace(driverNom),
		ToleranceCaissesMensuelle: toleranceCaissesDefaut,
		Statut:                    entity.DriverStatutUsine,
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}
	if err := driverRepo.Create(d); err != nil {
		return nil, err
	}
	return d, nil
}

// CreateTourInput entrée du flux historique: création et chargement en un appel.
type CreateTourInput struct {
	MatriculeVehicule string
	Chargement        ChargementInput
}

// CreateComplete crée une tournée sans pesée à vide et la charge aussitôt.
// Conservé pour les clients mobiles antérieurs au flux de pesée.
func (uc *UseCase) CreateComplete(ctx context.Context, input CreateTourInput) (*entity.Tour, error) {
	matricule := strings.TrimSpace(input.MatriculeVehicule)
	if matricule == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Chargement.NbreCaissesDepart <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.Chargement.DriverID == "" && strings.TrimSpace(input.Chargement.DriverNom) == "" {
		return nil, domain.ErrInvalidInput
	}
	photoURL, err := uc.savePhoto(input.Chargement.PhotoBase64, "chargement")
	if err != nil {
		return nil, err
	}

	var result *entity.Tour
	err = uc.txRunner.Run(ctx, func(
		tourRepo repository.TourRepository,
		driverRepo repository.DriverRepository,
		secteurRepo repository.SecteurRepository,
		stockRepo repository.StockRepository,
		mouvementRepo repository.MouvementRepository,
		_ repository.ConflictRepository,
	) error {
		now := time.Now().UTC()
		t := &entity.Tour{
			ID:                uuid.NewString(),
			MatriculeVehicule: matricule,
			Statut:            entity.TourStatutPreparation,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := tourRepo.Create(t); err != nil {
			return err
		}
		if err := uc.appliquerChargement(tourRepo, driverRepo, secteurRepo, stockRepo, mouvementRepo, t, input.Chargement, photoURL); err != nil {
			return err
		}
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SortieInput entrée pour la pesée chargée à la sortie de l'usine (sécurité).
type SortieInput struct {
	PoidsBrutSortie decimal.Decimal
	SecuriteID      string
}

// Sortie enregistre le poids brut à la sortie et passe la tournée en EN_TOURNEE.
func (uc *UseCase) Sortie(ctx context.Context, tourID string, input SortieInput) (*entity.Tour, error) {
	if input.PoidsBrutSortie.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
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
		if t.Statut != entity.TourStatutPretAPartir {
			return domain.ErrInvalidState
		}

		now := time.Now().UTC()
		t.PoidsBrutSortie = &input.PoidsBrutSortie
		if t.PoidsVide != nil {
			t.PoidsTare = t.PoidsVide
			net := input.PoidsBrutSortie.Sub(*t.PoidsVide)
			t.PoidsNetCalcule = &net
		}
		t.SecuriteIDSortie = &input.SecuriteID
		t.Statut = entity.TourStatutEnTournee
		t.DateSortie = &now
		t.UpdatedAt = now
		if err := tourRepo.Update(t); err != nil {
			return err
		}
		if t.DriverID != nil {
			if err := driverRepo.UpdateStatut(*t.DriverID, entity.DriverStatutEnTournee); err != nil {
				return err
			}
		}
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RetourSecuriteInput entrée pour le pointage du retour à l'usine (sécurité).
// Le poids est facultatif: le poste constate l'arrivée, la pesée peut se faire
// après, au déchargement.
type RetourSecuriteInput struct {
	PoidsBrutRetour decimal.Decimal
	SecuriteID      string
}

// RetourSecurite pointe l'arrivée du camion et met la tournée en attente de
// déchargement. Le comptage des caisses reste à faire par l'agent de contrôle.
func (uc *UseCase) RetourSecurite(ctx context.Context, tourID string, input RetourSecuriteInput) (*entity.Tour, error) {
	if input.PoidsBrutRetour.IsNegative() {
		return nil, domain.ErrInvalidInput
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
		if t.Statut != entity.TourStatutEnTournee {
			return domain.ErrInvalidState
		}

		now := time.Now().UTC()
		if input.PoidsBrutRetour.IsPositive() {
			t.PoidsBrutRetour = &input.PoidsBrutRetour
		}
		t.SecuriteIDEntree = &input.SecuriteID
		t.Statut = entity.TourStatutAttenteDechargement
		t.DateEntree = &now
		t.UpdatedAt = now
		if err := tourRepo.Update(t); err != nil {
			return err
		}
		if t.DriverID != nil {
			if err := driverRepo.UpdateStatut(*t.DriverID, entity.DriverStatutAttenteDechargement); err != nil {
				return err
			}
		}
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// EntreeInput entrée du flux historique: retour pesé au pont bascule, avec la
// tare fournie par le poste quand la tournée n'a pas eu de pesée à vide.
type EntreeInput struct {
	PoidsBrutRetour decimal.Decimal
	PoidsTare       decimal.Decimal
	SecuriteID      string
}

// Entree enregistre un retour pesé: le poids brut est obligatoire et le poids
// net vaut brut moins tare. La tare vient de l'appel, sinon de la pesée à vide
// de la tournée. Conservé pour les anciens clients mobiles.
func (uc *UseCase) Entree(ctx context.Context, tourID string, input EntreeInput) (*entity.Tour, error) {
	if input.PoidsBrutRetour.LessThanOrEqual(decimal.Zero) || input.PoidsTare.IsNegative() {
		return nil, domain.ErrInvalidInput
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
		if t.Statut != entity.TourStatutEnTournee {
			return domain.ErrInvalidState
		}

		tare := input.PoidsTare
		if !tare.IsPositive() {
			switch {
			case t.PoidsTare != nil:
				tare = *t.PoidsTare
			case t.PoidsVide != nil:
				tare = *t.PoidsVide
			}
		}

		now := time.Now().UTC()
		t.PoidsBrutRetour = &input.PoidsBrutRetour
		if tare.IsPositive() {
			t.PoidsTare = &tare
			net := input.PoidsBrutRetour.Sub(tare)
			t.PoidsNetCalcule = &net
		}
		t.SecuriteIDEntree = &input.SecuriteID
		t.Statut = entity.TourStatutAttenteDechargement
		t.DateEntree = &now
		t.UpdatedAt = now
		if err := tourRepo.Update(t); err != nil {
			return err
		}
		if t.DriverID != nil {
			if err := driverRepo.UpdateStatut(*t.DriverID, entity.DriverStatutAttenteDechargement); err != nil {
				return err
			}
		}
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
