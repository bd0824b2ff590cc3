package tour

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/maleksellami/caisse-backend/internal/domain"
	"github.com/maleksellami/caisse-backend/internal/domain/entity"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

// Tolérance appliquée aux chauffeurs créés à la volée au chargement,
// tant que l'admin n'a pas fixé la leur.
const toleranceCaissesDefaut = 3

// Série de matricule proposée au poste de pesée quand aucune tournée n'existe.
const serieMatriculeDefaut = "253"

// UseCase pilote le cycle de vie des tournées: pesée à vide, chargement,
// sortie, retour et contrôle hygiène. Le graphe des statuts est strictement
// avancé, chaque transition vérifie le statut courant sous verrou de ligne.
type UseCase struct {
	txRunner    TxRunner
	tourRepo    repository.TourRepository
	driverRepo  repository.DriverRepository
	secteurRepo repository.SecteurRepository
	configRepo  repository.ConfigRepository
	photos      PhotoStore
	notifier    Notifier

	valeurDefautTND decimal.Decimal
}

// NewUseCase construit le cas d'usage.
func NewUseCase(
	txRunner TxRunner,
	tourRepo repository.TourRepository,
	driverRepo repository.DriverRepository,
	secteurRepo repository.SecteurRepository,
	configRepo repository.ConfigRepository,
	photos PhotoStore,
	notifier Notifier,
	valeurDefautTND decimal.Decimal,
) *UseCase {
	return &UseCase{
		txRunner:        txRunner,
		tourRepo:        tourRepo,
		driverRepo:      driverRepo,
		secteurRepo:     secteurRepo,
		configRepo:      configRepo,
		photos:          photos,
		notifier:        notifier,
		valeurDefautTND: valeurDefautTND,
	}
}

// TourDetail tournée accompagnée de son chauffeur et de son secteur (peuvent être nil).
type TourDetail struct {
	Tour    *entity.Tour
	Driver  *entity.Driver
	Secteur *entity.Secteur
}

// Get charge une tournée avec ses jointures.
func (uc *UseCase) Get(id string) (*TourDetail, error) {
	t, err := uc.tourRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return uc.hydrate(t, map[string]*entity.Driver{}, map[string]*entity.Secteur{})
}

// List retourne une page de tournées avec leurs jointures.
func (uc *UseCase) List(filter repository.TourFilter) ([]*TourDetail, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	tours, err := uc.tourRepo.List(filter)
	if err != nil {
		return nil, err
	}
	return uc.hydrateAll(tours)
}

// ListActive retourne les tournées non terminées, les plus récentes d'abord.
func (uc *UseCase) ListActive(limit int) ([]*TourDetail, error) {
	if limit <= 0 {
		limit = 50
	}
	tours, err := uc.tourRepo.ListActive(limit)
	if err != nil {
		return nil, err
	}
	return uc.hydrateAll(tours)
}

// NextMatriculeSerie retourne la série du dernier matricule enregistré, pour
// pré-remplir le poste de pesée. "253" si aucune tournée n'existe encore.
func (uc *UseCase) NextMatriculeSerie() (string, error) {
	matricule, err := uc.tourRepo.LatestMatricule()
	if err != nil {
		return "", err
	}
	fields := strings.Fields(matricule)
	if len(fields) == 0 {
		return serieMatriculeDefaut, nil
	}
	return fields[0], nil
}

func (uc *UseCase) hydrateAll(tours []*entity.Tour) ([]*TourDetail, error) {
	drivers := map[string]*entity.Driver{}
	secteurs := map[string]*entity.Secteur{}
	details := make([]*TourDetail, 0, len(tours))
	for _, t := range tours {
		d, err := uc.hydrate(t, drivers, secteurs)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

func (uc *UseCase) hydrate(t *entity.Tour, drivers map[string]*entity.Driver, secteurs map[string]*entity.Secteur) (*TourDetail, error) {
	detail := &TourDetail{Tour: t}
	if t.DriverID != nil {
		d, ok := drivers[*t.DriverID]
		if !ok {
			var err error
			d, err = uc.driverRepo.GetByID(*t.DriverID)
			if err != nil {
				return nil, err
			}
			drivers[*t.DriverID] = d
		}
		detail.Driver = d
	}
	if t.SecteurID != nil {
		s, ok := secteurs[*t.SecteurID]
		if !ok {
			var err error
			s, err = uc.secteurRepo.GetByID(*t.SecteurID)
			if err != nil {
				return nil, err
			}
			secteurs[*t.SecteurID] = s
		}
		detail.Secteur = s
	}
	return detail, nil
}

// valeurCaisse retourne la valeur de remplacement d'une caisse, avec repli sur
// la valeur de configuration du service si aucune ligne n'existe en base.
func (uc *UseCase) valeurCaisse() (decimal.Decimal, error) {
	cfg, err := uc.configRepo.Get()
	if err != nil {
		return decimal.Zero, err
	}
	if cfg == nil {
		return uc.valeurDefautTND, nil
	}
	return cfg.ValeurTND, nil
}

func (uc *UseCase) savePhoto(base64Data, prefix string) (*string, error) {
	if base64Data == "" {
		return nil, nil
	}
	url, err := uc.photos.Save(base64Data, prefix)
	if err != nil {
		return nil, err
	}
	return &url, nil
}
