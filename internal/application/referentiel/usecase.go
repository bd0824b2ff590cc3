// Package referentiel expose les données de référence: chauffeurs et secteurs.
package referentiel

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/maleksellami/caisse-backend/internal/domain"
	"github.com/maleksellami/caisse-backend/internal/domain/entity"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

// UseCase gestion des chauffeurs et secteurs.
type UseCase struct {
	driverRepo  repository.DriverRepository
	secteurRepo repository.SecteurRepository
}

// NewUseCase construit le cas d'usage.
func NewUseCase(driverRepo repository.DriverRepository, secteurRepo repository.SecteurRepository) *UseCase {
	return &UseCase{driverRepo: driverRepo, secteurRepo: secteurRepo}
}

// ListDrivers retourne tous les chauffeurs.
func (uc *UseCase) ListDrivers() ([]*entity.Driver, error) {
	return uc.driverRepo.List()
}

// GetDriver charge un chauffeur.
func (uc *UseCase) GetDriver(id string) (*entity.Driver, error) {
	d, err := uc.driverRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// CreateDriver crée un chauffeur (admin).
func (uc *UseCase) CreateDriver(nomComplet, matricule, marque string, tolerance int) (*entity.Driver, error) {
	nomComplet = strings.TrimSpace(nomComplet)
	if nomComplet == "" || tolerance < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	d := &entity.Driver{
		ID:                        uuid.NewString(),
		NomComplet:                nomComplet,
		ToleranceCaissesMensuelle: tolerance,
		Statut:                    entity.DriverStatutUsine,
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}
	if m := strings.TrimSpace(matricule); m != "" {
		d.MatriculeParDefaut = &m
	}
	if m := strings.TrimSpace(marque); m != "" {
		d.MarqueVehicule = &m
	}
	if err := uc.driverRepo.Create(d); err != nil {
		return nil, err
	}
	return d, nil
}

// ListSecteurs retourne tous les secteurs.
func (uc *UseCase) ListSecteurs() ([]*entity.Secteur, error) {
	return uc.secteurRepo.List()
}
