package repository

import "github.com/maleksellami/caisse-backend/internal/domain/entity"

// SecteurRepository définit le port de persistance des secteurs (DIP).
type SecteurRepository interface {
	GetByID(id string) (*entity.Secteur, error)
	List() ([]*entity.Secteur, error)
	UpsertByNom(nom string) (*entity.Secteur, error)
}
