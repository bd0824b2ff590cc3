package dto

import "github.com/maleksellami/caisse-backend/internal/domain/entity"

// DriverDTO représentation d'un chauffeur dans les réponses.
type DriverDTO struct {
	ID                        string  `json:"id"`
	NomComplet                string  `json:"nom_complet"`
	MatriculeParDefaut        *string `json:"matricule_par_defaut,omitempty"`
	MarqueVehicule            *string `json:"marque_vehicule,omitempty"`
	ToleranceCaissesMensuelle int     `json:"tolerance_caisses_mensuelle"`
	Statut                    string  `json:"statut"`
}

// ToDriverDTO convertit l'entité en DTO.
func ToDriverDTO(d *entity.Driver) DriverDTO {
	return DriverDTO{
		ID:                        d.ID,
		NomComplet:                d.NomComplet,
		MatriculeParDefaut:        d.MatriculeParDefaut,
		MarqueVehicule:            d.MarqueVehicule,
		ToleranceCaissesMensuelle: d.ToleranceCaissesMensuelle,
		Statut:                    d.Statut,
	}
}

// CreateDriverRequest body pour POST /api/drivers (admin).
type CreateDriverRequest struct {
	NomComplet                string `json:"nom_complet"`
	MatriculeParDefaut        string `json:"matricule_par_defaut,omitempty"`
	MarqueVehicule            string `json:"marque_vehicule,omitempty"`
	ToleranceCaissesMensuelle int    `json:"tolerance_caisses_mensuelle"`
}

// SecteurDTO représentation d'un secteur dans les réponses.
type SecteurDTO struct {
	ID  string `json:"id"`
	Nom string `json:"nom"`
}

// ToSecteurDTO convertit l'entité en DTO.
func ToSecteurDTO(s *entity.Secteur) SecteurDTO {
	return SecteurDTO{ID: s.ID, Nom: s.Nom}
}
