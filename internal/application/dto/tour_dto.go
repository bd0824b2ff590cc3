package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/maleksellami/caisse-backend/internal/domain/entity"
)

// PeseeVideRequest body pour POST /api/tours/pesee-vide (sécurité).
type PeseeVideRequest struct {
	MatriculeVehicule string          `json:"matricule_vehicule"`
	PoidsVide         decimal.Decimal `json:"poids_vide"`
}

// ChargementRequest body pour PATCH /api/tours/:id/chargement (agent de contrôle).
// DriverID ou DriverNom: si seul le nom est fourni, le chauffeur est créé à la volée.
type ChargementRequest struct {
	DriverID          string `json:"driver_id,omitempty"`
	DriverNom         string `json:"driver_nom,omitempty"`
	SecteurID         string `json:"secteur_id,omitempty"`
	SecteurNom        string `json:"secteur_nom,omitempty"`
	NbreCaissesDepart int    `json:"nbre_caisses_depart"`
	ProduitsPoulet    bool   `json:"produits_poulet"`
	PhotoBase64       string `json:"photo_base64,omitempty"`
}

// SortieRequest body pour PATCH /api/tours/:id/sortie (sécurité).
type SortieRequest struct {
	PoidsBrutSortie decimal.Decimal `json:"poids_brut_sortie"`
}

// RetourSecuriteRequest body pour PATCH /api/tours/:id/retour-securite (sécurité).
// Le poids est facultatif: le poste peut simplement pointer l'arrivée.
type RetourSecuriteRequest struct {
	PoidsBrutRetour decimal.Decimal `json:"poids_brut_retour,omitempty"`
}

// EntreeRequest body du flux historique PATCH /api/tours/:id/entree: retour
// pesé au pont bascule, la tare permet le calcul du poids net.
type EntreeRequest struct {
	PoidsBrutRetour decimal.Decimal `json:"poids_brut_retour"`
	PoidsTare       decimal.Decimal `json:"poids_tare,omitempty"`
}

// RetourRequest body pour PATCH /api/tours/:id/retour (agent de contrôle).
type RetourRequest struct {
	NbreCaissesRetour int    `json:"nbre_caisses_retour"`
	PhotoBase64       string `json:"photo_base64,omitempty"`
}

// HygieneRequest body pour PATCH /api/tours/:id/hygiene (agent hygiène).
type HygieneRequest struct {
	Statut       string   `json:"statut"` // APPROUVE | REJETE
	Notes        string   `json:"notes,omitempty"`
	PhotosBase64 []string `json:"photos_base64,omitempty"`
}

// CreateTourRequest body du flux historique POST /api/tours/create: crée la
// tournée et effectue le chargement en un seul appel, sans pesée à vide.
type CreateTourRequest struct {
	MatriculeVehicule string `json:"matricule_vehicule"`
	DriverID          string `json:"driver_id,omitempty"`
	DriverNom         string `json:"driver_nom,omitempty"`
	SecteurID         string `json:"secteur_id,omitempty"`
	SecteurNom        string `json:"secteur_nom,omitempty"`
	NbreCaissesDepart int    `json:"nbre_caisses_depart"`
	ProduitsPoulet    bool   `json:"produits_poulet"`
	PhotoBase64       string `json:"photo_base64,omitempty"`
}

// ListToursRequest query pour GET /api/tours.
type ListToursRequest struct {
	Statut    string `query:"statut"`
	Matricule string `query:"matricule"`
	PageRequest
}

// TourDTO représentation d'une tournée dans les réponses.
type TourDTO struct {
	ID                string           `json:"id"`
	MatriculeVehicule string           `json:"matricule_vehicule"`
	Statut            string           `json:"statut"`
	Driver            *DriverDTO       `json:"driver,omitempty"`
	Secteur           *SecteurDTO      `json:"secteur,omitempty"`
	NbreCaissesDepart int              `json:"nbre_caisses_depart"`
	NbreCaissesRetour *int             `json:"nbre_caisses_retour,omitempty"`
	PoidsVide         *decimal.Decimal `json:"poids_vide,omitempty"`
	PoidsBrutSortie   *decimal.Decimal `json:"poids_brut_sortie,omitempty"`
	PoidsBrutRetour   *decimal.Decimal `json:"poids_brut_retour,omitempty"`
	PoidsNetCalcule   *decimal.Decimal `json:"poids_net_calcule,omitempty"`
	ProduitsPoulet    bool             `json:"produits_poulet"`
	StatutHygiene     *string          `json:"statut_hygiene,omitempty"`
	NotesHygiene      *string          `json:"notes_hygiene,omitempty"`
	PhotoDepartURL    *string          `json:"photo_depart_url,omitempty"`
	PhotoRetourURL    *string          `json:"photo_retour_url,omitempty"`
	PhotosHygiene     []string         `json:"photos_hygiene,omitempty"`
	DatePeseeVide     *time.Time       `json:"date_pesee_vide,omitempty"`
	DateChargement    *time.Time       `json:"date_chargement,omitempty"`
	DateSortie        *time.Time       `json:"date_sortie,omitempty"`
	DateEntree        *time.Time       `json:"date_entree,omitempty"`
	DateHygiene       *time.Time       `json:"date_hygiene,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// ToTourDTO convertit l'entité en DTO. Driver et Secteur peuvent être nil.
func ToTourDTO(t *entity.Tour, driver *entity.Driver, secteur *entity.Secteur) TourDTO {
	d := TourDTO{
		ID:                t.ID,
		MatriculeVehicule: t.MatriculeVehicule,
		Statut:            t.Statut,
		NbreCaissesDepart: t.NbreCaissesDepart,
		NbreCaissesRetour: t.NbreCaissesRetour,
		PoidsVide:         t.PoidsVide,
		PoidsBrutSortie:   t.PoidsBrutSortie,
		PoidsBrutRetour:   t.PoidsBrutRetour,
		PoidsNetCalcule:   t.PoidsNetCalcule,
		ProduitsPoulet:    t.ProduitsPoulet,
		StatutHygiene:     t.StatutHygiene,
		NotesHygiene:      t.NotesHygiene,
		PhotoDepartURL:    t.PhotoDepartURL,
		PhotoRetourURL:    t.PhotoRetourURL,
		PhotosHygiene:     t.PhotosHygiene,
		DatePeseeVide:     t.DatePeseeVide,
		DateChargement:    t.DateChargement,
		DateSortie:        t.DateSortie,
		DateEntree:        t.DateEntree,
		DateHygiene:       t.DateHygiene,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
	if driver != nil {
		dd := ToDriverDTO(driver)
		d.Driver = &dd
	}
	if secteur != nil {
		sd := ToSecteurDTO(secteur)
		d.Secteur = &sd
	}
	return d
}

// ListToursResponse page de tournées.
type ListToursResponse struct {
	Tours []TourDTO    `json:"tours"`
	Page  PageResponse `json:"page"`
}

// NextMatriculeResponse prochaine série de matricule suggérée au poste de pesée.
type NextMatriculeResponse struct {
	Serie string `json:"serie"`
}
