package dto

import (
	"time"

	"github.com/maleksellami/caisse-backend/internal/domain/entity"
)

// StockDTO état courant du stock de caisses.
type StockDTO struct {
	StockActuel    int       `json:"stock_actuel"`
	StockInitial   int       `json:"stock_initial"`
	SeuilAlertePct int       `json:"seuil_alerte_pct"`
	SeuilAlerte    int       `json:"seuil_alerte"`
	EnAlerte       bool      `json:"en_alerte"`
	Initialise     bool      `json:"initialise"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToStockDTO convertit l'entité en DTO.
func ToStockDTO(s *entity.StockCaisse) StockDTO {
	return StockDTO{
		StockActuel:    s.StockActuel,
		StockInitial:   s.StockInitial,
		SeuilAlertePct: s.SeuilAlertePct,
		SeuilAlerte:    s.SeuilAlerte(),
		EnAlerte:       s.EnAlerte(),
		Initialise:     s.Initialise,
		UpdatedAt:      s.UpdatedAt,
	}
}

// InitStockRequest body pour POST /api/config/stock/init (admin).
type InitStockRequest struct {
	StockInitial   int `json:"stock_initial"`
	SeuilAlertePct int `json:"seuil_alerte_pct,omitempty"`
}

// AjustementStockRequest body pour POST /api/config/stock/ajustement (admin).
// Quantite est signée: négative pour retirer des caisses du stock.
type AjustementStockRequest struct {
	Quantite int    `json:"quantite"`
	Notes    string `json:"notes"`
}

// MouvementDTO écriture du registre des caisses dans les réponses.
type MouvementDTO struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Quantite   int       `json:"quantite"`
	SoldeApres int       `json:"solde_apres"`
	TourID     *string   `json:"tour_id,omitempty"`
	ConflictID *string   `json:"conflict_id,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToMouvementDTO convertit l'entité en DTO.
func ToMouvementDTO(m *entity.MouvementCaisse) MouvementDTO {
	return MouvementDTO{
		ID:         m.ID,
		Type:       m.Type,
		Quantite:   m.Quantite,
		SoldeApres: m.SoldeApres,
		TourID:     m.TourID,
		ConflictID: m.ConflictID,
		Notes:      m.Notes,
		CreatedAt:  m.CreatedAt,
	}
}

// ListMouvementsRequest query pour GET /api/dashboard/mouvements.
type ListMouvementsRequest struct {
	Type   string `query:"type"`
	TourID string `query:"tour_id"`
	From   string `query:"from"` // format RFC 3339 ou YYYY-MM-DD
	To     string `query:"to"`
	PageRequest
}

// ListMouvementsResponse page du registre des caisses.
type ListMouvementsResponse struct {
	Mouvements []MouvementDTO `json:"mouvements"`
	Page       PageResponse   `json:"page"`
}

// UpdateValeurCaisseRequest body pour PUT /api/config/valeur-caisse (admin).
type UpdateValeurCaisseRequest struct {
	ValeurTND float64 `json:"valeur_tnd"`
}
