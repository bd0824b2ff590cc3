package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/maleksellami/caisse-backend/internal/domain/entity"
)

// ConflictDTO représentation d'un conflit de caisses dans les réponses.
type ConflictDTO struct {
	ID               string          `json:"id"`
	TourID           string          `json:"tour_id"`
	QuantitePerdue   int             `json:"quantite_perdue"`
	MontantDetteTND  decimal.Decimal `json:"montant_dette_tnd"`
	DepasseTolerance bool            `json:"depasse_tolerance"`
	Statut           string          `json:"statut"`
	NotesDirection   *string         `json:"notes_direction,omitempty"`
	DateApprobation  *time.Time      `json:"date_approbation,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	Tour             *TourDTO        `json:"tour,omitempty"`
}

// ToConflictDTO convertit l'entité en DTO. La tournée jointe peut être nil.
func ToConflictDTO(c *entity.Conflict, tour *TourDTO) ConflictDTO {
	return ConflictDTO{
		ID:               c.ID,
		TourID:           c.TourID,
		QuantitePerdue:   c.QuantitePerdue,
		MontantDetteTND:  c.MontantDetteTND,
		DepasseTolerance: c.DepasseTolerance,
		Statut:           c.Statut,
		NotesDirection:   c.NotesDirection,
		DateApprobation:  c.DateApprobation,
		CreatedAt:        c.CreatedAt,
		Tour:             tour,
	}
}

// ResolveConflictRequest body pour POST /api/conflicts/:id/approve et /reject.
// Notes est obligatoire pour un rejet.
type ResolveConflictRequest struct {
	Notes string `json:"notes,omitempty"`
}

// ListConflictsRequest query pour GET /api/conflicts.
type ListConflictsRequest struct {
	Statut string `query:"statut"`
	PageRequest
}

// ListConflictsResponse page de conflits.
type ListConflictsResponse struct {
	Conflicts []ConflictDTO `json:"conflicts"`
	Page      PageResponse  `json:"page"`
}
