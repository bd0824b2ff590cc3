package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statuts d'un conflit. Transitions à sens unique: EN_ATTENTE -> PAYEE | ANNULE.
const (
	ConflictStatutEnAttente = "EN_ATTENTE"
	ConflictStatutPayee     = "PAYEE"
	ConflictStatutAnnule    = "ANNULE"
)

// Conflict représente une perte de caisses constatée au retour d'une tournée.
// Créé uniquement quand des caisses manquent: QuantitePerdue est toujours
// strictement positive, un retour excédentaire ne lève pas de conflit.
type Conflict struct {
	ID                     string
	TourID                 string
	QuantitePerdue         int
	MontantDetteTND        decimal.Decimal
	DepasseTolerance       bool
	Statut                 string
	NotesDirection         *string
	DirectionIDApprobation *string
	DateApprobation        *time.Time
	CreatedAt              time.Time
}
