package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CaisseConfig valeur de remplacement d'une caisse (configuration globale, ligne unique).
type CaisseConfig struct {
	ID        string
	ValeurTND decimal.Decimal
	UpdatedAt time.Time
}
