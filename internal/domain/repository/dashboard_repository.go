package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// KPIResult agrégats affichés en tête du tableau de bord Direction.
type KPIResult struct {
	ToursActives         int
	ToursTermineesJour   int
	ConflitsEnAttente    int
	DetteTotaleTND       decimal.Decimal
	CaissesEnCirculation int
	StockActuel          int
	StockEnAlerte        bool
}

// PerteDriverResult pertes cumulées d'un chauffeur sur une période.
type PerteDriverResult struct {
	DriverID       string
	NomComplet     string
	NbConflits     int
	CaissesPerdues int
	DetteTotaleTND decimal.Decimal
	DetteRestante  decimal.Decimal
}

// FinanceMoisResult synthèse financière d'un mois calendaire.
type FinanceMoisResult struct {
	Mois            string // format YYYY-MM
	CaissesPerdues  int
	DetteGeneree    decimal.Decimal
	DetteRecouvree  decimal.Decimal
	DetteAnnulee    decimal.Decimal
	ConflitsOuverts int
}

// DashboardRepository définit le port des requêtes d'agrégation du tableau de bord.
// Lecture seule, hors transaction: la fraîcheur à la seconde près n'est pas requise.
type DashboardRepository interface {
	KPIs(ctx context.Context, jour time.Time) (*KPIResult, error)
	PertesParDriver(ctx context.Context, from, to time.Time) ([]*PerteDriverResult, error)
	FinanceMois(ctx context.Context, mois string) (*FinanceMoisResult, error)
}
