package dto

import (
	"github.com/shopspring/decimal"

	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

// KPIResponse indicateurs de tête du tableau de bord Direction.
type KPIResponse struct {
	ToursActives         int             `json:"tours_actives"`
	ToursTermineesJour   int             `json:"tours_terminees_jour"`
	ConflitsEnAttente    int             `json:"conflits_en_attente"`
	DetteTotaleTND       decimal.Decimal `json:"dette_totale_tnd"`
	CaissesEnCirculation int             `json:"caisses_en_circulation"`
	StockActuel          int             `json:"stock_actuel"`
	StockEnAlerte        bool            `json:"stock_en_alerte"`
}

// ToKPIResponse convertit le résultat d'agrégation en réponse.
func ToKPIResponse(r *repository.KPIResult) KPIResponse {
	return KPIResponse{
		ToursActives:         r.ToursActives,
		ToursTermineesJour:   r.ToursTermineesJour,
		ConflitsEnAttente:    r.ConflitsEnAttente,
		DetteTotaleTND:       r.DetteTotaleTND,
		CaissesEnCirculation: r.CaissesEnCirculation,
		StockActuel:          r.StockActuel,
		StockEnAlerte:        r.StockEnAlerte,
	}
}

// PerteDriverDTO pertes cumulées d'un chauffeur sur la période demandée.
type PerteDriverDTO struct {
	DriverID       string          `json:"driver_id"`
	NomComplet     string          `json:"nom_complet"`
	NbConflits     int             `json:"nb_conflits"`
	CaissesPerdues int             `json:"caisses_perdues"`
	DetteTotaleTND decimal.Decimal `json:"dette_totale_tnd"`
	DetteRestante  decimal.Decimal `json:"dette_restante"`
}

// PertesResponse synthèse des pertes par chauffeur.
type PertesResponse struct {
	Pertes []PerteDriverDTO `json:"pertes"`
}

// FinanceMoisResponse synthèse financière d'un mois calendaire.
type FinanceMoisResponse struct {
	Mois            string          `json:"mois"`
	CaissesPerdues  int             `json:"caisses_perdues"`
	DetteGeneree    decimal.Decimal `json:"dette_generee"`
	DetteRecouvree  decimal.Decimal `json:"dette_recouvree"`
	DetteAnnulee    decimal.Decimal `json:"dette_annulee"`
	ConflitsOuverts int             `json:"conflits_ouverts"`
}

// ToFinanceMoisResponse convertit le résultat d'agrégation en réponse.
func ToFinanceMoisResponse(r *repository.FinanceMoisResult) FinanceMoisResponse {
	return FinanceMoisResponse{
		Mois:            r.Mois,
		CaissesPerdues:  r.CaissesPerdues,
		DetteGeneree:    r.DetteGeneree,
		DetteRecouvree:  r.DetteRecouvree,
		DetteAnnulee:    r.DetteAnnulee,
		ConflitsOuverts: r.ConflitsOuverts,
	}
}
