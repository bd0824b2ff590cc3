package entity

import "time"

// StockCaisse solde matérialisé du stock de caisses de l'usine (ligne unique).
// Ne se modifie jamais directement: toute variation passe par un MouvementCaisse.
type StockCaisse struct {
	ID             string
	StockActuel    int
	StockInitial   int
	SeuilAlertePct int
	Initialise     bool
	UpdatedAt      time.Time
}

// SeuilAlerte retourne le nombre de caisses sous lequel l'alerte stock est levée.
func (s *StockCaisse) SeuilAlerte() int {
	return s.StockInitial * s.SeuilAlertePct / 100
}

// EnAlerte indique si le stock actuel est sous le seuil d'alerte.
func (s *StockCaisse) EnAlerte() bool {
	return s.Initialise && s.StockActuel <= s.SeuilAlerte()
}
