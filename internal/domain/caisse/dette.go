package caisse

import "github.com/shopspring/decimal"

// Ecart résultat du rapprochement des caisses au retour d'une tournée (service de domaine).
type Ecart struct {
	QuantitePerdue   int             // dépar − retour; négatif = surplus
	MontantDetteTND  decimal.Decimal // QuantitePerdue × valeur caisse
	DepasseTolerance bool            // QuantitePerdue > tolérance du chauffeur
}

// Rapprocher calcule l'écart de caisses, la dette et le dépassement de tolérance.
// MontantDette = écart × valeurCaisse, calculé même pour un surplus (dette négative,
// le cas est signalé par Surplus()).
func Rapprocher(caissesDepart, caissesRetour int, valeurCaisse decimal.Decimal, tolerance int) Ecart {
	perte := caissesDepart - caissesRetour
	return Ecart{
		QuantitePerdue:   perte,
		MontantDetteTND:  decimal.NewFromInt(int64(perte)).Mul(valeurCaisse),
		DepasseTolerance: perte > tolerance,
	}
}

// Conflictuel indique si l'écart doit donner lieu à un conflit (perte stricte).
func (e Ecart) Conflictuel() bool {
	return e.QuantitePerdue > 0
}

// Surplus indique un retour excédentaire.
func (e Ecart) Surplus() bool {
	return e.QuantitePerdue < 0
}
