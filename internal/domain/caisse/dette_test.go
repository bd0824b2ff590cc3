package caisse_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/maleksellami/caisse-backend/internal/domain/caisse"
)

// Exemple de référence: tolérance 3, 50 caisses parties, 45 revenues.
// Perte = 5, dette = 5 × valeur caisse, hors tolérance.
func TestRapprocher_PerteHorsTolerance(t *testing.T) {
	valeur := decimal.NewFromInt(50)

	e := caisse.Rapprocher(50, 45, valeur, 3)

	assert.Equal(t, 5, e.QuantitePerdue)
	assert.True(t, e.MontantDetteTND.Equal(decimal.NewFromInt(250)), "dette = 5 × 50 TND")
	assert.True(t, e.DepasseTolerance)
	assert.True(t, e.Conflictuel())
	assert.False(t, e.Surplus())
}

func TestRapprocher_PerteDansTolerance(t *testing.T) {
	e := caisse.Rapprocher(50, 48, decimal.NewFromInt(50), 3)

	assert.Equal(t, 2, e.QuantitePerdue)
	assert.False(t, e.DepasseTolerance, "2 caisses perdues avec tolérance 3")
	assert.True(t, e.Conflictuel(), "une perte dans la tolérance reste un conflit, sans dépassement")
}

func TestRapprocher_RetourComplet(t *testing.T) {
	e := caisse.Rapprocher(50, 50, decimal.NewFromInt(50), 0)

	assert.Equal(t, 0, e.QuantitePerdue)
	assert.False(t, e.Conflictuel(), "aucun conflit sans caisse manquante")
	assert.True(t, e.MontantDetteTND.IsZero())
}

// Un retour excédentaire produit une quantité négative et une dette négative:
// le moteur la traite comme surplus suspect, jamais comme créance.
func TestRapprocher_Surplus(t *testing.T) {
	e := caisse.Rapprocher(50, 53, decimal.NewFromInt(50), 0)

	assert.Equal(t, -3, e.QuantitePerdue)
	assert.True(t, e.Surplus())
	assert.False(t, e.Conflictuel())
	assert.True(t, e.MontantDetteTND.Equal(decimal.NewFromInt(-150)))
}

func TestRapprocher_ValeurDecimale(t *testing.T) {
	valeur := decimal.RequireFromString("15.5")

	e := caisse.Rapprocher(10, 6, valeur, 0)

	assert.Equal(t, 4, e.QuantitePerdue)
	assert.True(t, e.MontantDetteTND.Equal(decimal.RequireFromString("62")), "4 × 15.5 TND")
}

// Tolérance exactement atteinte: perte == tolérance ne dépasse pas (comparaison stricte).
func TestRapprocher_ToleranceExacte(t *testing.T) {
	e := caisse.Rapprocher(50, 47, decimal.NewFromInt(50), 3)

	assert.Equal(t, 3, e.QuantitePerdue)
	assert.False(t, e.DepasseTolerance)
}
