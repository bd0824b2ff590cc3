package http_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/maleksellami/caisse-backend/internal/application/auth"
	"github.com/maleksellami/caisse-backend/internal/application/conflict"
	"github.com/maleksellami/caisse-backend/internal/application/dashboard"
	"github.com/maleksellami/caisse-backend/internal/application/notification"
	"github.com/maleksellami/caisse-backend/internal/application/referentiel"
	"github.com/maleksellami/caisse-backend/internal/application/stock"
	"github.com/maleksellami/caisse-backend/internal/application/tour"
	apphttp "github.com/maleksellami/caisse-backend/internal/interfaces/http"
)

// routesEnregistrees monte le router sur une app vierge et retourne l'ensemble
// "METHODE chemin" des routes déclarées. Les handlers ne sont jamais invoqués.
func routesEnregistrees() map[string]bool {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:         auth.NewUseCase(nil, auth.JWTConfig{}),
		TourUC:         tour.NewUseCase(nil, nil, nil, nil, nil, nil, nil, decimal.Zero),
		ConflictUC:     conflict.NewUseCase(nil, nil, nil),
		StockUC:        stock.NewUseCase(nil, nil, nil, nil, 20, decimal.Zero),
		DashboardUC:    dashboard.NewUseCase(nil),
		NotificationUC: notification.NewUseCase(nil, nil),
		ReferentielUC:  referentiel.NewUseCase(nil, nil),
		JWTSecret:      "test-secret",
	})

	routes := map[string]bool{}
	for _, r := range app.GetRoutes() {
		routes[fmt.Sprintf("%s %s", r.Method, r.Path)] = true
	}
	return routes
}

func TestRouter_TransitionsDeTourneeEnPatch(t *testing.T) {
	routes := routesEnregistrees()

	for _, chemin := range []string{
		"/api/tours/:id/chargement",
		"/api/tours/:id/sortie",
		"/api/tours/:id/retour-securite",
		"/api/tours/:id/entree",
		"/api/tours/:id/retour",
		"/api/tours/:id/hygiene",
	} {
		assert.True(t, routes["PATCH "+chemin], "PATCH %s doit être déclarée", chemin)
		assert.False(t, routes["POST "+chemin], "POST %s ne doit pas exister", chemin)
	}
}

func TestRouter_CreationsEnPost(t *testing.T) {
	routes := routesEnregistrees()

	assert.True(t, routes["POST /api/tours/pesee-vide"])
	assert.True(t, routes["POST /api/tours/create"])
	assert.True(t, routes["POST /api/mobile/login"])
	assert.True(t, routes["POST /api/conflicts/:id/approve"])
	assert.True(t, routes["POST /api/conflicts/:id/reject"])
}
