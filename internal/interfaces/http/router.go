package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/maleksellami/caisse-backend/internal/application/auth"
	"github.com/maleksellami/caisse-backend/internal/application/conflict"
	"github.com/maleksellami/caisse-backend/internal/application/dashboard"
	"github.com/maleksellami/caisse-backend/internal/application/notification"
	"github.com/maleksellami/caisse-backend/internal/application/referentiel"
	"github.com/maleksellami/caisse-backend/internal/application/stock"
	"github.com/maleksellami/caisse-backend/internal/application/tour"
	"github.com/maleksellami/caisse-backend/internal/domain/entity"
)

// RouterDeps dépendances du router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	TourUC         *tour.UseCase
	ConflictUC     *conflict.UseCase
	StockUC        *stock.UseCase
	DashboardUC    *dashboard.UseCase
	NotificationUC *notification.UseCase
	ReferentielUC  *referentiel.UseCase
	JWTSecret      string
}

// Router enregistre les routes de l'API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/mobile/login", authHandler.Login)
	api.Post("/auth/login", authHandler.Login)

	// Routes protégées (Bearer Token requis)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Création de comptes agents (admin)
	protected.Post("/auth/register", RequireRole(entity.RoleAdmin), authHandler.Register)

	// Tournées: chaque poste n'accède qu'à ses transitions
	tours := protected.Group("/tours")
	tourHandler := NewTourHandler(deps.TourUC)
	tours.Get("/", tourHandler.List)
	tours.Get("/next-matricule", tourHandler.NextMatricule)
	tours.Post("/pesee-vide", RequireRole(entity.RoleSecurite, entity.RoleAdmin), tourHandler.PeseeVide)
	tours.Post("/create", RequireRole(entity.RoleAgentControle, entity.RoleAdmin), tourHandler.Create)
	tours.Get("/:id", tourHandler.Get)
	tours.Patch("/:id/chargement", RequireRole(entity.RoleAgentControle, entity.RoleAdmin), tourHandler.Chargement)
	tours.Patch("/:id/sortie", RequireRole(entity.RoleSecurite, entity.RoleAdmin), tourHandler.Sortie)
	tours.Patch("/:id/retour-securite", RequireRole(entity.RoleSecurite, entity.RoleAdmin), tourHandler.RetourSecurite)
	// Flux historique de retour pesé, conservé pour les anciens clients mobiles
	tours.Patch("/:id/entree", RequireRole(entity.RoleSecurite, entity.RoleAdmin), tourHandler.Entree)
	tours.Patch("/:id/retour", RequireRole(entity.RoleAgentControle, entity.RoleAdmin), tourHandler.Retour)
	tours.Patch("/:id/hygiene", RequireRole(entity.RoleAgentHygiene, entity.RoleAdmin), tourHandler.Hygiene)

	// Conflits: lecture pour tous, résolution réservée à la Direction
	conflicts := protected.Group("/conflicts")
	conflictHandler := NewConflictHandler(deps.ConflictUC)
	conflicts.Get("/", conflictHandler.List)
	conflicts.Get("/:id", conflictHandler.Get)
	conflicts.Post("/:id/approve", RequireRole(entity.RoleDirection, entity.RoleAdmin), conflictHandler.Approve)
	conflicts.Post("/:id/reject", RequireRole(entity.RoleDirection, entity.RoleAdmin), conflictHandler.Reject)

	// Stock et configuration caisses (écriture admin)
	config := protected.Group("/config")
	stockHandler := NewStockHandler(deps.StockUC)
	config.Get("/stock", stockHandler.Get)
	config.Post("/stock/init", RequireRole(entity.RoleAdmin), stockHandler.Init)
	config.Post("/stock/ajustement", RequireRole(entity.RoleAdmin), stockHandler.Ajustement)
	config.Get("/valeur-caisse", stockHandler.GetValeurCaisse)
	config.Put("/valeur-caisse", RequireRole(entity.RoleAdmin), stockHandler.SetValeurCaisse)

	// Tableau de bord (Direction et admin)
	dash := protected.Group("/dashboard", RequireRole(entity.RoleDirection, entity.RoleAdmin))
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.TourUC, deps.StockUC)
	dash.Get("/kpis", dashboardHandler.KPIs)
	dash.Get("/tours-active", dashboardHandler.ToursActive)
	dash.Get("/conflicts-urgent", conflictHandler.Urgent)
	dash.Get("/pertes", dashboardHandler.Pertes)
	dash.Get("/finance", dashboardHandler.Finance)
	dash.Get("/mouvements", dashboardHandler.Mouvements)

	// Notifications in-app
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Post("/register-token", notificationHandler.RegisterToken)
	notifications.Post("/mark-all-read", notificationHandler.MarkAllRead)
	notifications.Post("/:id/read", notificationHandler.MarkRead)

	// Référentiel chauffeurs et secteurs
	referentielHandler := NewReferentielHandler(deps.ReferentielUC, deps.ConflictUC)
	protected.Get("/drivers", referentielHandler.ListDrivers)
	protected.Post("/drivers", RequireRole(entity.RoleAdmin), referentielHandler.CreateDriver)
	protected.Get("/drivers/:id", referentielHandler.GetDriver)
	protected.Get("/secteurs", referentielHandler.ListSecteurs)
}
