package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/maleksellami/caisse-backend/internal/application/auth"
	"github.com/maleksellami/caisse-backend/internal/application/conflict"
	"github.com/maleksellami/caisse-backend/internal/application/dashboard"
	"github.com/maleksellami/caisse-backend/internal/application/notification"
	"github.com/maleksellami/caisse-backend/internal/application/referentiel"
	"github.com/maleksellami/caisse-backend/internal/application/stock"
	"github.com/maleksellami/caisse-backend/internal/application/tour"
	"github.com/maleksellami/caisse-backend/internal/infrastructure/expo"
	"github.com/maleksellami/caisse-backend/internal/infrastructure/postgres"
	"github.com/maleksellami/caisse-backend/internal/infrastructure/storage"
	httpRouter "github.com/maleksellami/caisse-backend/internal/interfaces/http"
	"github.com/maleksellami/caisse-backend/pkg/config"
	"github.com/maleksellami/caisse-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("chargement de la configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("démarrage de l'application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion à PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migrations")
	}

	tourRepo := postgres.NewTourRepository(pool)
	driverRepo := postgres.NewDriverRepository(pool)
	secteurRepo := postgres.NewSecteurRepository(pool)
	conflictRepo := postgres.NewConflictRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	mouvementRepo := postgres.NewMouvementRepository(pool)
	configRepo := postgres.NewConfigRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	notifRepo := postgres.NewNotificationRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	photoStore, err := storage.NewPhotoStore(cfg.Upload.Dir, cfg.Upload.BaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("répertoire d'upload")
	}

	expoClient := expo.NewClient(cfg.Push.ExpoAccessToken, log)
	dispatcher := notification.NewDispatcher(userRepo, notifRepo, expoClient, log)

	valeurDefaut := decimal.NewFromFloat(cfg.Caisse.ValeurTND)
	tourUC := tour.NewUseCase(txRunner, tourRepo, driverRepo, secteurRepo, configRepo, photoStore, dispatcher, valeurDefaut)
	conflictUC := conflict.NewUseCase(txRunner, conflictRepo, tourRepo)
	stockUC := stock.NewUseCase(txRunner, stockRepo, mouvementRepo, configRepo, cfg.Caisse.SeuilAlertePct, valeurDefaut)
	dashboardUC := dashboard.NewUseCase(dashboardRepo)
	notificationUC := notification.NewUseCase(notifRepo, userRepo)
	referentielUC := referentiel.NewUseCase(driverRepo, secteurRepo)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    20 * 1024 * 1024, // photos de preuve en base64
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs. Le fichier est généré
	// par swag au déploiement; le middleware panique s'il est absent, donc on
	// ne le monte que si le fichier existe.
	if swaggerSpec := "./docs/swagger.json"; specExiste(swaggerSpec) {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerSpec,
			Path:     "docs",
			Title:    "Caisse Backend API",
		}))
	} else {
		log.Warn().Str("fichier", swaggerSpec).Msg("swagger.json absent, documentation désactivée")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	// Photos de preuve servies en statique
	app.Static(cfg.Upload.BaseURL, cfg.Upload.Dir)

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		TourUC:         tourUC,
		ConflictUC:     conflictUC,
		StockUC:        stockUC,
		DashboardUC:    dashboardUC,
		NotificationUC: notificationUC,
		ReferentielUC:  referentielUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP terminé")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}

	log.Info().Msg("application arrêtée")
}

func specExiste(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
