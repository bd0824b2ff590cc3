// seed peuple la base avec les données de départ: comptes par rôle,
// secteurs de livraison et configuration caisse.
//
// Usage: go run ./cmd/seed
// Idempotent: les lignes déjà présentes sont laissées en place.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/maleksellami/caisse-backend/internal/domain/entity"
	"github.com/maleksellami/caisse-backend/internal/infrastructure/postgres"
	"github.com/maleksellami/caisse-backend/pkg/config"
)

type seedUser struct {
	email string
	name  string
	role  string
}

var seedUsers = []seedUser{
	{"admin@caisse.tn", "Administrateur", entity.RoleAdmin},
	{"direction@caisse.tn", "Direction Générale", entity.RoleDirection},
	{"controle@caisse.tn", "Agent de Contrôle", entity.RoleAgentControle},
	{"hygiene@caisse.tn", "Agent Hygiène", entity.RoleAgentHygiene},
	{"securite@caisse.tn", "Poste Sécurité", entity.RoleSecurite},
}

var seedSecteurs = []string{
	"Tunis",
	"Ariana",
	"Ben Arous",
	"Manouba",
	"Nabeul",
	"Bizerte",
	"Sousse",
	"Sfax",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("chargement de la configuration: %v", err)
	}

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "changeme123"
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("connexion à PostgreSQL: %v", err)
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		fail("migrations: %v", err)
	}

	userRepo := postgres.NewUserRepository(pool)
	secteurRepo := postgres.NewSecteurRepository(pool)
	configRepo := postgres.NewConfigRepository(pool)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fail("hash du mot de passe: %v", err)
	}

	for _, su := range seedUsers {
		existing, err := userRepo.FindByEmail(su.email)
		if err != nil {
			fail("recherche %s: %v", su.email, err)
		}
		if existing != nil {
			fmt.Printf("utilisateur déjà présent: %s\n", su.email)
			continue
		}
		now := time.Now()
		u := &entity.User{
			ID:           uuid.NewString(),
			Email:        su.email,
			PasswordHash: string(hash),
			Name:         su.name,
			Role:         su.role,
			Statut:       "active",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(u); err != nil {
			fail("création %s: %v", su.email, err)
		}
		fmt.Printf("utilisateur créé: %s (%s)\n", su.email, su.role)
	}

	for _, nom := range seedSecteurs {
		if _, err := secteurRepo.UpsertByNom(nom); err != nil {
			fail("secteur %s: %v", nom, err)
		}
	}
	fmt.Printf("secteurs en place: %d\n", len(seedSecteurs))

	existing, err := configRepo.Get()
	if err != nil {
		fail("lecture config caisse: %v", err)
	}
	if existing == nil {
		c := &entity.CaisseConfig{
			ID:        uuid.NewString(),
			ValeurTND: decimal.NewFromFloat(cfg.Caisse.ValeurTND),
			UpdatedAt: time.Now(),
		}
		if err := configRepo.Upsert(c); err != nil {
			fail("config caisse: %v", err)
		}
		fmt.Printf("valeur caisse configurée: %s TND\n", c.ValeurTND)
	} else {
		fmt.Printf("valeur caisse déjà configurée: %s TND\n", existing.ValeurTND)
	}

	fmt.Println("seed terminé")
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
