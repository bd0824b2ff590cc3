package repository

import (
	"time"

	"github.com/maleksellami/caisse-backend/internal/domain/entity"
)

// MouvementFilter critères de consultation du registre.
type MouvementFilter struct {
	Type   string // vide = tous
	TourID string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// MouvementRepository définit le port du registre des caisses (append-only).
// Aucune méthode Update ni Delete: le registre est une piste d'audit.
type MouvementRepository interface {
	Create(mouvement *entity.MouvementCaisse) error
	List(filter MouvementFilter) ([]*entity.MouvementCaisse, error)
	Count(filter MouvementFilter) (int, error)
	// SumQuantite retourne la somme signée des quantités correspondant au filtre
	// (sert à vérifier l'invariant solde = initial + somme des mouvements).
	SumQuantite(filter MouvementFilter) (int, error)
}
