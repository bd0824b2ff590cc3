package entity

import "time"

// Types de mouvement du registre des caisses.
const (
	MouvementDepartTournee  = "DEPART_TOURNEE"  // sortie de stock au chargement (quantité négative)
	MouvementRetourTournee  = "RETOUR_TOURNEE"  // réintégration au déchargement (quantité positive)
	MouvementPerteConfirmee = "PERTE_CONFIRMEE" // perte constatée, liée à un conflit
	MouvementAjustement     = "AJUSTEMENT"      // correction manuelle (admin)
	MouvementInitialisation = "INITIALISATION"  // mise en place du stock initial
)

// MouvementCaisse écriture du registre, jamais modifiée ni supprimée après création.
// SoldeApres fige le solde résultant au moment de l'écriture (piste d'audit).
type MouvementCaisse struct {
	ID         string
	Type       string
	Quantite   int // signée: négative pour une sortie de stock
	SoldeApres int
	TourID     *string
	ConflictID *string
	UserID     *string
	Notes      *string
	CreatedAt  time.Time
}
