package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statuts d'une tournée. Le graphe est strictement avancé:
// PREPARATION -> PRET_A_PARTIR -> EN_TOURNEE -> EN_ATTENTE_DECHARGEMENT
// -> EN_ATTENTE_HYGIENE (produits poulet) ou TERMINEE.
const (
	TourStatutPreparation         = "PREPARATION"
	TourStatutPretAPartir         = "PRET_A_PARTIR"
	TourStatutEnTournee           = "EN_TOURNEE"
	TourStatutAttenteDechargement = "EN_ATTENTE_DECHARGEMENT"
	TourStatutAttenteHygiene      = "EN_ATTENTE_HYGIENE"
	TourStatutTerminee            = "TERMINEE"
)

// Résultats possibles du contrôle hygiène.
const (
	HygieneApprouve = "APPROUVE"
	HygieneRejete   = "REJETE"
)

// Tour représente une tournée de livraison, de la pesée à vide à la clôture.
// Les champs "retour" restent nil tant que l'étape correspondante n'a pas eu lieu.
type Tour struct {
	ID                string
	MatriculeVehicule string
	DriverID          *string // nil jusqu'au chargement si le chauffeur n'est pas encore affecté
	SecteurID         *string
	Statut            string

	NbreCaissesDepart int
	NbreCaissesRetour *int

	PoidsVide        *decimal.Decimal // pesée à vide (sécurité)
	PoidsBrutSortie  *decimal.Decimal // pesée chargée à la sortie
	PoidsBrutRetour  *decimal.Decimal // pesée au retour (flux legacy "entrée")
	PoidsTare        *decimal.Decimal
	PoidsNetCalcule  *decimal.Decimal

	AgentControleID  *string
	SecuriteIDSortie *string
	SecuriteIDEntree *string
	AgentHygieneID   *string

	PhotoDepartURL *string
	PhotoRetourURL *string
	PhotosHygiene  []string
	NotesHygiene   *string
	StatutHygiene  *string // APPROUVE | REJETE
	ProduitsPoulet bool

	DatePeseeVide      *time.Time
	DateChargement     *time.Time
	DateSortie         *time.Time
	DateEntree         *time.Time
	DateRetourControle *time.Time
	DateHygiene        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Terminee indique si la tournée est close (aucune transition possible).
func (t *Tour) Terminee() bool {
	return t.Statut == TourStatutTerminee
}
