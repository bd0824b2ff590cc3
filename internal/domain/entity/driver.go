package entity

import "time"

// Statuts opérationnels d'un chauffeur, alignés sur la tournée en cours.
const (
	DriverStatutUsine               = "A_L_USINE"
	DriverStatutPretAPartir         = "PRET_A_PARTIR"
	DriverStatutEnTournee           = "EN_TOURNEE"
	DriverStatutAttenteDechargement = "EN_ATTENTE_DECHARGEMENT"
	DriverStatutAttenteHygiene      = "EN_ATTENTE_HYGIENE"
)

// Driver représente un chauffeur. ToleranceCaissesMensuelle est le nombre de
// caisses perdues admis avant de lever un conflit hors tolérance.
type Driver struct {
	ID                        string
	NomComplet                string
	MatriculeParDefaut        *string
	MarqueVehicule            *string
	ToleranceCaissesMensuelle int
	Statut                    string
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}
