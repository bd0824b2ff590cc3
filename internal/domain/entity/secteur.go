package entity

import "time"

// Secteur zone de livraison (données de référence statiques).
type Secteur struct {
	ID        string
	Nom       string
	CreatedAt time.Time
}
