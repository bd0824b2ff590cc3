package entity

import "time"

// Rôles valides pour User.
const (
	RoleAgentControle = "AGENT_CONTROLE"
	RoleAgentHygiene  = "AGENT_HYGIENE"
	RoleSecurite      = "SECURITE"
	RoleAdmin         = "ADMIN"
	RoleDirection     = "DIRECTION"
)

// ValidRoles liste des rôles acceptés au login mobile.
var ValidRoles = []string{RoleAgentControle, RoleAgentHygiene, RoleSecurite, RoleAdmin, RoleDirection}

// User représente un acteur authentifié de l'application.
type User struct {
	ID            string
	Email         string
	PasswordHash  string // hash bcrypt, jamais en clair après persistance
	Name          string
	Role          string
	ExpoPushToken *string
	Statut        string // active, inactive, suspended
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
