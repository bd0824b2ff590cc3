package dto

// LoginRequest body pour POST /api/mobile/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserDTO représentation publique d'un utilisateur (jamais de hash).
type UserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// LoginResponse token JWT et profil de l'utilisateur connecté.
type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// RegisterPushTokenRequest body pour POST /api/notifications/register-token.
type RegisterPushTokenRequest struct {
	Token string `json:"token"`
}
