package repository

import "github.com/maleksellami/caisse-backend/internal/domain/entity"

// UserRepository définit le port de persistance des utilisateurs (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	ListByRoles(roles ...string) ([]*entity.User, error)
	UpdatePushToken(userID, token string) error
}
