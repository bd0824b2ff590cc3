package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/maleksellami/caisse-backend/internal/domain"
	"github.com/maleksellami/caisse-backend/internal/domain/entity"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, password_hash, name, role, expo_push_token, statut, created_at, updated_at`

// UserRepo implémentation de UserRepository sur PostgreSQL (pool ou tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construit l'adaptateur. Passer un pool ou une tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func scanUser(row rowScanner) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.ExpoPushToken, &u.Statut, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create insère un utilisateur. ErrInvalidInput si l'email existe déjà.
func (r *UserRepo) Create(u *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Role, u.ExpoPushToken, u.Statut, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByID charge un utilisateur. nil, nil si inexistant.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// FindByEmail charge un utilisateur par email. nil, nil si inexistant.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	u, err := scanUser(r.q.QueryRow(context.Background(), query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// ListByRoles retourne les utilisateurs actifs portant l'un des rôles donnés.
func (r *UserRepo) ListByRoles(roles ...string) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE role = ANY($1) AND statut = 'active' ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, roles)
	if err != nil {
		return nil, fmt.Errorf("list users by roles: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows users: %w", err)
	}
	return users, nil
}

// UpdatePushToken enregistre le token push Expo de l'utilisateur.
func (r *UserRepo) UpdatePushToken(userID, token string) error {
	query := `UPDATE users SET expo_push_token = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, userID, token)
	if err != nil {
		return fmt.Errorf("update push token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
