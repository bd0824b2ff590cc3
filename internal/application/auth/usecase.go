package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/maleksellami/caisse-backend/internal/application/dto"
	"github.com/maleksellami/caisse-backend/internal/domain"
	"github.com/maleksellami/caisse-backend/internal/domain/entity"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
	"github.com/maleksellami/caisse-backend/pkg/jwt"
)

// JWTConfig configuration de génération des tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase cas d'usage d'authentification: login mobile et création d'agents.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewUseCase construit le cas d'usage.
func NewUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login vérifie email/mot de passe, génère un JWT et retourne token + profil.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Statut != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  toUserDTO(user),
	}, nil
}

// Register crée un compte agent: hash bcrypt du mot de passe, rôle obligatoire
// parmi les rôles connus. Réservé à l'admin.
func (uc *UseCase) Register(email, password, name, role string) (*dto.UserDTO, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(password) < 8 || !roleValide(role) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Statut:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	d := toUserDTO(user)
	return &d, nil
}

func roleValide(role string) bool {
	for _, r := range entity.ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

func toUserDTO(u *entity.User) dto.UserDTO {
	return dto.UserDTO{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}
