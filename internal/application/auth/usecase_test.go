package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/maleksellami/caisse-backend/internal/application/auth"
	"github.com/maleksellami/caisse-backend/internal/application/dto"
	"github.com/maleksellami/caisse-backend/internal/domain"
	"github.com/maleksellami/caisse-backend/internal/domain/entity"
)

type fakeUserRepo struct {
	users map[string]*entity.User // clé: email en minuscules
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	if _, ok := r.users[u.Email]; ok {
		return domain.ErrInvalidInput
	}
	r.users[u.Email] = u
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	u, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *fakeUserRepo) ListByRoles(roles ...string) ([]*entity.User, error) { return nil, nil }

func (r *fakeUserRepo) UpdatePushToken(userID, token string) error { return nil }

func newUseCase(t *testing.T) (*auth.UseCase, *fakeUserRepo) {
	t.Helper()
	repo := &fakeUserRepo{users: map[string]*entity.User{}}
	hash, err := bcrypt.GenerateFromPassword([]byte("motdepasse123"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.users["controle@caisse.tn"] = &entity.User{
		ID:           "user-1",
		Email:        "controle@caisse.tn",
		PasswordHash: string(hash),
		Name:         "Agent de Contrôle",
		Role:         entity.RoleAgentControle,
		Statut:       "active",
	}
	uc := auth.NewUseCase(repo, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "caisse-backend-test",
	})
	return uc, repo
}

func TestLogin_CredentialsValidesRetourneTokenEtProfil(t *testing.T) {
	uc, _ := newUseCase(t)

	resp, err := uc.Login(dto.LoginRequest{Email: "controle@caisse.tn", Password: "motdepasse123"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "user-1", resp.User.ID)
	assert.Equal(t, entity.RoleAgentControle, resp.User.Role)
}

func TestLogin_EmailInsensibleALaCasse(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.Login(dto.LoginRequest{Email: "  Controle@Caisse.TN ", Password: "motdepasse123"})
	assert.NoError(t, err)
}

func TestLogin_MauvaisMotDePasseRefuse(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.Login(dto.LoginRequest{Email: "controle@caisse.tn", Password: "mauvais"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UtilisateurInconnuRefuse(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.Login(dto.LoginRequest{Email: "inconnu@caisse.tn", Password: "motdepasse123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_CompteDesactiveRefuse(t *testing.T) {
	uc, repo := newUseCase(t)
	repo.users["controle@caisse.tn"].Statut = "suspended"

	_, err := uc.Login(dto.LoginRequest{Email: "controle@caisse.tn", Password: "motdepasse123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegister_CreeUnCompteActif(t *testing.T) {
	uc, repo := newUseCase(t)

	user, err := uc.Register("Hygiene@Caisse.tn", "motdepasse123", "Agent Hygiène", entity.RoleAgentHygiene)
	require.NoError(t, err)

	assert.Equal(t, "hygiene@caisse.tn", user.Email, "l'email est normalisé en minuscules")
	assert.Equal(t, entity.RoleAgentHygiene, user.Role)

	stored := repo.users["hygiene@caisse.tn"]
	require.NotNil(t, stored)
	assert.Equal(t, "active", stored.Statut)
	assert.NotEqual(t, "motdepasse123", stored.PasswordHash, "jamais de mot de passe en clair")
}

func TestRegister_MotDePasseTropCourtRefuse(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.Register("x@caisse.tn", "court", "X", entity.RoleSecurite)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_RoleInconnuRefuse(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.Register("x@caisse.tn", "motdepasse123", "X", "SUPER_ADMIN")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_EmailDejaPrisRefuse(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.Register("controle@caisse.tn", "motdepasse123", "Doublon", entity.RoleAgentControle)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
