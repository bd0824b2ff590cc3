package notification_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maleksellami/caisse-backend/internal/application/notification"
	"github.com/maleksellami/caisse-backend/internal/domain"
	"github.com/maleksellami/caisse-backend/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en mémoire
// ──────────────────────────────────────────────────────────────────────────────

type fakeNotifRepo struct {
	notifications map[string]*entity.Notification
}

func (r *fakeNotifRepo) CreateMany(ns []*entity.Notification) error {
	for _, n := range ns {
		cp := *n
		r.notifications[n.ID] = &cp
	}
	return nil
}

func (r *fakeNotifRepo) ListByUser(userID string, limit int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotifRepo) MarkRead(id, userID string) (int, error) {
	n, ok := r.notifications[id]
	if !ok || n.UserID != userID {
		return 0, nil
	}
	n.IsRead = true
	return 1, nil
}

func (r *fakeNotifRepo) MarkAllRead(userID string) error {
	for _, n := range r.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotifRepo) CountUnread(userID string) (int, error) {
	count := 0
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

type fakeUserRepo struct {
	tokens map[string]string
}

func (r *fakeUserRepo) Create(u *entity.User) error { return nil }

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) { return nil, nil }

func (r *fakeUserRepo) FindByEmail(e string) (*entity.User, error) { return nil, nil }

func (r *fakeUserRepo) ListByRoles(roles ...string) ([]*entity.User, error) { return nil, nil }

func (r *fakeUserRepo) UpdatePushToken(userID, token string) error {
	if r.tokens == nil {
		return domain.ErrUserNotFound
	}
	r.tokens[userID] = token
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func newUseCase() (*notification.UseCase, *fakeNotifRepo, *fakeUserRepo) {
	notifs := &fakeNotifRepo{notifications: map[string]*entity.Notification{}}
	users := &fakeUserRepo{tokens: map[string]string{}}
	return notification.NewUseCase(notifs, users), notifs, users
}

func TestMarkRead_NotificationDUnAutreUtilisateurRefusee(t *testing.T) {
	uc, notifs, _ := newUseCase()
	require.NoError(t, notifs.CreateMany([]*entity.Notification{
		{ID: "n1", UserID: "user-1", Type: entity.NotificationConflict, Message: "conflit"},
	}))

	err := uc.MarkRead("user-2", "n1")
	assert.ErrorIs(t, err, domain.ErrNotFound, "l'appartenance est vérifiée")
	assert.False(t, notifs.notifications["n1"].IsRead)

	require.NoError(t, uc.MarkRead("user-1", "n1"))
	assert.True(t, notifs.notifications["n1"].IsRead)
}

func TestMarkRead_InexistanteRetourneNotFound(t *testing.T) {
	uc, _, _ := newUseCase()

	err := uc.MarkRead("user-1", "n-inconnue")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCountUnread_NeCompteQueLesNonLues(t *testing.T) {
	uc, notifs, _ := newUseCase()
	require.NoError(t, notifs.CreateMany([]*entity.Notification{
		{ID: "n1", UserID: "user-1", Message: "a"},
		{ID: "n2", UserID: "user-1", Message: "b", IsRead: true},
		{ID: "n3", UserID: "user-2", Message: "c"},
	}))

	count, err := uc.CountUnread("user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, uc.MarkAllRead("user-1"))
	count, err = uc.CountUnread("user-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRegisterToken_FormatExpoExige(t *testing.T) {
	uc, _, users := newUseCase()

	cases := []struct {
		nom   string
		token string
		ok    bool
	}{
		{"token Expo valide", "ExponentPushToken[xxxxxxxxxxxxxxxxxxxxxx]", true},
		{"token Expo avec espaces autour", "  ExponentPushToken[yyy]  ", true},
		{"token FCM brut", "fcm-raw-token-abc123", false},
		{"préfixe sans crochet fermant", "ExponentPushToken[zzz", false},
		{"chaîne vide", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.nom, func(t *testing.T) {
			err := uc.RegisterToken("user-1", tc.token)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			}
		})
	}

	assert.Equal(t, "ExponentPushToken[yyy]", users.tokens["user-1"],
		"le token est enregistré sans les espaces")
}
