package notification

import (
	"strings"

	"github.com/maleksellami/caisse-backend/internal/domain"
	"github.com/maleksellami/caisse-backend/internal/domain/entity"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

// Préfixe des tokens Expo valides.
const expoTokenPrefix = "ExponentPushToken["

// UseCase boîte de réception des notifications et enregistrement des tokens push.
type UseCase struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
}

// NewUseCase construit le cas d'usage.
func NewUseCase(notifRepo repository.NotificationRepository, userRepo repository.UserRepository) *UseCase {
	return &UseCase{notifRepo: notifRepo, userRepo: userRepo}
}

// List retourne les notifications de l'utilisateur, les plus récentes d'abord.
func (uc *UseCase) List(userID string, limit int) ([]*entity.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	return uc.notifRepo.ListByUser(userID, limit)
}

// MarkRead marque une notification comme lue. L'appartenance est vérifiée: on
// ne marque pas la notification d'un autre utilisateur.
func (uc *UseCase) MarkRead(userID, notificationID string) error {
	n, err := uc.notifRepo.MarkRead(notificationID, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkAllRead marque toutes les notifications de l'utilisateur comme lues.
func (uc *UseCase) MarkAllRead(userID string) error {
	return uc.notifRepo.MarkAllRead(userID)
}

// CountUnread compte les notifications non lues de l'utilisateur.
func (uc *UseCase) CountUnread(userID string) (int, error) {
	return uc.notifRepo.CountUnread(userID)
}

// RegisterToken enregistre le token push Expo de l'appareil de l'utilisateur.
func (uc *UseCase) RegisterToken(userID, token string) error {
	token = strings.TrimSpace(token)
	if !strings.HasPrefix(token, expoTokenPrefix) || !strings.HasSuffix(token, "]") {
		return domain.ErrInvalidInput
	}
	return uc.userRepo.UpdatePushToken(userID, token)
}
