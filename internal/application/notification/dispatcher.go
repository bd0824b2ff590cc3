package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/maleksellami/caisse-backend/internal/domain/entity"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
	"github.com/maleksellami/caisse-backend/pkg/logger"
)

const pushTimeout = 10 * time.Second

// Formatage des montants à la française (espace des milliers, virgule décimale).
var printer = message.NewPrinter(language.French)

// Dispatcher diffuse les événements métier: persiste une notification par
// destinataire puis pousse sur les appareils enregistrés. L'envoi se fait dans
// une goroutine détachée, les échecs sont journalisés et jamais remontés: une
// notification perdue ne doit pas faire échouer une transition de tournée.
type Dispatcher struct {
	userRepo  repository.UserRepository
	notifRepo repository.NotificationRepository
	pusher    Pusher
	log       *logger.Logger
}

// NewDispatcher construit le dispatcher.
func NewDispatcher(userRepo repository.UserRepository, notifRepo repository.NotificationRepository, pusher Pusher, log *logger.Logger) *Dispatcher {
	return &Dispatcher{userRepo: userRepo, notifRepo: notifRepo, pusher: pusher, log: log}
}

// NotifyConflict alerte Direction et Admin qu'une perte de caisses a été constatée.
func (d *Dispatcher) NotifyConflict(conflict *entity.Conflict, tour *entity.Tour) {
	body := printer.Sprintf("%d caisses manquantes au retour du camion %s, dette estimée %.2f TND",
		conflict.QuantitePerdue, tour.MatriculeVehicule, conflict.MontantDetteTND.InexactFloat64())
	go d.dispatch(entity.NotificationConflict, "Conflit de caisses", body,
		&tour.ID, &conflict.ID, entity.RoleDirection, entity.RoleAdmin)
}

// NotifyHygieneRequired prévient les agents hygiène qu'un camion attend leur contrôle.
func (d *Dispatcher) NotifyHygieneRequired(tour *entity.Tour) {
	body := printer.Sprintf("Le camion %s attend le contrôle hygiène", tour.MatriculeVehicule)
	go d.dispatch(entity.NotificationHygieneRequired, "Contrôle hygiène requis", body,
		&tour.ID, nil, entity.RoleAgentHygiene)
}

// NotifyHygieneReject signale à Direction et Admin un contrôle hygiène rejeté.
func (d *Dispatcher) NotifyHygieneReject(tour *entity.Tour) {
	body := printer.Sprintf("Contrôle hygiène rejeté pour le camion %s", tour.MatriculeVehicule)
	go d.dispatch(entity.NotificationHygieneReject, "Hygiène rejetée", body,
		&tour.ID, nil, entity.RoleDirection, entity.RoleAdmin)
}

func (d *Dispatcher) dispatch(notifType, title, body string, tourID, conflictID *string, roles ...string) {
	users, err := d.userRepo.ListByRoles(roles...)
	if err != nil {
		d.log.Error().Err(err).Str("type", notifType).Msg("notification: échec du chargement des destinataires")
		return
	}
	if len(users) == 0 {
		return
	}

	now := time.Now().UTC()
	notifications := make([]*entity.Notification, 0, len(users))
	tokens := make([]string, 0, len(users))
	for _, u := range users {
		notifications = append(notifications, &entity.Notification{
			ID:         uuid.NewString(),
			UserID:     u.ID,
			Type:       notifType,
			Message:    body,
			TourID:     tourID,
			ConflictID: conflictID,
			CreatedAt:  now,
		})
		if u.ExpoPushToken != nil && *u.ExpoPushToken != "" {
			tokens = append(tokens, *u.ExpoPushToken)
		}
	}

	if err := d.notifRepo.CreateMany(notifications); err != nil {
		d.log.Error().Err(err).Str("type", notifType).Msg("notification: échec de la persistance")
		return
	}
	if len(tokens) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()
	data := map[string]string{"type": notifType}
	if tourID != nil {
		data["tour_id"] = *tourID
	}
	if conflictID != nil {
		data["conflict_id"] = *conflictID
	}
	if err := d.pusher.Push(ctx, tokens, title, body, data); err != nil {
		d.log.Error().Err(err).Str("type", notifType).Int("tokens", len(tokens)).Msg("notification: échec de l'envoi push")
	}
}
