package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/maleksellami/caisse-backend/internal/application/dto"
	"github.com/maleksellami/caisse-backend/internal/application/notification"
	"github.com/maleksellami/caisse-backend/internal/domain"
)

// NotificationHandler gère la boîte de réception et les tokens push.
type NotificationHandler struct {
	uc *notification.UseCase
}

// NewNotificationHandler construit le handler des notifications.
func NewNotificationHandler(uc *notification.UseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List godoc
// @Summary      Notifications de l'utilisateur connecté
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "nombre max (50 par défaut)"
// @Success      200  {array}  dto.NotificationDTO
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	notifications, err := h.uc.List(GetUserID(c), c.QueryInt("limit"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, dto.ToNotificationDTO(n))
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marquer une notification comme lue
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id de la notification"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(GetUserID(c), c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "notification non trouvée"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "notification lue"})
}

// MarkAllRead godoc
// @Summary      Marquer toutes les notifications comme lues
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/notifications/mark-all-read [post]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.uc.MarkAllRead(GetUserID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "notifications lues"})
}

// UnreadCount godoc
// @Summary      Compteur de notifications non lues
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UnreadCountResponse
// @Router       /api/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.uc.CountUnread(GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.UnreadCountResponse{Count: count})
}

// RegisterToken godoc
// @Summary      Enregistrer le token push Expo de l'appareil
// @Tags         notifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterPushTokenRequest  true  "token ExponentPushToken[...]"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/notifications/register-token [post]
func (h *NotificationHandler) RegisterToken(c *fiber.Ctx) error {
	var in dto.RegisterPushTokenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	if err := h.uc.RegisterToken(GetUserID(c), in.Token); err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "token Expo invalide"})
		}
		if err == domain.ErrUserNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "utilisateur non trouvé"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "token enregistré"})
}
