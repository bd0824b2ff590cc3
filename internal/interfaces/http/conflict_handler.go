package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/maleksellami/caisse-backend/internal/application/conflict"
	"github.com/maleksellami/caisse-backend/internal/application/dto"
	"github.com/maleksellami/caisse-backend/internal/domain"
)

// ConflictHandler gère la consultation et la résolution des conflits de caisses.
type ConflictHandler struct {
	uc *conflict.UseCase
}

// NewConflictHandler construit le handler des conflits.
func NewConflictHandler(uc *conflict.UseCase) *ConflictHandler {
	return &ConflictHandler{uc: uc}
}

func conflictToDTO(d *conflict.ConflictDetail) dto.ConflictDTO {
	var tourDTO *dto.TourDTO
	if d.Tour != nil {
		t := dto.ToTourDTO(d.Tour, nil, nil)
		tourDTO = &t
	}
	return dto.ToConflictDTO(d.Conflict, tourDTO)
}

func mapConflictError(c *fiber.Ctx, err error) error {
	if err == domain.ErrInvalidInput {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "données invalides"})
	}
	if err == domain.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "conflit non trouvé"})
	}
	if err == domain.ErrAlreadyResolved {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "ALREADY_RESOLVED", Message: "conflit déjà traité"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// List godoc
// @Summary      Lister les conflits
// @Tags         conflicts
// @Security     Bearer
// @Produce      json
// @Param        statut  query  string  false  "EN_ATTENTE | PAYEE | ANNULE"
// @Param        limit   query  int     false  "taille de page (20 par défaut)"
// @Param        offset  query  int     false  "décalage"
// @Success      200  {object}  dto.ListConflictsResponse
// @Router       /api/conflicts [get]
func (h *ConflictHandler) List(c *fiber.Ctx) error {
	var in dto.ListConflictsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paramètres invalides"})
	}
	in.DefaultPage()
	details, err := h.uc.List(in.Statut, in.Limit, in.Offset)
	if err != nil {
		return mapConflictError(c, err)
	}
	conflicts := make([]dto.ConflictDTO, 0, len(details))
	for _, d := range details {
		conflicts = append(conflicts, conflictToDTO(d))
	}
	return c.JSON(dto.ListConflictsResponse{
		Conflicts: conflicts,
		Page:      dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	})
}

// Urgent godoc
// @Summary      Conflits urgents pour le triage Direction
// @Description  Conflits en attente classés: hors tolérance d'abord, puis quantité
//
//	perdue décroissante, puis les plus anciens. 20 au plus.
//
// @Tags         conflicts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ConflictDTO
// @Router       /api/dashboard/conflicts-urgent [get]
func (h *ConflictHandler) Urgent(c *fiber.Ctx) error {
	details, err := h.uc.ListUrgent(20)
	if err != nil {
		return mapConflictError(c, err)
	}
	conflicts := make([]dto.ConflictDTO, 0, len(details))
	for _, d := range details {
		conflicts = append(conflicts, conflictToDTO(d))
	}
	return c.JSON(conflicts)
}

// Get godoc
// @Summary      Détail d'un conflit
// @Tags         conflicts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id du conflit"
// @Success      200  {object}  dto.ConflictDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/conflicts/{id} [get]
func (h *ConflictHandler) Get(c *fiber.Ctx) error {
	detail, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return mapConflictError(c, err)
	}
	return c.JSON(conflictToDTO(detail))
}

// Approve godoc
// @Summary      Approuver un conflit: dette payée (Direction)
// @Tags         conflicts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id du conflit"
// @Param        body  body  dto.ResolveConflictRequest  false  "notes optionnelles"
// @Success      200   {object}  dto.ConflictDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/conflicts/{id}/approve [post]
func (h *ConflictHandler) Approve(c *fiber.Ctx) error {
	var in dto.ResolveConflictRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	resolved, err := h.uc.Approve(c.Context(), c.Params("id"), GetUserID(c), in.Notes)
	if err != nil {
		return mapConflictError(c, err)
	}
	return c.JSON(dto.ToConflictDTO(resolved, nil))
}

// Reject godoc
// @Summary      Rejeter un conflit: dette annulée (Direction)
// @Tags         conflicts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id du conflit"
// @Param        body  body  dto.ResolveConflictRequest  true  "notes obligatoires"
// @Success      200   {object}  dto.ConflictDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/conflicts/{id}/reject [post]
func (h *ConflictHandler) Reject(c *fiber.Ctx) error {
	var in dto.ResolveConflictRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	resolved, err := h.uc.Reject(c.Context(), c.Params("id"), GetUserID(c), in.Notes)
	if err != nil {
		return mapConflictError(c, err)
	}
	return c.JSON(dto.ToConflictDTO(resolved, nil))
}
