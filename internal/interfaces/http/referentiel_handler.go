package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/maleksellami/caisse-backend/internal/application/conflict"
	"github.com/maleksellami/caisse-backend/internal/application/dto"
	"github.com/maleksellami/caisse-backend/internal/application/referentiel"
	"github.com/maleksellami/caisse-backend/internal/domain"
)

// ReferentielHandler gère chauffeurs et secteurs.
type ReferentielHandler struct {
	uc         *referentiel.UseCase
	conflictUC *conflict.UseCase
}

// NewReferentielHandler construit le handler du référentiel.
func NewReferentielHandler(uc *referentiel.UseCase, conflictUC *conflict.UseCase) *ReferentielHandler {
	return &ReferentielHandler{uc: uc, conflictUC: conflictUC}
}

// ListDrivers godoc
// @Summary      Lister les chauffeurs
// @Tags         drivers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DriverDTO
// @Router       /api/drivers [get]
func (h *ReferentielHandler) ListDrivers(c *fiber.Ctx) error {
	drivers, err := h.uc.ListDrivers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.DriverDTO, 0, len(drivers))
	for _, d := range drivers {
		out = append(out, dto.ToDriverDTO(d))
	}
	return c.JSON(out)
}

// CreateDriver godoc
// @Summary      Créer un chauffeur (admin)
// @Tags         drivers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDriverRequest  true  "nom_complet, tolérance"
// @Success      201   {object}  dto.DriverDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/drivers [post]
func (h *ReferentielHandler) CreateDriver(c *fiber.Ctx) error {
	var in dto.CreateDriverRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	d, err := h.uc.CreateDriver(in.NomComplet, in.MatriculeParDefaut, in.MarqueVehicule, in.ToleranceCaissesMensuelle)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nom_complet requis, tolérance positive"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToDriverDTO(d))
}

// GetDriver godoc
// @Summary      Détail d'un chauffeur avec son historique de conflits
// @Tags         drivers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id du chauffeur"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drivers/{id} [get]
func (h *ReferentielHandler) GetDriver(c *fiber.Ctx) error {
	d, err := h.uc.GetDriver(c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "chauffeur non trouvé"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	history, err := h.conflictUC.ListByDriver(d.ID, 50)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	conflicts := make([]dto.ConflictDTO, 0, len(history))
	for _, detail := range history {
		conflicts = append(conflicts, conflictToDTO(detail))
	}
	return c.JSON(fiber.Map{"driver": dto.ToDriverDTO(d), "conflicts": conflicts})
}

// ListSecteurs godoc
// @Summary      Lister les secteurs
// @Tags         secteurs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SecteurDTO
// @Router       /api/secteurs [get]
func (h *ReferentielHandler) ListSecteurs(c *fiber.Ctx) error {
	secteurs, err := h.uc.ListSecteurs()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.SecteurDTO, 0, len(secteurs))
	for _, s := range secteurs {
		out = append(out, dto.ToSecteurDTO(s))
	}
	return c.JSON(out)
}
