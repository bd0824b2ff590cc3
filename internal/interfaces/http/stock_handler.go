package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/maleksellami/caisse-backend/internal/application/dto"
	"github.com/maleksellami/caisse-backend/internal/application/stock"
	"github.com/maleksellami/caisse-backend/internal/domain"
)

// StockHandler gère le stock de caisses et la configuration.
type StockHandler struct {
	uc *stock.UseCase
}

// NewStockHandler construit le handler du stock.
func NewStockHandler(uc *stock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

func mapStockError(c *fiber.Ctx, err error) error {
	if err == domain.ErrInvalidInput {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "données invalides"})
	}
	if err == domain.ErrInvalidState {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_INITIALIZED", Message: "le stock est déjà initialisé"})
	}
	if err == domain.ErrStockNotReady {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STOCK_NOT_READY", Message: "le stock de caisses n'est pas initialisé"})
	}
	if err == domain.ErrStockInsuffisant {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "l'ajustement rendrait le stock négatif"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// Get godoc
// @Summary      État du stock de caisses
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockDTO
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/config/stock [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	st, err := h.uc.Get()
	if err != nil {
		return mapStockError(c, err)
	}
	return c.JSON(dto.ToStockDTO(st))
}

// Init godoc
// @Summary      Initialiser le stock de caisses (admin)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InitStockRequest  true  "stock_initial, seuil_alerte_pct"
// @Success      201   {object}  dto.StockDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/config/stock/init [post]
func (h *StockHandler) Init(c *fiber.Ctx) error {
	var in dto.InitStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	st, err := h.uc.Init(c.Context(), in.StockInitial, in.SeuilAlertePct, GetUserID(c))
	if err != nil {
		return mapStockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToStockDTO(st))
}

// Ajustement godoc
// @Summary      Ajustement manuel du stock (admin)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AjustementStockRequest  true  "quantite signée, notes obligatoires"
// @Success      200   {object}  dto.StockDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/config/stock/ajustement [post]
func (h *StockHandler) Ajustement(c *fiber.Ctx) error {
	var in dto.AjustementStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	st, err := h.uc.Ajuster(c.Context(), in.Quantite, in.Notes, GetUserID(c))
	if err != nil {
		return mapStockError(c, err)
	}
	return c.JSON(dto.ToStockDTO(st))
}

// GetValeurCaisse godoc
// @Summary      Valeur de remplacement d'une caisse
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/config/valeur-caisse [get]
func (h *StockHandler) GetValeurCaisse(c *fiber.Ctx) error {
	valeur, err := h.uc.ValeurCaisse()
	if err != nil {
		return mapStockError(c, err)
	}
	return c.JSON(fiber.Map{"valeur_tnd": valeur})
}

// SetValeurCaisse godoc
// @Summary      Modifier la valeur de remplacement d'une caisse (admin)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateValeurCaisseRequest  true  "valeur_tnd"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/config/valeur-caisse [put]
func (h *StockHandler) SetValeurCaisse(c *fiber.Ctx) error {
	var in dto.UpdateValeurCaisseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	cfg, err := h.uc.SetValeurCaisse(decimal.NewFromFloat(in.ValeurTND))
	if err != nil {
		return mapStockError(c, err)
	}
	return c.JSON(fiber.Map{"valeur_tnd": cfg.ValeurTND, "updated_at": cfg.UpdatedAt})
}
