package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/maleksellami/caisse-backend/internal/application/dashboard"
	"github.com/maleksellami/caisse-backend/internal/application/dto"
	"github.com/maleksellami/caisse-backend/internal/application/stock"
	"github.com/maleksellami/caisse-backend/internal/application/tour"
	"github.com/maleksellami/caisse-backend/internal/domain"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

// DashboardHandler expose les vues d'agrégation pour la Direction.
type DashboardHandler struct {
	uc      *dashboard.UseCase
	tourUC  *tour.UseCase
	stockUC *stock.UseCase
}

// NewDashboardHandler construit le handler du tableau de bord.
func NewDashboardHandler(uc *dashboard.UseCase, tourUC *tour.UseCase, stockUC *stock.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, tourUC: tourUC, stockUC: stockUC}
}

// KPIs godoc
// @Summary      Indicateurs de tête du tableau de bord
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.KPIResponse
// @Router       /api/dashboard/kpis [get]
func (h *DashboardHandler) KPIs(c *fiber.Ctx) error {
	res, err := h.uc.KPIs(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToKPIResponse(res))
}

// ToursActive godoc
// @Summary      Tournées en cours
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TourDTO
// @Router       /api/dashboard/tours-active [get]
func (h *DashboardHandler) ToursActive(c *fiber.Ctx) error {
	details, err := h.tourUC.ListActive(50)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	tours := make([]dto.TourDTO, 0, len(details))
	for _, d := range details {
		tours = append(tours, dto.ToTourDTO(d.Tour, d.Driver, d.Secteur))
	}
	return c.JSON(tours)
}

// Pertes godoc
// @Summary      Pertes cumulées par chauffeur
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "début de période (YYYY-MM-DD, défaut: -30 jours)"
// @Param        to    query  string  false  "fin de période (YYYY-MM-DD, défaut: aujourd'hui)"
// @Success      200  {object}  dto.PertesResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/pertes [get]
func (h *DashboardHandler) Pertes(c *fiber.Ctx) error {
	from, err := parseDateQuery(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from invalide (attendu YYYY-MM-DD)"})
	}
	to, err := parseDateQuery(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to invalide (attendu YYYY-MM-DD)"})
	}
	results, err := h.uc.Pertes(c.Context(), from, to)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "période invalide"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	pertes := make([]dto.PerteDriverDTO, 0, len(results))
	for _, r := range results {
		pertes = append(pertes, dto.PerteDriverDTO{
			DriverID:       r.DriverID,
			NomComplet:     r.NomComplet,
			NbConflits:     r.NbConflits,
			CaissesPerdues: r.CaissesPerdues,
			DetteTotaleTND: r.DetteTotaleTND,
			DetteRestante:  r.DetteRestante,
		})
	}
	return c.JSON(dto.PertesResponse{Pertes: pertes})
}

// Finance godoc
// @Summary      Synthèse financière d'un mois
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        mois  query  string  false  "mois au format YYYY-MM (défaut: mois courant)"
// @Success      200  {object}  dto.FinanceMoisResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/finance [get]
func (h *DashboardHandler) Finance(c *fiber.Ctx) error {
	res, err := h.uc.FinanceMois(c.Context(), c.Query("mois"))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "mois invalide (attendu YYYY-MM)"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToFinanceMoisResponse(res))
}

// Mouvements godoc
// @Summary      Registre des mouvements de caisses
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        type     query  string  false  "type de mouvement"
// @Param        tour_id  query  string  false  "filtrer par tournée"
// @Param        from     query  string  false  "début (YYYY-MM-DD)"
// @Param        to       query  string  false  "fin (YYYY-MM-DD)"
// @Param        limit    query  int     false  "taille de page (20 par défaut)"
// @Param        offset   query  int     false  "décalage"
// @Success      200  {object}  dto.ListMouvementsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/mouvements [get]
func (h *DashboardHandler) Mouvements(c *fiber.Ctx) error {
	var in dto.ListMouvementsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paramètres invalides"})
	}
	in.DefaultPage()

	filter := repository.MouvementFilter{
		Type:   in.Type,
		TourID: in.TourID,
		Limit:  in.Limit,
		Offset: in.Offset,
	}
	if from, err := parseDateQuery(in.From); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from invalide (attendu YYYY-MM-DD)"})
	} else if !from.IsZero() {
		filter.From = &from
	}
	if to, err := parseDateQuery(in.To); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to invalide (attendu YYYY-MM-DD)"})
	} else if !to.IsZero() {
		end := to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.To = &end
	}

	mouvements, total, err := h.stockUC.ListMouvements(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.MouvementDTO, 0, len(mouvements))
	for _, m := range mouvements {
		out = append(out, dto.ToMouvementDTO(m))
	}
	return c.JSON(dto.ListMouvementsResponse{
		Mouvements: out,
		Page:       dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	})
}

// parseDateQuery accepte YYYY-MM-DD ou RFC 3339. Zéro si vide.
func parseDateQuery(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
