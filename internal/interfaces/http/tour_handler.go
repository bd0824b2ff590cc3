package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/maleksellami/caisse-backend/internal/application/dto"
	"github.com/maleksellami/caisse-backend/internal/application/tour"
	"github.com/maleksellami/caisse-backend/internal/domain"
	"github.com/maleksellami/caisse-backend/internal/domain/repository"
)

// TourHandler gère le cycle de vie des tournées.
type TourHandler struct {
	uc *tour.UseCase
}

// NewTourHandler construit le handler des tournées.
func NewTourHandler(uc *tour.UseCase) *TourHandler {
	return &TourHandler{uc: uc}
}

func tourToDTO(d *tour.TourDetail) dto.TourDTO {
	return dto.ToTourDTO(d.Tour, d.Driver, d.Secteur)
}

// mapTourError traduit les erreurs de domaine des transitions en réponse HTTP.
func mapTourError(c *fiber.Ctx, err error) error {
	if err == domain.ErrInvalidInput {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "données invalides"})
	}
	if err == domain.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tournée non trouvée"})
	}
	if err == domain.ErrInvalidState {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "transition incompatible avec le statut actuel de la tournée"})
	}
	if err == domain.ErrStockNotReady {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STOCK_NOT_READY", Message: "le stock de caisses n'est pas initialisé"})
	}
	if err == domain.ErrStockInsuffisant {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock de caisses insuffisant pour ce chargement"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// PeseeVide godoc
// @Summary      Pesée à vide du camion (sécurité)
// @Tags         tours
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PeseeVideRequest  true  "matricule_vehicule, poids_vide"
// @Success      201   {object}  dto.TourDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tours/pesee-vide [post]
func (h *TourHandler) PeseeVide(c *fiber.Ctx) error {
	var in dto.PeseeVideRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	t, err := h.uc.PeseeVide(c.Context(), tour.PeseeVideInput{
		MatriculeVehicule: in.MatriculeVehicule,
		PoidsVide:         in.PoidsVide,
		SecuriteID:        GetUserID(c),
	})
	if err != nil {
		return mapTourError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToTourDTO(t, nil, nil))
}

// Chargement godoc
// @Summary      Chargement des caisses (agent de contrôle)
// @Tags         tours
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id de la tournée"
// @Param        body  body  dto.ChargementRequest  true  "driver, secteur, nbre_caisses_depart, produits_poulet, photo"
// @Success      200   {object}  dto.TourDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tours/{id}/chargement [patch]
func (h *TourHandler) Chargement(c *fiber.Ctx) error {
	var in dto.ChargementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	t, err := h.uc.Chargement(c.Context(), c.Params("id"), tour.ChargementInput{
		DriverID:          in.DriverID,
		DriverNom:         in.DriverNom,
		SecteurID:         in.SecteurID,
		SecteurNom:        in.SecteurNom,
		NbreCaissesDepart: in.NbreCaissesDepart,
		ProduitsPoulet:    in.ProduitsPoulet,
		PhotoBase64:       in.PhotoBase64,
		AgentControleID:   GetUserID(c),
	})
	if err != nil {
		return mapTourError(c, err)
	}
	return c.JSON(dto.ToTourDTO(t, nil, nil))
}

// Create godoc
// @Summary      Créer et charger une tournée en un appel (flux historique)
// @Tags         tours
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTourRequest  true  "matricule_vehicule, driver, secteur, nbre_caisses_depart"
// @Success      201   {object}  dto.TourDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tours/create [post]
func (h *TourHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTourRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	t, err := h.uc.CreateComplete(c.Context(), tour.CreateTourInput{
		MatriculeVehicule: in.MatriculeVehicule,
		Chargement: tour.ChargementInput{
			DriverID:          in.DriverID,
			DriverNom:         in.DriverNom,
			SecteurID:         in.SecteurID,
			SecteurNom:        in.SecteurNom,
			NbreCaissesDepart: in.NbreCaissesDepart,
			ProduitsPoulet:    in.ProduitsPoulet,
			PhotoBase64:       in.PhotoBase64,
			AgentControleID:   GetUserID(c),
		},
	})
	if err != nil {
		return mapTourError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToTourDTO(t, nil, nil))
}

// Sortie godoc
// @Summary      Pesée chargée à la sortie (sécurité)
// @Tags         tours
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id de la tournée"
// @Param        body  body  dto.SortieRequest  true  "poids_brut_sortie"
// @Success      200   {object}  dto.TourDTO
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tours/{id}/sortie [patch]
func (h *TourHandler) Sortie(c *fiber.Ctx) error {
	var in dto.SortieRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	t, err := h.uc.Sortie(c.Context(), c.Params("id"), tour.SortieInput{
		PoidsBrutSortie: in.PoidsBrutSortie,
		SecuriteID:      GetUserID(c),
	})
	if err != nil {
		return mapTourError(c, err)
	}
	return c.JSON(dto.ToTourDTO(t, nil, nil))
}

// RetourSecurite godoc
// @Summary      Pointage du retour à l'usine (sécurité)
// @Tags         tours
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id de la tournée"
// @Param        body  body  dto.RetourSecuriteRequest  false  "poids_brut_retour (facultatif)"
// @Success      200   {object}  dto.TourDTO
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tours/{id}/retour-securite [patch]
func (h *TourHandler) RetourSecurite(c *fiber.Ctx) error {
	var in dto.RetourSecuriteRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
		}
	}
	t, err := h.uc.RetourSecurite(c.Context(), c.Params("id"), tour.RetourSecuriteInput{
		PoidsBrutRetour: in.PoidsBrutRetour,
		SecuriteID:      GetUserID(c),
	})
	if err != nil {
		return mapTourError(c, err)
	}
	return c.JSON(dto.ToTourDTO(t, nil, nil))
}

// Entree godoc
// @Summary      Retour pesé au pont bascule (flux historique, sécurité)
// @Tags         tours
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id de la tournée"
// @Param        body  body  dto.EntreeRequest  true  "poids_brut_retour, poids_tare"
// @Success      200   {object}  dto.TourDTO
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tours/{id}/entree [patch]
func (h *TourHandler) Entree(c *fiber.Ctx) error {
	var in dto.EntreeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	t, err := h.uc.Entree(c.Context(), c.Params("id"), tour.EntreeInput{
		PoidsBrutRetour: in.PoidsBrutRetour,
		PoidsTare:       in.PoidsTare,
		SecuriteID:      GetUserID(c),
	})
	if err != nil {
		return mapTourError(c, err)
	}
	return c.JSON(dto.ToTourDTO(t, nil, nil))
}

// Retour godoc
// @Summary      Comptage des caisses au retour (agent de contrôle)
// @Description  Réintègre le stock, lève un conflit si le compte ne tombe pas juste
//
//	et passe la tournée en contrôle hygiène ou en clôture.
//
// @Tags         tours
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id de la tournée"
// @Param        body  body  dto.RetourRequest  true  "nbre_caisses_retour, photo"
// @Success      200   {object}  map[string]any
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tours/{id}/retour [patch]
func (h *TourHandler) Retour(c *fiber.Ctx) error {
	var in dto.RetourRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	t, conflict, err := h.uc.Retour(c.Context(), c.Params("id"), tour.RetourInput{
		NbreCaissesRetour: in.NbreCaissesRetour,
		PhotoBase64:       in.PhotoBase64,
		AgentControleID:   GetUserID(c),
	})
	if err != nil {
		return mapTourError(c, err)
	}
	resp := fiber.Map{"tour": dto.ToTourDTO(t, nil, nil)}
	if conflict != nil {
		resp["conflict"] = dto.ToConflictDTO(conflict, nil)
	}
	return c.JSON(resp)
}

// Hygiene godoc
// @Summary      Contrôle hygiène (agent hygiène)
// @Tags         tours
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id de la tournée"
// @Param        body  body  dto.HygieneRequest  true  "statut (APPROUVE|REJETE), notes, photos"
// @Success      200   {object}  dto.TourDTO
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tours/{id}/hygiene [patch]
func (h *TourHandler) Hygiene(c *fiber.Ctx) error {
	var in dto.HygieneRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	t, err := h.uc.Hygiene(c.Context(), c.Params("id"), tour.HygieneInput{
		Statut:         in.Statut,
		Notes:          in.Notes,
		PhotosBase64:   in.PhotosBase64,
		AgentHygieneID: GetUserID(c),
	})
	if err != nil {
		return mapTourError(c, err)
	}
	return c.JSON(dto.ToTourDTO(t, nil, nil))
}

// List godoc
// @Summary      Lister les tournées
// @Tags         tours
// @Security     Bearer
// @Produce      json
// @Param        statut     query  string  false  "filtre sur le statut"
// @Param        matricule  query  string  false  "sous-chaîne du matricule"
// @Param        limit      query  int     false  "taille de page (20 par défaut)"
// @Param        offset     query  int     false  "décalage"
// @Success      200  {object}  dto.ListToursResponse
// @Router       /api/tours [get]
func (h *TourHandler) List(c *fiber.Ctx) error {
	var in dto.ListToursRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paramètres invalides"})
	}
	in.DefaultPage()
	details, err := h.uc.List(repository.TourFilter{
		Statut:    in.Statut,
		Matricule: in.Matricule,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
	if err != nil {
		return mapTourError(c, err)
	}
	tours := make([]dto.TourDTO, 0, len(details))
	for _, d := range details {
		tours = append(tours, tourToDTO(d))
	}
	return c.JSON(dto.ListToursResponse{
		Tours: tours,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	})
}

// Get godoc
// @Summary      Détail d'une tournée
// @Tags         tours
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id de la tournée"
// @Success      200  {object}  dto.TourDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tours/{id} [get]
func (h *TourHandler) Get(c *fiber.Ctx) error {
	detail, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return mapTourError(c, err)
	}
	return c.JSON(tourToDTO(detail))
}

// NextMatricule godoc
// @Summary      Prochaine série de matricule pour le poste de pesée
// @Tags         tours
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.NextMatriculeResponse
// @Router       /api/tours/next-matricule [get]
func (h *TourHandler) NextMatricule(c *fiber.Ctx) error {
	serie, err := h.uc.NextMatriculeSerie()
	if err != nil {
		return mapTourError(c, err)
	}
	return c.JSON(dto.NextMatriculeResponse{Serie: serie})
}
