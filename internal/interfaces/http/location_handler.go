package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/usecase"
)

// LocationHandler maneja las peticiones HTTP de ubicaciones (protegido).
type LocationHandler struct {
	uc *usecase.LocationUseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *usecase.LocationUseCase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

// Create crea una ubicación (solo admin).
// POST /api/locations
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	loc, err := h.uc.Create(c.Context(), usecase.CreateLocationInput{
		Code:      in.Code,
		Name:      in.Name,
		Type:      in.Type,
		IsPrimary: in.IsPrimary,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromLocation(loc))
}

// GetByID devuelve una ubicación.
// GET /api/locations/:id
func (h *LocationHandler) GetByID(c *fiber.Ctx) error {
	loc, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromLocation(loc))
}

// List devuelve las ubicaciones paginadas.
// GET /api/locations?limit=...&offset=...
func (h *LocationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.LocationDTO, 0, len(list))
	for _, l := range list {
		out = append(out, dto.FromLocation(l))
	}
	return c.JSON(fiber.Map{"total": len(out), "locations": out})
}

// Update modifica nombre, tipo y marca primaria (solo admin).
// PUT /api/locations/:id
func (h *LocationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	loc, err := h.uc.Update(c.Context(), c.Params("id"), usecase.UpdateLocationInput{
		Name:      in.Name,
		Type:      in.Type,
		IsPrimary: in.IsPrimary,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromLocation(loc))
}

// Deactivate desactiva la ubicación; el historial de kardex se conserva (solo admin).
// POST /api/locations/:id/deactivate
func (h *LocationHandler) Deactivate(c *fiber.Ctx) error {
	loc, err := h.uc.Deactivate(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromLocation(loc))
}
