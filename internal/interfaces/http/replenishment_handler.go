package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/replenishment"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// ReplenishmentHandler maneja las consultas de reposición y la configuración
// de reglas (protegido). La política es consultiva: nunca muta stock.
type ReplenishmentHandler struct {
	uc *replenishment.UseCase
}

// NewReplenishmentHandler construye el handler.
func NewReplenishmentHandler(uc *replenishment.UseCase) *ReplenishmentHandler {
	return &ReplenishmentHandler{uc: uc}
}

// Evaluate devuelve la señal de reposición de producto+ubicación.
// GET /api/replenishment/evaluate?product_id=...&location_id=...
func (h *ReplenishmentHandler) Evaluate(c *fiber.Ctx) error {
	result, err := h.uc.Evaluate(c.Context(), c.Query("product_id"), c.Query("location_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromEvaluation(result))
}

// ListSuggestions devuelve los productos en o bajo su punto de reorden.
// GET /api/replenishment/suggestions?location_id=...
func (h *ReplenishmentHandler) ListSuggestions(c *fiber.Ctx) error {
	results, err := h.uc.ListSuggestions(c.Context(), c.Query("location_id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.EvaluationDTO, 0, len(results))
	for _, r := range results {
		out = append(out, dto.FromEvaluation(r))
	}
	return c.JSON(fiber.Map{"total": len(out), "suggestions": out})
}

// UpsertRule crea o actualiza la regla de reposición de producto+ubicación.
// PUT /api/replenishment/rules
func (h *ReplenishmentHandler) UpsertRule(c *fiber.Ctx) error {
	var in dto.UpsertRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rule := &entity.ReplenishmentRule{
		ProductID:         in.ProductID,
		LocationID:        in.LocationID,
		MinStock:          in.MinStock,
		MaxStock:          in.MaxStock,
		ReorderPoint:      in.ReorderPoint,
		ReorderQty:        in.ReorderQty,
		AutoGenerate:      in.AutoGenerate,
		PreferredSupplier: in.PreferredSupplier,
	}
	if err := h.uc.UpsertRule(c.Context(), rule); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromRule(rule))
}

// ListRules lista las reglas configuradas de una ubicación.
// GET /api/replenishment/rules?location_id=...&limit=...&offset=...
func (h *ReplenishmentHandler) ListRules(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	rules, err := h.uc.ListRules(c.Context(), c.Query("location_id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.RuleDTO, 0, len(rules))
	for _, r := range rules {
		out = append(out, dto.FromRule(r))
	}
	return c.JSON(fiber.Map{"total": len(out), "rules": out})
}
