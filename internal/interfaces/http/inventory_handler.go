package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/ledger"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// InventoryHandler maneja las peticiones HTTP del motor de kardex (protegido).
type InventoryHandler struct {
	uc      *ledger.UseCase
	metrics *Metrics
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *ledger.UseCase, metrics *Metrics) *InventoryHandler {
	return &InventoryHandler{uc: uc, metrics: metrics}
}

// RecordMovement registra un movimiento de kardex.
// POST /api/inventory/movements
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.uc.RecordMovement(c.Context(), ledger.MovementInput{
		ProductID:         in.ProductID,
		LocationID:        in.LocationID,
		Delta:             in.Delta,
		MovementType:      in.MovementType,
		ReferenceDocument: in.ReferenceDocument,
		ActorID:           userID,
	})
	if err != nil {
		h.metrics.MovementsTotal.WithLabelValues(in.MovementType, movementResult(err)).Inc()
		return respondError(c, err)
	}
	h.metrics.MovementsTotal.WithLabelValues(in.MovementType, MetricResultOK).Inc()
	return c.Status(fiber.StatusCreated).JSON(dto.FromLedgerEntry(entry))
}

func movementResult(err error) string {
	if errors.Is(err, domain.ErrInsufficientStock) {
		return MetricResultInsufficientStock
	}
	return MetricResultError
}

// GetBalance devuelve la cantidad actual de un producto en una ubicación.
// GET /api/inventory/balance?product_id=...&location_id=...
func (h *InventoryHandler) GetBalance(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	locationID := c.Query("location_id")
	qty, err := h.uc.GetBalance(c.Context(), productID, locationID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.BalanceResponse{ProductID: productID, LocationID: locationID, Quantity: qty})
}

// GetKardex devuelve el historial de movimientos paginado, ascendente.
// GET /api/inventory/kardex?product_id=...&location_id=...&from=...&to=...&limit=...&offset=...
func (h *InventoryHandler) GetKardex(c *fiber.Ctx) error {
	filter := repository.LedgerEntryFilter{
		ProductID:  c.Query("product_id"),
		LocationID: c.Query("location_id"),
		Limit:      c.QueryInt("limit"),
		Offset:     c.QueryInt("offset"),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
		}
		filter.To = &t
	}
	entries, err := h.uc.GetHistory(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.LedgerEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.FromLedgerEntry(e))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// Reconcile recalcula el saldo de una clave y lo compara con el almacenado.
// Una discrepancia responde 409 con el detalle; jamás se corrige sola.
// POST /api/inventory/reconcile
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	var in dto.ReconcileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.Reconcile(c.Context(), in.ProductID, in.LocationID)
	if err != nil && !errors.Is(err, domain.ErrIntegrityViolation) {
		return respondError(c, err)
	}
	resp := dto.ReconcileResponse{
		ProductID:        result.ProductID,
		LocationID:       result.LocationID,
		StoredQuantity:   result.StoredQuantity,
		ComputedQuantity: result.ComputedQuantity,
		Difference:       result.Difference,
		Entries:          result.Entries,
		Consistent:       result.Consistent(),
	}
	if !resp.Consistent {
		return c.Status(fiber.StatusConflict).JSON(resp)
	}
	return c.JSON(resp)
}
