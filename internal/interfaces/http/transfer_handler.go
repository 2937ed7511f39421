package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/transfer"
)

// TransferHandler maneja las peticiones HTTP de traslados (protegido).
type TransferHandler struct {
	uc      *transfer.UseCase
	metrics *Metrics
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *transfer.UseCase, metrics *Metrics) *TransferHandler {
	return &TransferHandler{uc: uc, metrics: metrics}
}

// Create crea un traslado en estado pending. No toca stock.
// POST /api/transfers
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := transfer.CreateInput{
		OriginLocationID:      in.OriginLocationID,
		DestinationLocationID: in.DestinationLocationID,
		Type:                  in.Type,
		ActorID:               userID,
	}
	for _, line := range in.Lines {
		input.Lines = append(input.Lines, transfer.LineInput{
			ProductID:    line.ProductID,
			RequestedQty: line.RequestedQty,
		})
	}
	t, err := h.uc.Create(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromTransfer(t))
}

// Send descuenta el stock en origen y pasa el traslado a in_transit.
// Todo o nada: si una línea no tiene stock, ninguna se aplica.
// POST /api/transfers/:id/send
func (h *TransferHandler) Send(c *fiber.Ctx) error {
	t, err := h.uc.Send(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	h.metrics.TransferTransitionsTotal.WithLabelValues(t.Status).Inc()
	return c.JSON(dto.FromTransfer(t))
}

// Receive acredita el stock en destino y pasa el traslado a received.
// POST /api/transfers/:id/receive
func (h *TransferHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	var overrides map[string]decimal.Decimal
	if len(in.Overrides) > 0 {
		overrides = make(map[string]decimal.Decimal, len(in.Overrides))
		for _, o := range in.Overrides {
			overrides[o.ProductID] = o.ReceivedQty
		}
	}
	t, err := h.uc.Receive(c.Context(), c.Params("id"), GetUserID(c), overrides)
	if err != nil {
		return respondError(c, err)
	}
	h.metrics.TransferTransitionsTotal.WithLabelValues(t.Status).Inc()
	return c.JSON(dto.FromTransfer(t))
}

// Cancel cancela un traslado pending.
// POST /api/transfers/:id/cancel
func (h *TransferHandler) Cancel(c *fiber.Ctx) error {
	t, err := h.uc.Cancel(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	h.metrics.TransferTransitionsTotal.WithLabelValues(t.Status).Inc()
	return c.JSON(dto.FromTransfer(t))
}

// GetByID devuelve un traslado con sus líneas.
// GET /api/transfers/:id
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	t, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromTransfer(t))
}

// List devuelve cabeceras de traslados.
// GET /api/transfers?location_id=...&status=...&limit=...&offset=...
func (h *TransferHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), c.Query("location_id"), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TransferDTO, 0, len(list))
	for _, t := range list {
		out = append(out, dto.FromTransfer(t))
	}
	return c.JSON(fiber.Map{"total": len(out), "transfers": out})
}
