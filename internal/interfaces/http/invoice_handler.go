package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

// InvoiceHandler rutas de facturas que no son CRUD.
type InvoiceHandler struct {
	uc *usecase.InvoiceUseCase
}

// NewInvoiceHandler construye el handler de facturas.
func NewInvoiceHandler(uc *usecase.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// PDF godoc
// @Summary      Descargar factura en PDF
// @Tags         invoices
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID"
// @Success      200
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	body, filename, err := h.uc.PDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(body)
}

// Summary godoc
// @Summary      Resumen de facturas activas de un cliente
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        client  query  string  true  "ID del cliente"
// @Success      200     {object}  dto.InvoiceSummaryResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/invoices/summary [get]
func (h *InvoiceHandler) Summary(c *fiber.Ctx) error {
	client := c.Query("client")
	if client == "" {
		return writeError(c, domain.Invalid("Укажите клиента."))
	}
	out, err := h.uc.Summary(c.UserContext(), client)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
