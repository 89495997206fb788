package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// InvoiceRequest body para POST/PUT /api/invoices. El total se calcula en el servidor.
type InvoiceRequest struct {
	Client            *string              `json:"client"`
	AssociatedArrival *string              `json:"associatedArrival"`
	AssociatedOrder   *string              `json:"associatedOrder"`
	Services          []entity.ServiceLine `json:"services"`
	Discount          *decimal.Decimal     `json:"discount"`
	PaidAmount        *decimal.Decimal     `json:"paid_amount"`
}

// InvoiceSummaryResponse saldo de facturación de un cliente.
type InvoiceSummaryResponse struct {
	Client string          `json:"client"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
	Paid   decimal.Decimal `json:"paid"`
	Debt   decimal.Decimal `json:"debt"`
}
