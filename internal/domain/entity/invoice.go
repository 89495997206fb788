package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago de una factura (derivados de PaidAmount vs TotalAmount).
const (
	InvoicePending       = "в ожидании"
	InvoicePartiallyPaid = "частично оплачено"
	InvoicePaid          = "оплачено"
)

// Invoice factura de servicios a un cliente, opcionalmente ligada a una entrega o un pedido.
type Invoice struct {
	ID                string          `json:"_id"`
	InvoiceNumber     string          `json:"invoiceNumber"`
	Client            string          `json:"client"`
	AssociatedArrival *string         `json:"associatedArrival"`
	AssociatedOrder   *string         `json:"associatedOrder"`
	Services          []ServiceLine   `json:"services"`
	Discount          decimal.Decimal `json:"discount"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	Status            string          `json:"status"`
	Logs              []LogEntry      `json:"logs"`
	IsArchived        bool            `json:"isArchived"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

func (i *Invoice) DocumentID() string               { return i.ID }
func (i *Invoice) Archived() bool                   { return i.IsArchived }
func (i *Invoice) SetArchived(v bool, at time.Time) { i.IsArchived = v; i.UpdatedAt = at }
func (i *Invoice) AppendLog(e LogEntry)             { i.Logs = append(i.Logs, e) }

// PaymentStatus deriva el estado de pago a partir del total y lo pagado.
func PaymentStatus(total, paid decimal.Decimal) string {
	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		return InvoicePending
	case paid.LessThan(total):
		return InvoicePartiallyPaid
	default:
		return InvoicePaid
	}
}
