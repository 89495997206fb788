package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// InvoiceLineForPDF línea de servicio ya resuelta (nombre y precio efectivo) para el PDF.
type InvoiceLineForPDF struct {
	Service  string
	Amount   int
	Price    decimal.Decimal
	Subtotal decimal.Decimal
}

// InvoicePDFGenerator genera la representación gráfica de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, client *entity.Client, lines []InvoiceLineForPDF) ([]byte, error)
}
