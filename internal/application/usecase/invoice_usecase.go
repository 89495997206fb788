package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/audit"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var invoiceMessages = Messages{
	NotFound:        "Счет не найден.",
	InArchive:       "Счет в архиве.",
	NotInArchive:    "Этот счет не в архиве.",
	AlreadyArchived: "Счет уже в архиве.",
	Archived:        "Счет перемещен в архив.",
	Unarchived:      "Счет восстановлен из архива.",
	Deleted:         "Счет успешно удалён.",
}

// InvoiceRepos puertos que usa InvoiceUseCase.
type InvoiceRepos struct {
	Invoices repository.InvoiceRepository
	Clients  repository.ClientRepository
	Services repository.ServiceRepository
	Arrivals repository.ArrivalRepository
	Orders   repository.OrderRepository
	Counters repository.CounterRepository
}

// InvoiceUseCase casos de uso de facturación de servicios.
type InvoiceUseCase struct {
	Lifecycle[entity.Invoice, *entity.Invoice]
	repos     InvoiceRepos
	generator InvoicePDFGenerator
	populate  *Populator
}

// NewInvoiceUseCase construye el caso de uso. generator puede ser nil si no se sirve el PDF.
func NewInvoiceUseCase(repos InvoiceRepos, generator InvoicePDFGenerator, populate *Populator) *InvoiceUseCase {
	return &InvoiceUseCase{
		Lifecycle: NewLifecycle[entity.Invoice](repos.Invoices, invoiceMessages),
		repos:     repos,
		generator: generator,
		populate:  populate,
	}
}

// ListView lista facturas; q.Client filtra por cliente.
func (uc *InvoiceUseCase) ListView(ctx context.Context, archived bool, q dto.ListQuery) (any, error) {
	var (
		list []*entity.Invoice
		err  error
	)
	if q.Client != "" {
		list, err = uc.repos.Invoices.ListByClient(ctx, q.Client, archived)
	} else {
		list, err = uc.List(ctx, archived)
	}
	if err != nil {
		return nil, err
	}
	return ListView(ctx, uc.populate, list, InvoiceRefs, q.Populate)
}

func (uc *InvoiceUseCase) GetView(ctx context.Context, id string, archived bool, q dto.ListQuery) (any, error) {
	get := uc.Get
	if archived {
		get = uc.GetArchived
	}
	inv, err := get(ctx, id)
	if err != nil {
		return nil, err
	}
	return DocView(ctx, uc.populate, inv, InvoiceRefs, q.Populate)
}

// Create emite una factura INV-n. El total y el estado se calculan aquí.
func (uc *InvoiceUseCase) Create(ctx context.Context, userID string, in dto.InvoiceRequest) (*entity.Invoice, error) {
	now := time.Now()
	inv := &entity.Invoice{
		ID:          uuid.New().String(),
		Discount:    decimal.Zero,
		PaidAmount:  decimal.Zero,
		TotalAmount: decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	applyInvoice(inv, in)
	if err := uc.compute(ctx, inv); err != nil {
		return nil, err
	}

	n, err := uc.repos.Counters.Next(ctx, "invoice")
	if err != nil {
		return nil, err
	}
	inv.InvoiceNumber = fmt.Sprintf("INV-%d", n)
	inv.Logs = []entity.LogEntry{audit.Created(userID, now)}
	if err := uc.repos.Invoices.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Update aplica una actualización parcial y recalcula total y estado.
func (uc *InvoiceUseCase) Update(ctx context.Context, id, userID string, in dto.InvoiceRequest) (*entity.Invoice, error) {
	inv, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *inv
	applyInvoice(inv, in)
	if err := uc.compute(ctx, inv); err != nil {
		return nil, err
	}
	if err := RecordDiff(inv, &before, inv, userID, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	if err := uc.repos.Invoices.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Summary devuelve cantidad, total, pagado y deuda de las facturas activas de un cliente.
func (uc *InvoiceUseCase) Summary(ctx context.Context, clientID string) (*dto.InvoiceSummaryResponse, error) {
	if clientID == "" {
		return nil, domain.Invalid("Укажите клиента.")
	}
	sum, err := uc.repos.Invoices.SummaryByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	debt := sum.Total.Sub(sum.Paid)
	if debt.IsNegative() {
		debt = decimal.Zero
	}
	return &dto.InvoiceSummaryResponse{
		Client: clientID,
		Count:  sum.Count,
		Total:  sum.Total,
		Paid:   sum.Paid,
		Debt:   debt,
	}, nil
}

// PDF genera el documento de la factura y su nombre de archivo.
func (uc *InvoiceUseCase) PDF(ctx context.Context, id string) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("pdf: generador no configurado")
	}
	inv, err := uc.Find(ctx, id)
	if err != nil {
		return nil, "", err
	}
	client, err := uc.repos.Clients.GetByID(ctx, inv.Client)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if client == nil {
		client = &entity.Client{ID: inv.Client}
	}
	lines, _, err := uc.resolveLines(ctx, inv.Services)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.generator.GenerateInvoicePDF(ctx, inv, client, lines)
	if err != nil {
		return nil, "", err
	}
	return doc, inv.InvoiceNumber + ".pdf", nil
}

func applyInvoice(inv *entity.Invoice, in dto.InvoiceRequest) {
	if in.Client != nil {
		inv.Client = strings.TrimSpace(*in.Client)
	}
	if in.AssociatedArrival != nil {
		inv.AssociatedArrival = optional(*in.AssociatedArrival)
	}
	if in.AssociatedOrder != nil {
		inv.AssociatedOrder = optional(*in.AssociatedOrder)
	}
	if in.Services != nil {
		inv.Services = in.Services
	}
	if in.Discount != nil {
		inv.Discount = *in.Discount
	}
	if in.PaidAmount != nil {
		inv.PaidAmount = *in.PaidAmount
	}
}

// compute valida referencias y montos, y fija total y estado de pago.
func (uc *InvoiceUseCase) compute(ctx context.Context, inv *entity.Invoice) error {
	switch {
	case inv.Client == "":
		return domain.Invalid("Укажите клиента.")
	case len(inv.Services) == 0:
		return domain.Invalid("Добавьте услуги в счет.")
	case inv.Discount.IsNegative():
		return domain.Invalid("Скидка не может быть отрицательной.")
	case inv.PaidAmount.IsNegative():
		return domain.Invalid("Оплаченная сумма не может быть отрицательной.")
	}
	client, err := uc.repos.Clients.GetByID(ctx, inv.Client)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.NotFound(clientMessages.NotFound)
	}
	if inv.AssociatedArrival != nil {
		a, err := uc.repos.Arrivals.GetByID(ctx, *inv.AssociatedArrival)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.NotFound("Поставка не найдена.")
		}
	}
	if inv.AssociatedOrder != nil {
		o, err := uc.repos.Orders.GetByID(ctx, *inv.AssociatedOrder)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.NotFound("Заказ не найден.")
		}
	}

	_, subtotal, err := uc.resolveLines(ctx, inv.Services)
	if err != nil {
		return err
	}
	inv.TotalAmount = InvoiceTotal(subtotal, inv.Discount)
	inv.Status = entity.PaymentStatus(inv.TotalAmount, inv.PaidAmount)
	return nil
}

// resolveLines busca cada servicio y calcula el precio efectivo de cada línea
// (el de la línea o, si falta, el del catálogo).
func (uc *InvoiceUseCase) resolveLines(ctx context.Context, in []entity.ServiceLine) ([]InvoiceLineForPDF, decimal.Decimal, error) {
	total := decimal.Zero
	out := make([]InvoiceLineForPDF, 0, len(in))
	for _, l := range in {
		if l.ServiceAmount <= 0 {
			return nil, total, domain.Invalid("Количество услуги должно быть больше нуля.")
		}
		svc, err := uc.repos.Services.GetByID(ctx, l.Service)
		if err != nil {
			return nil, total, err
		}
		if svc == nil {
			return nil, total, domain.NotFound(serviceMessages.NotFound)
		}
		price := svc.Price
		if l.ServicePrice != nil {
			price = *l.ServicePrice
		}
		if price.IsNegative() {
			return nil, total, domain.Invalid("Цена услуги не может быть отрицательной.")
		}
		sub := price.Mul(decimal.NewFromInt(int64(l.ServiceAmount)))
		total = total.Add(sub)
		out = append(out, InvoiceLineForPDF{Service: svc.Name, Amount: l.ServiceAmount, Price: price, Subtotal: sub})
	}
	return out, total, nil
}

// InvoiceTotal resta el descuento al subtotal; nunca devuelve un valor negativo.
func InvoiceTotal(subtotal, discount decimal.Decimal) decimal.Decimal {
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
