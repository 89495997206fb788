package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Collection[entity.User]
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Collection[entity.Client]
}

// CounterpartyRepository define el puerto de persistencia para Counterparty. Name es único.
type CounterpartyRepository interface {
	Collection[entity.Counterparty]
	GetByName(ctx context.Context, name string) (*entity.Counterparty, error)
}

// ProductRepository define el puerto de persistencia para Product.
// Barcode y Article son únicos dentro de un cliente.
type ProductRepository interface {
	Collection[entity.Product]
	ListByClient(ctx context.Context, clientID string, archived bool) ([]*entity.Product, error)
	GetByClientAndBarcode(ctx context.Context, clientID, barcode string) (*entity.Product, error)
	GetByClientAndArticle(ctx context.Context, clientID, article string) (*entity.Product, error)
}

// StockRepository define el puerto de persistencia para Stock.
type StockRepository interface {
	Collection[entity.Stock]
	// GetForUpdate obtiene la bodega y bloquea el documento hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Stock, error)
}

// ArrivalRepository define el puerto de persistencia para Arrival.
type ArrivalRepository interface {
	Collection[entity.Arrival]
	ListByClient(ctx context.Context, clientID string, archived bool) ([]*entity.Arrival, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Arrival, error)
}

// OrderRepository define el puerto de persistencia para Order.
type OrderRepository interface {
	Collection[entity.Order]
	ListByClient(ctx context.Context, clientID string, archived bool) ([]*entity.Order, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
}

// TaskRepository define el puerto de persistencia para Task.
type TaskRepository interface {
	Collection[entity.Task]
	ListByUser(ctx context.Context, userID string, archived bool) ([]*entity.Task, error)
}

// ServiceRepository define el puerto de persistencia para Service.
type ServiceRepository interface {
	Collection[entity.Service]
}

// ServiceCategoryRepository define el puerto de persistencia para ServiceCategory. Name es único.
type ServiceCategoryRepository interface {
	Collection[entity.ServiceCategory]
	GetByName(ctx context.Context, name string) (*entity.ServiceCategory, error)
}

// InvoiceRepository define el puerto de persistencia para Invoice.
type InvoiceRepository interface {
	Collection[entity.Invoice]
	ListByClient(ctx context.Context, clientID string, archived bool) ([]*entity.Invoice, error)
	SummaryByClient(ctx context.Context, clientID string) (InvoiceSummary, error)
}

// InvoiceSummary totales de facturación de un cliente (facturas no archivadas).
type InvoiceSummary struct {
	Count int
	Total decimal.Decimal
	Paid  decimal.Decimal
}
