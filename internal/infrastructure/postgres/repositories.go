package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var (
	_ repository.UserRepository            = (*UserRepo)(nil)
	_ repository.ClientRepository          = (*ClientRepo)(nil)
	_ repository.CounterpartyRepository    = (*CounterpartyRepo)(nil)
	_ repository.ProductRepository         = (*ProductRepo)(nil)
	_ repository.StockRepository           = (*StockRepo)(nil)
	_ repository.ArrivalRepository         = (*ArrivalRepo)(nil)
	_ repository.OrderRepository           = (*OrderRepo)(nil)
	_ repository.TaskRepository            = (*TaskRepo)(nil)
	_ repository.ServiceRepository         = (*ServiceRepo)(nil)
	_ repository.ServiceCategoryRepository = (*ServiceCategoryRepo)(nil)
	_ repository.InvoiceRepository         = (*InvoiceRepo)(nil)
	_ repository.CounterRepository         = (*CounterRepo)(nil)
)

// UserRepo implementación de UserRepository sobre PostgreSQL.
type UserRepo struct {
	collection[entity.User, *entity.User]
}

// NewUserRepository construye el adaptador de usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{collection[entity.User, *entity.User]{q: q, table: "users"}}
}

// GetByEmail busca sin distinguir mayúsculas.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "lower(doc->>'email') = lower($1)", email)
}

// ClientRepo implementación de ClientRepository sobre PostgreSQL.
type ClientRepo struct {
	collection[entity.Client, *entity.Client]
}

func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{collection[entity.Client, *entity.Client]{q: q, table: "clients"}}
}

// CounterpartyRepo implementación de CounterpartyRepository sobre PostgreSQL.
type CounterpartyRepo struct {
	collection[entity.Counterparty, *entity.Counterparty]
}

func NewCounterpartyRepository(q Querier) *CounterpartyRepo {
	return &CounterpartyRepo{collection[entity.Counterparty, *entity.Counterparty]{q: q, table: "counterparties"}}
}

func (r *CounterpartyRepo) GetByName(ctx context.Context, name string) (*entity.Counterparty, error) {
	return r.findOne(ctx, "doc->>'name' = $1", name)
}

// ProductRepo implementación de ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	collection[entity.Product, *entity.Product]
}

func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{collection[entity.Product, *entity.Product]{q: q, table: "products"}}
}

func (r *ProductRepo) ListByClient(ctx context.Context, clientID string, archived bool) ([]*entity.Product, error) {
	return r.listBy(ctx, "client", clientID, archived)
}

func (r *ProductRepo) GetByClientAndBarcode(ctx context.Context, clientID, barcode string) (*entity.Product, error) {
	return r.findOne(ctx, "doc->>'client' = $1 AND doc->>'barcode' = $2", clientID, barcode)
}

func (r *ProductRepo) GetByClientAndArticle(ctx context.Context, clientID, article string) (*entity.Product, error) {
	return r.findOne(ctx, "doc->>'client' = $1 AND doc->>'article' = $2", clientID, article)
}

// StockRepo implementación de StockRepository sobre PostgreSQL.
type StockRepo struct {
	collection[entity.Stock, *entity.Stock]
}

func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{collection[entity.Stock, *entity.Stock]{q: q, table: "stocks"}}
}

// GetForUpdate obtiene la bodega y bloquea la fila (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, id string) (*entity.Stock, error) {
	return r.getForUpdate(ctx, id)
}

// ArrivalRepo implementación de ArrivalRepository sobre PostgreSQL.
type ArrivalRepo struct {
	collection[entity.Arrival, *entity.Arrival]
}

func NewArrivalRepository(q Querier) *ArrivalRepo {
	return &ArrivalRepo{collection[entity.Arrival, *entity.Arrival]{q: q, table: "arrivals"}}
}

func (r *ArrivalRepo) ListByClient(ctx context.Context, clientID string, archived bool) ([]*entity.Arrival, error) {
	return r.listBy(ctx, "client", clientID, archived)
}

func (r *ArrivalRepo) GetForUpdate(ctx context.Context, id string) (*entity.Arrival, error) {
	return r.getForUpdate(ctx, id)
}

// OrderRepo implementación de OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	collection[entity.Order, *entity.Order]
}

func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{collection[entity.Order, *entity.Order]{q: q, table: "orders"}}
}

func (r *OrderRepo) ListByClient(ctx context.Context, clientID string, archived bool) ([]*entity.Order, error) {
	return r.listBy(ctx, "client", clientID, archived)
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.getForUpdate(ctx, id)
}

// TaskRepo implementación de TaskRepository sobre PostgreSQL.
type TaskRepo struct {
	collection[entity.Task, *entity.Task]
}

func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{collection[entity.Task, *entity.Task]{q: q, table: "tasks"}}
}

func (r *TaskRepo) ListByUser(ctx context.Context, userID string, archived bool) ([]*entity.Task, error) {
	return r.listBy(ctx, "user", userID, archived)
}

// ServiceRepo implementación de ServiceRepository sobre PostgreSQL.
type ServiceRepo struct {
	collection[entity.Service, *entity.Service]
}

func NewServiceRepository(q Querier) *ServiceRepo {
	return &ServiceRepo{collection[entity.Service, *entity.Service]{q: q, table: "services"}}
}

// ServiceCategoryRepo implementación de ServiceCategoryRepository sobre PostgreSQL.
type ServiceCategoryRepo struct {
	collection[entity.ServiceCategory, *entity.ServiceCategory]
}

func NewServiceCategoryRepository(q Querier) *ServiceCategoryRepo {
	return &ServiceCategoryRepo{collection[entity.ServiceCategory, *entity.ServiceCategory]{q: q, table: "service_categories"}}
}

func (r *ServiceCategoryRepo) GetByName(ctx context.Context, name string) (*entity.ServiceCategory, error) {
	return r.findOne(ctx, "doc->>'name' = $1", name)
}

// InvoiceRepo implementación de InvoiceRepository sobre PostgreSQL.
type InvoiceRepo struct {
	collection[entity.Invoice, *entity.Invoice]
}

func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{collection[entity.Invoice, *entity.Invoice]{q: q, table: "invoices"}}
}

func (r *InvoiceRepo) ListByClient(ctx context.Context, clientID string, archived bool) ([]*entity.Invoice, error) {
	return r.listBy(ctx, "client", clientID, archived)
}

// CounterRepo implementación de CounterRepository: una fila por tipo.
type CounterRepo struct {
	q Querier
}

func NewCounterRepository(q Querier) *CounterRepo {
	return &CounterRepo{q: q}
}

// Next incrementa y devuelve el siguiente valor de la secuencia name (empieza en 1).
func (r *CounterRepo) Next(ctx context.Context, name string) (int64, error) {
	var seq int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO counters (name, seq) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET seq = counters.seq + 1
		RETURNING seq`, name).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next counter %s: %w", name, err)
	}
	return seq, nil
}

// SummaryByClient suma totales y pagos de las facturas activas de un cliente.
func (r *InvoiceRepo) SummaryByClient(ctx context.Context, clientID string) (repository.InvoiceSummary, error) {
	var s repository.InvoiceSummary
	err := r.q.QueryRow(ctx, `
		SELECT count(*),
		       COALESCE(SUM((doc->>'totalAmount')::numeric), 0),
		       COALESCE(SUM((doc->>'paid_amount')::numeric), 0)
		FROM invoices
		WHERE is_archived = FALSE AND doc->>'client' = $1`, clientID,
	).Scan(&s.Count, &s.Total, &s.Paid)
	if err != nil {
		return s, fmt.Errorf("invoice summary: %w", err)
	}
	return s, nil
}
