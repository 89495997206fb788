package memory

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

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

type UserRepo struct {
	collection[entity.User, *entity.User]
}

func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{newCollection[entity.User, *entity.User](s, "users",
		func(u *entity.User) string { return strings.ToLower(u.Email) },
	)}
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.findOne(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) })
}

type ClientRepo struct {
	collection[entity.Client, *entity.Client]
}

func NewClientRepository(s *Store) *ClientRepo {
	return &ClientRepo{newCollection[entity.Client, *entity.Client](s, "clients")}
}

type CounterpartyRepo struct {
	collection[entity.Counterparty, *entity.Counterparty]
}

func NewCounterpartyRepository(s *Store) *CounterpartyRepo {
	return &CounterpartyRepo{newCollection[entity.Counterparty, *entity.Counterparty](s, "counterparties",
		func(c *entity.Counterparty) string { return c.Name },
	)}
}

func (r *CounterpartyRepo) GetByName(_ context.Context, name string) (*entity.Counterparty, error) {
	return r.findOne(func(c *entity.Counterparty) bool { return c.Name == name })
}

type ProductRepo struct {
	collection[entity.Product, *entity.Product]
}

func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{newCollection[entity.Product, *entity.Product](s, "products",
		func(p *entity.Product) string { return scoped(p.Client, p.Barcode) },
		func(p *entity.Product) string { return scoped(p.Client, p.Article) },
	)}
}

// scoped arma la clave única "cliente|valor"; vacío si no hay valor.
func scoped(client, value string) string {
	if value == "" {
		return ""
	}
	return client + "|" + value
}

func (r *ProductRepo) ListByClient(_ context.Context, clientID string, archived bool) ([]*entity.Product, error) {
	return r.filter(func(rw row, p *entity.Product) bool { return rw.archived == archived && p.Client == clientID })
}

func (r *ProductRepo) GetByClientAndBarcode(_ context.Context, clientID, barcode string) (*entity.Product, error) {
	return r.findOne(func(p *entity.Product) bool { return p.Client == clientID && p.Barcode == barcode })
}

func (r *ProductRepo) GetByClientAndArticle(_ context.Context, clientID, article string) (*entity.Product, error) {
	return r.findOne(func(p *entity.Product) bool { return p.Client == clientID && p.Article == article })
}

type StockRepo struct {
	collection[entity.Stock, *entity.Stock]
}

func NewStockRepository(s *Store) *StockRepo {
	return &StockRepo{newCollection[entity.Stock, *entity.Stock](s, "stocks")}
}

// GetForUpdate equivale a GetByID: el TxRunner en memoria ya serializa las transacciones.
func (r *StockRepo) GetForUpdate(ctx context.Context, id string) (*entity.Stock, error) {
	return r.GetByID(ctx, id)
}

type ArrivalRepo struct {
	collection[entity.Arrival, *entity.Arrival]
}

func NewArrivalRepository(s *Store) *ArrivalRepo {
	return &ArrivalRepo{newCollection[entity.Arrival, *entity.Arrival](s, "arrivals")}
}

func (r *ArrivalRepo) ListByClient(_ context.Context, clientID string, archived bool) ([]*entity.Arrival, error) {
	return r.filter(func(rw row, a *entity.Arrival) bool { return rw.archived == archived && a.Client == clientID })
}

func (r *ArrivalRepo) GetForUpdate(ctx context.Context, id string) (*entity.Arrival, error) {
	return r.GetByID(ctx, id)
}

type OrderRepo struct {
	collection[entity.Order, *entity.Order]
}

func NewOrderRepository(s *Store) *OrderRepo {
	return &OrderRepo{newCollection[entity.Order, *entity.Order](s, "orders")}
}

func (r *OrderRepo) ListByClient(_ context.Context, clientID string, archived bool) ([]*entity.Order, error) {
	return r.filter(func(rw row, o *entity.Order) bool { return rw.archived == archived && o.Client == clientID })
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

type TaskRepo struct {
	collection[entity.Task, *entity.Task]
}

func NewTaskRepository(s *Store) *TaskRepo {
	return &TaskRepo{newCollection[entity.Task, *entity.Task](s, "tasks")}
}

func (r *TaskRepo) ListByUser(_ context.Context, userID string, archived bool) ([]*entity.Task, error) {
	return r.filter(func(rw row, t *entity.Task) bool { return rw.archived == archived && t.User == userID })
}

type ServiceRepo struct {
	collection[entity.Service, *entity.Service]
}

func NewServiceRepository(s *Store) *ServiceRepo {
	return &ServiceRepo{newCollection[entity.Service, *entity.Service](s, "services")}
}

type ServiceCategoryRepo struct {
	collection[entity.ServiceCategory, *entity.ServiceCategory]
}

func NewServiceCategoryRepository(s *Store) *ServiceCategoryRepo {
	return &ServiceCategoryRepo{newCollection[entity.ServiceCategory, *entity.ServiceCategory](s, "service_categories",
		func(c *entity.ServiceCategory) string { return c.Name },
	)}
}

func (r *ServiceCategoryRepo) GetByName(_ context.Context, name string) (*entity.ServiceCategory, error) {
	return r.findOne(func(c *entity.ServiceCategory) bool { return c.Name == name })
}

type InvoiceRepo struct {
	collection[entity.Invoice, *entity.Invoice]
}

func NewInvoiceRepository(s *Store) *InvoiceRepo {
	return &InvoiceRepo{newCollection[entity.Invoice, *entity.Invoice](s, "invoices")}
}

func (r *InvoiceRepo) ListByClient(_ context.Context, clientID string, archived bool) ([]*entity.Invoice, error) {
	return r.filter(func(rw row, i *entity.Invoice) bool { return rw.archived == archived && i.Client == clientID })
}

func (r *InvoiceRepo) SummaryByClient(ctx context.Context, clientID string) (repository.InvoiceSummary, error) {
	sum := repository.InvoiceSummary{Total: decimal.Zero, Paid: decimal.Zero}
	list, err := r.ListByClient(ctx, clientID, false)
	if err != nil {
		return sum, err
	}
	for _, inv := range list {
		sum.Count++
		sum.Total = sum.Total.Add(inv.TotalAmount)
		sum.Paid = sum.Paid.Add(inv.PaidAmount)
	}
	return sum, nil
}

type CounterRepo struct {
	s *Store
}

func NewCounterRepository(s *Store) *CounterRepo {
	return &CounterRepo{s: s}
}

func (r *CounterRepo) Next(_ context.Context, name string) (int64, error) {
	return r.s.next(name), nil
}
