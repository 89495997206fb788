// Package bootstrap arma los casos de uso y las dependencias del router sobre
// un backend de persistencia (Postgres o memoria).
package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/domain/workflow"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	apphttp "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// Repos puertos de persistencia de la aplicación.
type Repos struct {
	Tx                inventory.TxRunner
	Users             repository.UserRepository
	Clients           repository.ClientRepository
	Counterparties    repository.CounterpartyRepository
	Products          repository.ProductRepository
	Stocks            repository.StockRepository
	Arrivals          repository.ArrivalRepository
	Orders            repository.OrderRepository
	Tasks             repository.TaskRepository
	Services          repository.ServiceRepository
	ServiceCategories repository.ServiceCategoryRepository
	Invoices          repository.InvoiceRepository
	Counters          repository.CounterRepository
}

// PostgresRepos repositorios sobre el pool.
func PostgresRepos(pool *pgxpool.Pool) Repos {
	return Repos{
		Tx:                postgres.NewTxRunner(pool),
		Users:             postgres.NewUserRepository(pool),
		Clients:           postgres.NewClientRepository(pool),
		Counterparties:    postgres.NewCounterpartyRepository(pool),
		Products:          postgres.NewProductRepository(pool),
		Stocks:            postgres.NewStockRepository(pool),
		Arrivals:          postgres.NewArrivalRepository(pool),
		Orders:            postgres.NewOrderRepository(pool),
		Tasks:             postgres.NewTaskRepository(pool),
		Services:          postgres.NewServiceRepository(pool),
		ServiceCategories: postgres.NewServiceCategoryRepository(pool),
		Invoices:          postgres.NewInvoiceRepository(pool),
		Counters:          postgres.NewCounterRepository(pool),
	}
}

// MemoryRepos repositorios en memoria (desarrollo y tests).
func MemoryRepos(s *memory.Store) Repos {
	return Repos{
		Tx:                memory.NewTxRunner(s),
		Users:             memory.NewUserRepository(s),
		Clients:           memory.NewClientRepository(s),
		Counterparties:    memory.NewCounterpartyRepository(s),
		Products:          memory.NewProductRepository(s),
		Stocks:            memory.NewStockRepository(s),
		Arrivals:          memory.NewArrivalRepository(s),
		Orders:            memory.NewOrderRepository(s),
		Tasks:             memory.NewTaskRepository(s),
		Services:          memory.NewServiceRepository(s),
		ServiceCategories: memory.NewServiceCategoryRepository(s),
		Invoices:          memory.NewInvoiceRepository(s),
		Counters:          memory.NewCounterRepository(s),
	}
}

// Options configuración de los casos de uso.
type Options struct {
	JWT                 auth.JWTConfig
	AllowStatusRollback bool
	PDF                 usecase.InvoicePDFGenerator
	UploadDir           string
	Log                 *logger.Logger
}

// RouterDeps construye todos los casos de uso sobre r.
func RouterDeps(r Repos, opt Options) apphttp.RouterDeps {
	if opt.Log == nil {
		opt.Log = logger.Nop()
	}
	populator := usecase.NewPopulator(usecase.PopulatorRepos{
		Users:          r.Users,
		Clients:        r.Clients,
		Counterparties: r.Counterparties,
		Products:       r.Products,
		Stocks:         r.Stocks,
		Services:       r.Services,
		Categories:     r.ServiceCategories,
		Arrivals:       r.Arrivals,
		Orders:         r.Orders,
	})
	return apphttp.RouterDeps{
		AuthUC:            auth.NewAuthUseCase(r.Users, opt.JWT),
		UserUC:            usecase.NewUserUseCase(r.Users),
		ClientUC:          usecase.NewClientUseCase(r.Clients, populator),
		CounterpartyUC:    usecase.NewCounterpartyUseCase(r.Counterparties, populator),
		ProductUC:         usecase.NewProductUseCase(r.Products, r.Clients, populator),
		ServiceUC:         usecase.NewServiceUseCase(r.Services, r.ServiceCategories, populator),
		ServiceCategoryUC: usecase.NewServiceCategoryUseCase(r.ServiceCategories),
		StockUC:           inventory.NewStockUseCase(r.Tx, r.Stocks, populator, opt.Log.Component("stocks")),
		ArrivalUC: inventory.NewArrivalUseCase(inventory.ArrivalDeps{
			Tx:             r.Tx,
			Arrivals:       r.Arrivals,
			Clients:        r.Clients,
			Counterparties: r.Counterparties,
			Machine:        workflow.ArrivalMachine().WithRollback(opt.AllowStatusRollback),
			Populator:      populator,
			Log:            opt.Log.Component("arrivals"),
		}),
		OrderUC: inventory.NewOrderUseCase(inventory.OrderDeps{
			Tx:        r.Tx,
			Orders:    r.Orders,
			Clients:   r.Clients,
			Machine:   workflow.OrderMachine().WithRollback(opt.AllowStatusRollback),
			Populator: populator,
			Log:       opt.Log.Component("orders"),
		}),
		TaskUC: usecase.NewTaskUseCase(usecase.TaskRepos{
			Tasks:    r.Tasks,
			Users:    r.Users,
			Arrivals: r.Arrivals,
			Orders:   r.Orders,
			Counters: r.Counters,
		}, populator),
		InvoiceUC: usecase.NewInvoiceUseCase(usecase.InvoiceRepos{
			Invoices: r.Invoices,
			Clients:  r.Clients,
			Services: r.Services,
			Arrivals: r.Arrivals,
			Orders:   r.Orders,
			Counters: r.Counters,
		}, opt.PDF, populator),
		UploadDir: opt.UploadDir,
	}
}
