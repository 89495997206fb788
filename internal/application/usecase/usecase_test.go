package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
)

type repos struct {
	users          *memory.UserRepo
	clients        *memory.ClientRepo
	counterparties *memory.CounterpartyRepo
	products       *memory.ProductRepo
	stocks         *memory.StockRepo
	arrivals       *memory.ArrivalRepo
	orders         *memory.OrderRepo
	tasks          *memory.TaskRepo
	services       *memory.ServiceRepo
	categories     *memory.ServiceCategoryRepo
	invoices       *memory.InvoiceRepo
	counters       *memory.CounterRepo
}

func newRepos() repos {
	s := memory.NewStore()
	return repos{
		users:          memory.NewUserRepository(s),
		clients:        memory.NewClientRepository(s),
		counterparties: memory.NewCounterpartyRepository(s),
		products:       memory.NewProductRepository(s),
		stocks:         memory.NewStockRepository(s),
		arrivals:       memory.NewArrivalRepository(s),
		orders:         memory.NewOrderRepository(s),
		tasks:          memory.NewTaskRepository(s),
		services:       memory.NewServiceRepository(s),
		categories:     memory.NewServiceCategoryRepository(s),
		invoices:       memory.NewInvoiceRepository(s),
		counters:       memory.NewCounterRepository(s),
	}
}

func (r repos) populator() *usecase.Populator {
	return usecase.NewPopulator(usecase.PopulatorRepos{
		Users:          r.users,
		Clients:        r.clients,
		Counterparties: r.counterparties,
		Products:       r.products,
		Stocks:         r.stocks,
		Services:       r.services,
		Categories:     r.categories,
		Arrivals:       r.arrivals,
		Orders:         r.orders,
	})
}

func ptr[T any](v T) *T { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

const userID = "user-1"

// ── Lifecycle ───────────────────────────────────────────────────────────────

func TestClient_CicloDeArchivo(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	uc := usecase.NewClientUseCase(r.clients, r.populator())

	c, err := uc.Create(ctx, userID, dto.ClientRequest{Name: "ООО Ромашка", PhoneNumber: "+7", Email: "a@b.ru", INN: "77"})
	require.NoError(t, err)
	require.Len(t, c.Logs, 1)

	msg, err := uc.Archive(ctx, c.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, "Клиент перемещен в архив.", msg.Message)

	_, err = uc.Archive(ctx, c.ID, userID)
	assert.Equal(t, "Клиент уже в архиве.", domain.Message(err, ""))

	_, err = uc.Get(ctx, c.ID)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	got, err := uc.GetArchived(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, got.Logs, 2, "archivar queda en el historial")

	_, err = uc.Update(ctx, c.ID, userID, dto.ClientRequest{Name: "X", PhoneNumber: "+7", Email: "a@b.ru", INN: "77"})
	assert.Equal(t, "Клиент в архиве.", domain.Message(err, ""))

	msg, err = uc.Unarchive(ctx, c.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, "Клиент восстановлен из архива.", msg.Message)

	msg, err = uc.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Клиент успешно удалён.", msg.Message)

	_, err = uc.Find(ctx, c.ID)
	assert.Equal(t, "Клиент не найден.", domain.Message(err, ""))
}

func TestClient_UpdateRegistraDiferencias(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	uc := usecase.NewClientUseCase(r.clients, nil)
	in := dto.ClientRequest{Name: "Старое", PhoneNumber: "+7", Email: "a@b.ru", INN: "77"}
	c, err := uc.Create(ctx, userID, in)
	require.NoError(t, err)

	// sin cambios no hay entrada nueva
	c, err = uc.Update(ctx, c.ID, userID, in)
	require.NoError(t, err)
	assert.Len(t, c.Logs, 1)

	in.Name = "Новое"
	c, err = uc.Update(ctx, c.ID, userID, in)
	require.NoError(t, err)
	require.Len(t, c.Logs, 2)
	assert.Contains(t, c.Logs[1].Change, "Новое")
	assert.Equal(t, userID, c.Logs[1].User)
}

func TestClient_Validacion(t *testing.T) {
	uc := usecase.NewClientUseCase(newRepos().clients, nil)
	_, err := uc.Create(context.Background(), userID, dto.ClientRequest{Name: "Без ИНН", PhoneNumber: "+7", Email: "a@b.ru"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ── Unicidad ────────────────────────────────────────────────────────────────

func TestProduct_BarcodeUnicoPorCliente(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	require.NoError(t, r.clients.Create(ctx, &entity.Client{ID: "c1", Name: "A"}))
	require.NoError(t, r.clients.Create(ctx, &entity.Client{ID: "c2", Name: "B"}))
	uc := usecase.NewProductUseCase(r.products, r.clients, nil)

	_, err := uc.Create(ctx, userID, dto.ProductRequest{Client: "c1", Title: "Кружка", Barcode: "111", Article: "A-1"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, userID, dto.ProductRequest{Client: "c1", Title: "Кружка 2", Barcode: "111", Article: "A-2"})
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, "Товар с таким баркодом уже существует.", domain.Message(err, ""))

	_, err = uc.Create(ctx, userID, dto.ProductRequest{Client: "c1", Title: "Кружка 3", Barcode: "222", Article: "A-1"})
	assert.Equal(t, "Товар с таким артикулом уже существует.", domain.Message(err, ""))

	_, err = uc.Create(ctx, userID, dto.ProductRequest{Client: "c2", Title: "Кружка", Barcode: "111", Article: "A-1"})
	assert.NoError(t, err)

	_, err = uc.Create(ctx, userID, dto.ProductRequest{Client: "nope", Title: "X", Barcode: "9", Article: "9"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCounterparty_NombreUnico(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCounterpartyUseCase(newRepos().counterparties, nil)

	first, err := uc.Create(ctx, userID, dto.CounterpartyRequest{Name: "СДЭК"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, userID, dto.CounterpartyRequest{Name: "СДЭК"})
	assert.Equal(t, "Контрагент с таким именем уже существует.", domain.Message(err, ""))

	// renombrar a su propio nombre no choca consigo mismo
	_, err = uc.Update(ctx, first.ID, userID, dto.CounterpartyRequest{Name: "СДЭК", Address: "Москва"})
	assert.NoError(t, err)
}

// ── Facturas ────────────────────────────────────────────────────────────────

type fakePDF struct {
	lines []usecase.InvoiceLineForPDF
}

func (f *fakePDF) GenerateInvoicePDF(_ context.Context, _ *entity.Invoice, _ *entity.Client, lines []usecase.InvoiceLineForPDF) ([]byte, error) {
	f.lines = lines
	return []byte("%PDF"), nil
}

func newInvoiceUC(t *testing.T, r repos, gen usecase.InvoicePDFGenerator) *usecase.InvoiceUseCase {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, r.clients.Create(ctx, &entity.Client{ID: "c1", Name: "ООО Ромашка"}))
	require.NoError(t, r.services.Create(ctx, &entity.Service{ID: "s-pack", Name: "Упаковка", Price: dec("100")}))
	require.NoError(t, r.services.Create(ctx, &entity.Service{ID: "s-label", Name: "Маркировка", Price: dec("10")}))
	return usecase.NewInvoiceUseCase(usecase.InvoiceRepos{
		Invoices: r.invoices,
		Clients:  r.clients,
		Services: r.services,
		Arrivals: r.arrivals,
		Orders:   r.orders,
		Counters: r.counters,
	}, gen, r.populator())
}

func TestInvoice_TotalYEstado(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	uc := newInvoiceUC(t, r, nil)

	inv, err := uc.Create(ctx, userID, dto.InvoiceRequest{
		Client: ptr("c1"),
		Services: []entity.ServiceLine{
			{Service: "s-pack", ServiceAmount: 3},
			{Service: "s-label", ServiceAmount: 2, ServicePrice: ptr(dec("25"))},
		},
		Discount: ptr(dec("50")),
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-1", inv.InvoiceNumber)
	assert.True(t, inv.TotalAmount.Equal(dec("300")), "300 + 50 - 50")
	assert.Equal(t, entity.InvoicePending, inv.Status)

	inv, err = uc.Update(ctx, inv.ID, userID, dto.InvoiceRequest{PaidAmount: ptr(dec("100"))})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoicePartiallyPaid, inv.Status)

	inv, err = uc.Update(ctx, inv.ID, userID, dto.InvoiceRequest{PaidAmount: ptr(dec("300"))})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoicePaid, inv.Status)

	sum, err := uc.Summary(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Count)
	assert.True(t, sum.Debt.IsZero())
}

func TestInvoice_Validacion(t *testing.T) {
	ctx := context.Background()
	uc := newInvoiceUC(t, newRepos(), nil)

	_, err := uc.Create(ctx, userID, dto.InvoiceRequest{Client: ptr("c1")})
	assert.Equal(t, "Добавьте услуги в счет.", domain.Message(err, ""))

	_, err = uc.Create(ctx, userID, dto.InvoiceRequest{
		Client:   ptr("c1"),
		Services: []entity.ServiceLine{{Service: "s-pack", ServiceAmount: 1}},
		Discount: ptr(dec("-1")),
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Create(ctx, userID, dto.InvoiceRequest{
		Client:            ptr("c1"),
		Services:          []entity.ServiceLine{{Service: "s-pack", ServiceAmount: 1}},
		AssociatedArrival: ptr("no-existe"),
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestInvoiceTotal_NuncaNegativo(t *testing.T) {
	assert.True(t, usecase.InvoiceTotal(dec("100"), dec("150")).IsZero())
	assert.True(t, usecase.InvoiceTotal(dec("100"), dec("30")).Equal(dec("70")))
}

func TestInvoice_PDF(t *testing.T) {
	ctx := context.Background()
	gen := &fakePDF{}
	uc := newInvoiceUC(t, newRepos(), gen)
	inv, err := uc.Create(ctx, userID, dto.InvoiceRequest{
		Client:   ptr("c1"),
		Services: []entity.ServiceLine{{Service: "s-pack", ServiceAmount: 2}},
	})
	require.NoError(t, err)

	body, name, err := uc.PDF(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-1.pdf", name)
	assert.NotEmpty(t, body)
	require.Len(t, gen.lines, 1)
	assert.Equal(t, "Упаковка", gen.lines[0].Service)
	assert.True(t, gen.lines[0].Subtotal.Equal(dec("200")))
}

// ── Tareas ──────────────────────────────────────────────────────────────────

func newTaskUC(t *testing.T, r repos) *usecase.TaskUseCase {
	t.Helper()
	require.NoError(t, r.users.Create(context.Background(), &entity.User{ID: userID, Email: "w@test.ru", PasswordHash: "hash", Role: entity.RoleStockWorker}))
	return usecase.NewTaskUseCase(usecase.TaskRepos{
		Tasks:    r.tasks,
		Users:    r.users,
		Arrivals: r.arrivals,
		Orders:   r.orders,
		Counters: r.counters,
	}, r.populator())
}

func TestTask_EstadosSellanFechas(t *testing.T) {
	ctx := context.Background()
	uc := newTaskUC(t, newRepos())

	task, err := uc.Create(ctx, userID, dto.TaskRequest{User: ptr(userID), Title: ptr("Пересчитать склад")})
	require.NoError(t, err)
	assert.Equal(t, "TSK-1", task.TaskNumber)
	assert.Equal(t, entity.TaskToDo, task.Status)
	assert.Equal(t, entity.TaskTypeOther, task.Type)
	assert.NotNil(t, task.DateToDo)
	assert.Nil(t, task.DateInProgress)

	task, err = uc.UpdateStatus(ctx, task.ID, userID, entity.TaskInProgress)
	require.NoError(t, err)
	assert.NotNil(t, task.DateInProgress)
	assert.Len(t, task.Logs, 2)

	task, err = uc.UpdateStatus(ctx, task.ID, userID, entity.TaskDone)
	require.NoError(t, err)
	assert.NotNil(t, task.DateDone)

	_, err = uc.UpdateStatus(ctx, task.ID, userID, "неизвестно")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestTask_AsociacionSegunTipo(t *testing.T) {
	ctx := context.Background()
	uc := newTaskUC(t, newRepos())

	_, err := uc.Create(ctx, userID, dto.TaskRequest{User: ptr(userID), Title: ptr("Собрать"), Type: ptr(entity.TaskTypeOrder)})
	assert.Equal(t, "Укажите заказ для задачи.", domain.Message(err, ""))

	_, err = uc.Create(ctx, userID, dto.TaskRequest{User: ptr(userID), Title: ptr("Принять"), Type: ptr(entity.TaskTypeArrival), AssociatedArrival: ptr("no-existe")})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = uc.Create(ctx, userID, dto.TaskRequest{User: ptr("otro"), Title: ptr("X")})
	assert.Equal(t, "Пользователь не найден", domain.Message(err, ""))
}

// ── Populate ────────────────────────────────────────────────────────────────

func TestPopulate_ExpandeUsuarioSinPassword(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	uc := newTaskUC(t, r)
	_, err := uc.Create(ctx, userID, dto.TaskRequest{User: ptr(userID), Title: ptr("Пересчитать")})
	require.NoError(t, err)

	view, err := uc.ListView(ctx, false, dto.ListQuery{Populate: true})
	require.NoError(t, err)
	list, ok := view.([]map[string]any)
	require.True(t, ok)
	require.Len(t, list, 1)

	user, ok := list[0]["user"].(*dto.UserResponse)
	require.True(t, ok, "user expandido como UserResponse")
	assert.Equal(t, "w@test.ru", user.Email)

	logs := list[0]["logs"].([]any)
	entry := logs[0].(map[string]any)
	assert.IsType(t, &dto.UserResponse{}, entry["user"])

	plain, err := uc.ListView(ctx, false, dto.ListQuery{})
	require.NoError(t, err)
	assert.IsType(t, []*entity.Task{}, plain)
}

func TestPopulate_ReferenciaInexistenteQuedaNil(t *testing.T) {
	ctx := context.Background()
	p := newRepos().populator()
	m, err := p.Expand(ctx, &entity.Product{ID: "p1", Client: "borrado"}, usecase.ProductRefs)
	require.NoError(t, err)
	assert.Nil(t, m["client"])
}

// ── Usuarios ────────────────────────────────────────────────────────────────

func TestUser_UpdateEmailUnico(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	require.NoError(t, r.users.Create(ctx, &entity.User{ID: "u1", Email: "a@test.ru", Role: entity.RoleManager}))
	require.NoError(t, r.users.Create(ctx, &entity.User{ID: "u2", Email: "b@test.ru", Role: entity.RoleManager}))
	uc := usecase.NewUserUseCase(r.users)

	_, err := uc.Update(ctx, "u2", dto.UpdateUserRequest{Email: ptr("a@test.ru")})
	assert.True(t, errors.Is(err, domain.ErrConflict))

	_, err = uc.Update(ctx, "u2", dto.UpdateUserRequest{Role: ptr("jefe")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	u, err := uc.Update(ctx, "u2", dto.UpdateUserRequest{DisplayName: ptr("Борис"), Role: ptr(entity.RoleAdmin)})
	require.NoError(t, err)
	assert.Equal(t, "Борис", u.DisplayName)
	assert.Equal(t, entity.RoleAdmin, u.Role)

	list, err := uc.ListUsers(ctx, false)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
