package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
)

func TestCollection_ListMasRecientePrimero(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewClientRepository(memory.NewStore())

	require.NoError(t, repo.Create(ctx, &entity.Client{ID: "c1", Name: "Первый"}))
	require.NoError(t, repo.Create(ctx, &entity.Client{ID: "c2", Name: "Второй"}))
	require.NoError(t, repo.Create(ctx, &entity.Client{ID: "c3", Name: "Архив", IsArchived: true}))

	list, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c2", list[0].ID)
	assert.Equal(t, "c1", list[1].ID)

	archived, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, "c3", archived[0].ID)
}

func TestCollection_DevuelveCopias(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewClientRepository(memory.NewStore())
	c := &entity.Client{ID: "c1", Name: "Оригинал"}
	require.NoError(t, repo.Create(ctx, c))

	c.Name = "Изменено без Update"
	got, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Оригинал", got.Name)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCollection_UnicoPorCliente(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository(memory.NewStore())
	require.NoError(t, repo.Create(ctx, &entity.Product{ID: "p1", Client: "c1", Barcode: "111", Article: "A"}))

	err := repo.Create(ctx, &entity.Product{ID: "p2", Client: "c1", Barcode: "111", Article: "B"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	// mismo código de barras en otro cliente es válido
	require.NoError(t, repo.Create(ctx, &entity.Product{ID: "p3", Client: "c2", Barcode: "111", Article: "A"}))

	got, err := repo.GetByClientAndBarcode(ctx, "c2", "111")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "p3", got.ID)
}

func TestCollection_UpdateYDeleteInexistente(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStockRepository(memory.NewStore())

	assert.True(t, errors.Is(repo.Update(ctx, &entity.Stock{ID: "s1"}), domain.ErrNotFound))
	assert.True(t, errors.Is(repo.Delete(ctx, "s1"), domain.ErrNotFound))
}

func TestTxRunner_RollbackRestauraBodegas(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	stocks := memory.NewStockRepository(store)
	require.NoError(t, stocks.Create(ctx, &entity.Stock{ID: "s1", Products: []entity.StockItem{{Product: "p1", Amount: 5}}}))

	boom := errors.New("boom")
	err := memory.NewTxRunner(store).Run(ctx, func(repos inventory.TxRepos) error {
		s, err := repos.Stocks.GetForUpdate(ctx, "s1")
		require.NoError(t, err)
		s.Products[0].Amount = 100
		require.NoError(t, repos.Stocks.Update(ctx, s))
		return boom
	})
	require.ErrorIs(t, err, boom)

	s, err := stocks.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 5, s.Quantity("p1"))
}

func TestTxRunner_RollbackConservaEscriturasAjenas(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	stocks := memory.NewStockRepository(store)
	require.NoError(t, stocks.Create(ctx, &entity.Stock{ID: "s1", Products: []entity.StockItem{{Product: "p1", Amount: 5}}}))

	boom := errors.New("boom")
	err := memory.NewTxRunner(store).Run(ctx, func(repos inventory.TxRepos) error {
		s, err := repos.Stocks.GetForUpdate(ctx, "s1")
		require.NoError(t, err)
		s.Products[0].Amount = 0
		require.NoError(t, repos.Stocks.Update(ctx, s))
		require.NoError(t, repos.Stocks.Create(ctx, &entity.Stock{ID: "s-tx"}))
		require.NoError(t, repos.Arrivals.Create(ctx, &entity.Arrival{ID: "a-tx"}))

		// escritura concurrente fuera de la transacción
		require.NoError(t, stocks.Create(ctx, &entity.Stock{ID: "s-new", Name: "Новый"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	s1, err := stocks.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 5, s1.Quantity("p1"))

	created, err := stocks.GetByID(ctx, "s-new")
	require.NoError(t, err)
	require.NotNil(t, created, "lo escrito fuera de la transacción se conserva")
	assert.Equal(t, "Новый", created.Name)

	inTx, err := stocks.GetByID(ctx, "s-tx")
	require.NoError(t, err)
	assert.Nil(t, inTx)
	arrival, err := memory.NewArrivalRepository(store).GetByID(ctx, "a-tx")
	require.NoError(t, err)
	assert.Nil(t, arrival)
}

func TestTxRunner_RollbackRestauraEliminados(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	orders := memory.NewOrderRepository(store)
	require.NoError(t, orders.Create(ctx, &entity.Order{ID: "o1", Comment: "первый"}))
	require.NoError(t, orders.Create(ctx, &entity.Order{ID: "o2"}))

	boom := errors.New("boom")
	err := memory.NewTxRunner(store).Run(ctx, func(repos inventory.TxRepos) error {
		o, err := repos.Orders.GetForUpdate(ctx, "o1")
		require.NoError(t, err)
		o.Comment = "изменён"
		require.NoError(t, repos.Orders.Update(ctx, o))
		require.NoError(t, repos.Orders.Delete(ctx, "o1"))
		return boom
	})
	require.ErrorIs(t, err, boom)

	o, err := orders.GetByID(ctx, "o1")
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, "первый", o.Comment)

	list, err := orders.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "o2", list[0].ID, "el orden de inserción se conserva")
}

func TestCounterRepo_Secuencias(t *testing.T) {
	ctx := context.Background()
	counters := memory.NewCounterRepository(memory.NewStore())

	n1, _ := counters.Next(ctx, "arrival")
	n2, _ := counters.Next(ctx, "arrival")
	o1, _ := counters.Next(ctx, "order")
	assert.Equal(t, int64(1), n1)
	assert.Equal(t, int64(2), n2)
	assert.Equal(t, int64(1), o1)
}
