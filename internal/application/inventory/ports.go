package inventory

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción.
type TxRepos struct {
	Stocks   repository.StockRepository
	Arrivals repository.ArrivalRepository
	Orders   repository.OrderRepository
	Counters repository.CounterRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ningún cambio aplicado (ni en bodegas ni en documentos).
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
