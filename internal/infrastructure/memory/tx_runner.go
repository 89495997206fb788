package memory

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las transacciones con un mutex global. Si fn falla,
// deshace solo las filas que escribieron los repositorios de esa transacción;
// lo escrito fuera de ella se conserva.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	j := newJournal()
	stocks := NewStockRepository(r.s)
	stocks.j = j
	arrivals := NewArrivalRepository(r.s)
	arrivals.j = j
	orders := NewOrderRepository(r.s)
	orders.j = j

	err := fn(inventory.TxRepos{
		Stocks:   stocks,
		Arrivals: arrivals,
		Orders:   orders,
		Counters: NewCounterRepository(r.s),
	})
	if err != nil {
		j.undo()
		return err
	}
	return nil
}
