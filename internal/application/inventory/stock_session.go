package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

const (
	msgStockNotFound = "Склад не найден."
	msgStockArchived = "Склад в архиве."
)

// stockSession reúne los libros de las bodegas que toca una operación. Todas
// las bodegas se bloquean dentro de la misma transacción y cada una se guarda
// una sola vez en Commit.
type stockSession struct {
	repo    repository.StockRepository
	stocks  map[string]*entity.Stock
	ledgers map[string]*ledger.Ledger
}

func newStockSession(repo repository.StockRepository) *stockSession {
	return &stockSession{
		repo:    repo,
		stocks:  map[string]*entity.Stock{},
		ledgers: map[string]*ledger.Ledger{},
	}
}

// lock carga las bodegas con bloqueo, siempre en orden de id. Los ids vacíos se ignoran.
func (s *stockSession) lock(ctx context.Context, ids ...string) error {
	pending := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := s.stocks[id]; ok {
			continue
		}
		pending = append(pending, id)
	}
	sort.Strings(pending)
	for i, id := range pending {
		if i > 0 && pending[i-1] == id {
			continue
		}
		st, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if st == nil {
			return domain.NotFound(msgStockNotFound)
		}
		s.stocks[id] = st
		s.ledgers[id] = ledger.New(st)
	}
	return nil
}

func (s *stockSession) stock(id string) *entity.Stock { return s.stocks[id] }

func (s *stockSession) ledger(id string) *ledger.Ledger { return s.ledgers[id] }

// requireActive falla si la bodega está archivada.
func (s *stockSession) requireActive(id string) error {
	if st := s.stocks[id]; st != nil && st.IsArchived {
		return domain.Forbidden(msgStockArchived)
	}
	return nil
}

// reconcile deshace prev sobre prevStock y aplica next sobre nextStock.
// Ambas bodegas deben estar bloqueadas.
func (s *stockSession) reconcile(prevStock string, prev ledger.Effect, nextStock string, next ledger.Effect) {
	if l := s.ledgers[prevStock]; l != nil {
		l.Revert(prev)
	}
	if l := s.ledgers[nextStock]; l != nil {
		l.Apply(next)
	}
}

// commit valida todos los libros y solo entonces guarda las bodegas modificadas.
func (s *stockSession) commit(ctx context.Context, now time.Time) error {
	ids := make([]string, 0, len(s.ledgers))
	for id := range s.ledgers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := s.ledgers[id].Validate(); err != nil {
			return err
		}
	}
	for _, id := range ids {
		l := s.ledgers[id]
		if !l.Dirty() {
			continue
		}
		st := s.stocks[id]
		l.WriteTo(st)
		st.UpdatedAt = now
		if err := s.repo.Update(ctx, st); err != nil {
			return err
		}
	}
	return nil
}
