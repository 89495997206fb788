package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/audit"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

var stockMessages = usecase.Messages{
	NotFound:        msgStockNotFound,
	InArchive:       msgStockArchived,
	NotInArchive:    "Этот склад не в архиве.",
	AlreadyArchived: "Склад уже в архиве.",
	Archived:        "Склад перемещен в архив.",
	Unarchived:      "Склад восстановлен из архива.",
	Deleted:         "Склад успешно удалён.",
}

// StockUseCase administra las bodegas. Las cantidades solo cambian por
// entregas, pedidos y bajas; aquí se editan nombre y dirección.
type StockUseCase struct {
	usecase.Lifecycle[entity.Stock, *entity.Stock]
	tx        TxRunner
	repo      repository.StockRepository
	populator *usecase.Populator
	log       *logger.Logger
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(tx TxRunner, repo repository.StockRepository, populator *usecase.Populator, log *logger.Logger) *StockUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &StockUseCase{
		Lifecycle: usecase.NewLifecycle[entity.Stock](repo, stockMessages),
		tx:        tx,
		repo:      repo,
		populator: populator,
		log:       log,
	}
}

func (uc *StockUseCase) ListView(ctx context.Context, archived bool, q dto.ListQuery) (any, error) {
	list, err := uc.List(ctx, archived)
	if err != nil {
		return nil, err
	}
	return usecase.ListView(ctx, uc.populator, list, usecase.StockRefs, q.Populate)
}

func (uc *StockUseCase) GetView(ctx context.Context, id string, archived bool, q dto.ListQuery) (any, error) {
	get := uc.Get
	if archived {
		get = uc.GetArchived
	}
	s, err := get(ctx, id)
	if err != nil {
		return nil, err
	}
	return usecase.DocView(ctx, uc.populator, s, usecase.StockRefs, q.Populate)
}

// Create registra una bodega vacía.
func (uc *StockUseCase) Create(ctx context.Context, userID string, in dto.StockRequest) (*entity.Stock, error) {
	if err := validateStock(in); err != nil {
		return nil, err
	}
	now := time.Now()
	s := &entity.Stock{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Address:   strings.TrimSpace(in.Address),
		Products:  []entity.StockItem{},
		Defects:   []entity.StockItem{},
		WriteOffs: []entity.WriteOff{},
		Logs:      []entity.LogEntry{audit.Created(userID, now)},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Update cambia nombre y dirección bajo bloqueo para no pisar los libros.
func (uc *StockUseCase) Update(ctx context.Context, id, userID string, in dto.StockRequest) (*entity.Stock, error) {
	if err := validateStock(in); err != nil {
		return nil, err
	}
	var s *entity.Stock
	err := uc.tx.Run(ctx, func(repos TxRepos) error {
		var err error
		s, err = lockActiveStock(ctx, repos.Stocks, id)
		if err != nil {
			return err
		}
		before := *s
		s.Name = strings.TrimSpace(in.Name)
		s.Address = strings.TrimSpace(in.Address)
		if err := usecase.RecordDiff(s, &before, s, userID, &s.UpdatedAt); err != nil {
			return err
		}
		return repos.Stocks.Update(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *StockUseCase) Archive(ctx context.Context, id, userID string) (*dto.MessageResponse, error) {
	return uc.toggle(ctx, id, userID, true)
}

func (uc *StockUseCase) Unarchive(ctx context.Context, id, userID string) (*dto.MessageResponse, error) {
	return uc.toggle(ctx, id, userID, false)
}

func (uc *StockUseCase) toggle(ctx context.Context, id, userID string, archived bool) (*dto.MessageResponse, error) {
	var res *dto.MessageResponse
	err := uc.tx.Run(ctx, func(repos TxRepos) error {
		if _, err := repos.Stocks.GetForUpdate(ctx, id); err != nil {
			return err
		}
		lc := usecase.NewLifecycle[entity.Stock](repos.Stocks, stockMessages)
		var err error
		if archived {
			res, err = lc.Archive(ctx, id, userID)
		} else {
			res, err = lc.Unarchive(ctx, id, userID)
		}
		return err
	})
	return res, err
}

// Delete elimina la bodega solo si ya no tiene existencias ni defectuosos.
func (uc *StockUseCase) Delete(ctx context.Context, id string) (*dto.MessageResponse, error) {
	err := uc.tx.Run(ctx, func(repos TxRepos) error {
		s, err := repos.Stocks.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.NotFound(msgStockNotFound)
		}
		for _, items := range [][]entity.StockItem{s.Products, s.Defects} {
			for _, it := range items {
				if it.Amount > 0 {
					return domain.Forbidden("Нельзя удалить склад, на котором есть товары.")
				}
			}
		}
		return repos.Stocks.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: stockMessages.Deleted}, nil
}

// WriteOff da de baja mercancía de la bodega. Cada línea descuenta de
// existencias o, con Defect, de defectuosos; ninguna cantidad puede quedar negativa.
func (uc *StockUseCase) WriteOff(ctx context.Context, id, userID string, in dto.WriteOffRequest) (*entity.Stock, error) {
	if len(in.Lines) == 0 {
		return nil, domain.Invalid("Заполните список товаров для списания.")
	}
	var onHand, defect []ledger.Line
	for _, l := range in.Lines {
		if l.Product == "" {
			return nil, domain.Invalid("Укажите товар.")
		}
		if l.Amount <= 0 {
			return nil, domain.Invalid("Количество товара должно быть больше нуля.")
		}
		line := ledger.Line{Product: l.Product, Amount: l.Amount}
		if l.Defect {
			defect = append(defect, line)
		} else {
			onHand = append(onHand, line)
		}
	}

	var s *entity.Stock
	err := uc.tx.Run(ctx, func(repos TxRepos) error {
		sess := newStockSession(repos.Stocks)
		if err := sess.lock(ctx, id); err != nil {
			return err
		}
		if err := sess.requireActive(id); err != nil {
			return err
		}
		l := sess.ledger(id)
		if err := l.Decrease(onHand); err != nil {
			return err
		}
		if err := l.DecreaseDefect(defect); err != nil {
			return err
		}

		now := time.Now()
		s = sess.stock(id)
		for _, wl := range in.Lines {
			s.WriteOffs = append(s.WriteOffs, entity.WriteOff{
				Client:  in.Client,
				Product: wl.Product,
				Amount:  wl.Amount,
				Reason:  in.Reason,
				Date:    now,
			})
		}
		s.AppendLog(audit.Entry(userID, fmt.Sprintf("Списание: %d поз.", len(in.Lines)), now))
		return sess.commit(ctx, now)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Str("stock", id).Int("lines", len(in.Lines)).Msg("списание товара")
	return s, nil
}

// lockActiveStock bloquea la bodega y exige que no esté archivada.
func lockActiveStock(ctx context.Context, stocks repository.StockRepository, id string) (*entity.Stock, error) {
	s, err := stocks.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NotFound(msgStockNotFound)
	}
	if s.IsArchived {
		return nil, domain.Forbidden(msgStockArchived)
	}
	return s, nil
}

func validateStock(in dto.StockRequest) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return domain.Invalid("Укажите название склада.")
	case strings.TrimSpace(in.Address) == "":
		return domain.Invalid("Укажите адрес склада.")
	}
	return nil
}
