package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/audit"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/domain/workflow"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

var orderMessages = usecase.Messages{
	NotFound:        "Заказ не найден.",
	InArchive:       "Заказ в архиве.",
	NotInArchive:    "Этот заказ не в архиве.",
	AlreadyArchived: "Заказ уже в архиве.",
	Archived:        "Заказ перемещен в архив.",
	Unarchived:      "Заказ восстановлен из архива.",
	Deleted:         "Заказ успешно удалён.",
}

// OrderDeps dependencias de OrderUseCase.
type OrderDeps struct {
	Tx        TxRunner
	Orders    repository.OrderRepository
	Clients   repository.ClientRepository
	Machine   workflow.Machine
	Populator *usecase.Populator
	Log       *logger.Logger
}

// OrderUseCase registra pedidos salientes. Los productos del pedido salen de
// la bodega desde la creación; los defectos devueltos entran al libro de
// defectuosos cuando el pedido se entrega.
type OrderUseCase struct {
	usecase.Lifecycle[entity.Order, *entity.Order]
	deps OrderDeps
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(deps OrderDeps) *OrderUseCase {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	return &OrderUseCase{
		Lifecycle: usecase.NewLifecycle[entity.Order](deps.Orders, orderMessages),
		deps:      deps,
	}
}

// ListView lista pedidos; q.Client filtra por cliente.
func (uc *OrderUseCase) ListView(ctx context.Context, archived bool, q dto.ListQuery) (any, error) {
	var (
		list []*entity.Order
		err  error
	)
	if q.Client != "" {
		list, err = uc.deps.Orders.ListByClient(ctx, q.Client, archived)
	} else {
		list, err = uc.List(ctx, archived)
	}
	if err != nil {
		return nil, err
	}
	return usecase.ListView(ctx, uc.deps.Populator, list, usecase.OrderRefs, q.Populate)
}

func (uc *OrderUseCase) GetView(ctx context.Context, id string, archived bool, q dto.ListQuery) (any, error) {
	get := uc.Get
	if archived {
		get = uc.GetArchived
	}
	o, err := get(ctx, id)
	if err != nil {
		return nil, err
	}
	return usecase.DocView(ctx, uc.deps.Populator, o, usecase.OrderRefs, q.Populate)
}

// Create registra el pedido ORD-n y descuenta sus productos de la bodega.
// Falla con ErrInsufficientStock si no alcanzan las existencias.
func (uc *OrderUseCase) Create(ctx context.Context, userID string, in dto.OrderRequest, files []entity.Attachment) (*entity.Order, error) {
	now := time.Now()
	o := &entity.Order{
		ID:        uuid.New().String(),
		SentAt:    now,
		Price:     decimal.Zero,
		Status:    uc.deps.Machine.Initial(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyOrder(o, in)
	o.Documents = appendDocuments(nil, in.Documents, files)
	markDelivered(o, now)
	if err := uc.checkRefs(ctx, o); err != nil {
		return nil, err
	}
	if err := workflow.ValidateOrderCreate(uc.deps.Machine, o); err != nil {
		return nil, err
	}
	o.Logs = []entity.LogEntry{audit.Created(userID, now)}

	err := uc.deps.Tx.Run(ctx, func(repos TxRepos) error {
		n, err := repos.Counters.Next(ctx, "order")
		if err != nil {
			return err
		}
		o.OrderNumber = fmt.Sprintf("ORD-%d", n)

		sess := newStockSession(repos.Stocks)
		if err := sess.lock(ctx, o.Stock); err != nil {
			return err
		}
		if err := sess.requireActive(o.Stock); err != nil {
			return err
		}
		sess.reconcile("", nil, o.Stock, workflow.OrderEffect(o))
		if err := sess.commit(ctx, now); err != nil {
			return err
		}
		return repos.Orders.Create(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	uc.deps.Log.Debug().Str("order", o.OrderNumber).Str("stock", o.Stock).Str("status", o.Status).Msg("заказ создан")
	return o, nil
}

// Update deshace el efecto guardado del pedido y aplica el nuevo en una sola transacción.
func (uc *OrderUseCase) Update(ctx context.Context, id, userID string, in dto.OrderRequest, files []entity.Attachment) (*entity.Order, error) {
	var o *entity.Order
	err := uc.deps.Tx.Run(ctx, func(repos TxRepos) error {
		var err error
		o, err = repos.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.NotFound(orderMessages.NotFound)
		}
		if o.IsArchived {
			return domain.Forbidden(orderMessages.InArchive)
		}
		before := *o
		now := time.Now()
		applyOrder(o, in)
		o.Documents = appendDocuments(o.Documents, in.Documents, files)
		markDelivered(o, now)
		if err := workflow.ValidateOrderUpdate(uc.deps.Machine, before.Status, o); err != nil {
			return err
		}
		if err := uc.checkRefs(ctx, o); err != nil {
			return err
		}

		sess := newStockSession(repos.Stocks)
		if err := sess.lock(ctx, before.Stock, o.Stock); err != nil {
			return err
		}
		if o.Stock != before.Stock {
			if err := sess.requireActive(o.Stock); err != nil {
				return err
			}
		}
		sess.reconcile(before.Stock, workflow.OrderEffect(&before), o.Stock, workflow.OrderEffect(o))
		if err := sess.commit(ctx, now); err != nil {
			return err
		}
		if err := usecase.RecordDiff(o, &before, o, userID, &o.UpdatedAt); err != nil {
			return err
		}
		return repos.Orders.Update(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	uc.deps.Log.Debug().Str("order", o.OrderNumber).Str("stock", o.Stock).Str("status", o.Status).Msg("заказ обновлён")
	return o, nil
}

func (uc *OrderUseCase) Archive(ctx context.Context, id, userID string) (*dto.MessageResponse, error) {
	return uc.toggle(ctx, id, userID, true)
}

func (uc *OrderUseCase) Unarchive(ctx context.Context, id, userID string) (*dto.MessageResponse, error) {
	return uc.toggle(ctx, id, userID, false)
}

func (uc *OrderUseCase) toggle(ctx context.Context, id, userID string, archived bool) (*dto.MessageResponse, error) {
	var res *dto.MessageResponse
	err := uc.deps.Tx.Run(ctx, func(repos TxRepos) error {
		if _, err := repos.Orders.GetForUpdate(ctx, id); err != nil {
			return err
		}
		lc := usecase.NewLifecycle[entity.Order](repos.Orders, orderMessages)
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

// Delete devuelve los productos a la bodega (y retira los defectos devueltos) y elimina el pedido.
func (uc *OrderUseCase) Delete(ctx context.Context, id string) (*dto.MessageResponse, error) {
	err := uc.deps.Tx.Run(ctx, func(repos TxRepos) error {
		o, err := repos.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.NotFound(orderMessages.NotFound)
		}
		sess := newStockSession(repos.Stocks)
		if err := sess.lock(ctx, o.Stock); err != nil {
			return err
		}
		sess.reconcile(o.Stock, workflow.OrderEffect(o), "", nil)
		if err := sess.commit(ctx, time.Now()); err != nil {
			return err
		}
		return repos.Orders.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: orderMessages.Deleted}, nil
}

func (uc *OrderUseCase) checkRefs(ctx context.Context, o *entity.Order) error {
	switch {
	case o.Client == "":
		return domain.Invalid("Укажите клиента.")
	case o.Stock == "":
		return domain.Invalid("Укажите склад.")
	}
	client, err := uc.deps.Clients.GetByID(ctx, o.Client)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.NotFound("Клиент не найден.")
	}
	return nil
}

func applyOrder(o *entity.Order, in dto.OrderRequest) {
	if in.Client != nil {
		o.Client = strings.TrimSpace(*in.Client)
	}
	if in.Stock != nil {
		o.Stock = strings.TrimSpace(*in.Stock)
	}
	if in.Products != nil {
		o.Products = in.Products
	}
	if in.Price != nil {
		o.Price = *in.Price
	}
	if in.SentAt != nil {
		o.SentAt = *in.SentAt
	}
	if in.DeliveredAt != nil {
		o.DeliveredAt = in.DeliveredAt
	}
	if in.Comment != nil {
		o.Comment = *in.Comment
	}
	if in.Status != nil && *in.Status != "" {
		o.Status = *in.Status
	}
	if in.Defects != nil {
		o.Defects = in.Defects
	}
	if in.Services != nil {
		o.Services = in.Services
	}
}

// markDelivered sella la fecha de entrega si el pedido llega a «доставлен» sin ella.
func markDelivered(o *entity.Order, now time.Time) {
	if o.Status == entity.OrderDelivered && o.DeliveredAt == nil {
		at := now
		o.DeliveredAt = &at
	}
}
