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

var arrivalMessages = usecase.Messages{
	NotFound:        "Поставка не найдена.",
	InArchive:       "Поставка в архиве.",
	NotInArchive:    "Эта поставка не в архиве.",
	AlreadyArchived: "Поставка уже в архиве.",
	Archived:        "Поставка перемещена в архив.",
	Unarchived:      "Поставка восстановлена из архива.",
	Deleted:         "Поставка успешно удалена.",
}

// ArrivalDeps dependencias de ArrivalUseCase.
type ArrivalDeps struct {
	Tx             TxRunner
	Arrivals       repository.ArrivalRepository
	Clients        repository.ClientRepository
	Counterparties repository.CounterpartyRepository
	Machine        workflow.Machine
	Populator      *usecase.Populator
	Log            *logger.Logger
}

// ArrivalUseCase registra entregas entrantes y mantiene las existencias de la
// bodega en línea con el estado de cada entrega.
type ArrivalUseCase struct {
	usecase.Lifecycle[entity.Arrival, *entity.Arrival]
	deps ArrivalDeps
}

// NewArrivalUseCase construye el caso de uso.
func NewArrivalUseCase(deps ArrivalDeps) *ArrivalUseCase {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	return &ArrivalUseCase{
		Lifecycle: usecase.NewLifecycle[entity.Arrival](deps.Arrivals, arrivalMessages),
		deps:      deps,
	}
}

// ListView lista entregas; q.Client filtra por cliente.
func (uc *ArrivalUseCase) ListView(ctx context.Context, archived bool, q dto.ListQuery) (any, error) {
	var (
		list []*entity.Arrival
		err  error
	)
	if q.Client != "" {
		list, err = uc.deps.Arrivals.ListByClient(ctx, q.Client, archived)
	} else {
		list, err = uc.List(ctx, archived)
	}
	if err != nil {
		return nil, err
	}
	return usecase.ListView(ctx, uc.deps.Populator, list, usecase.ArrivalRefs, q.Populate)
}

func (uc *ArrivalUseCase) GetView(ctx context.Context, id string, archived bool, q dto.ListQuery) (any, error) {
	get := uc.Get
	if archived {
		get = uc.GetArchived
	}
	a, err := get(ctx, id)
	if err != nil {
		return nil, err
	}
	return usecase.DocView(ctx, uc.deps.Populator, a, usecase.ArrivalRefs, q.Populate)
}

// Create registra la entrega con número ARL-n y, si ya llega recibida u
// ordenada, suma los productos a la bodega en la misma transacción.
func (uc *ArrivalUseCase) Create(ctx context.Context, userID string, in dto.ArrivalRequest, files []entity.Attachment) (*entity.Arrival, error) {
	now := time.Now()
	a := &entity.Arrival{
		ID:            uuid.New().String(),
		ArrivalDate:   now,
		ArrivalPrice:  decimal.Zero,
		ArrivalStatus: uc.deps.Machine.Initial(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	applyArrival(a, in)
	a.Documents = appendDocuments(nil, in.Documents, files)
	if err := uc.checkRefs(ctx, a); err != nil {
		return nil, err
	}
	if err := workflow.ValidateArrivalCreate(uc.deps.Machine, a); err != nil {
		return nil, err
	}
	a.Logs = []entity.LogEntry{audit.Created(userID, now)}

	err := uc.deps.Tx.Run(ctx, func(repos TxRepos) error {
		n, err := repos.Counters.Next(ctx, "arrival")
		if err != nil {
			return err
		}
		a.ArrivalNumber = fmt.Sprintf("ARL-%d", n)

		sess := newStockSession(repos.Stocks)
		if err := sess.lock(ctx, a.Stock); err != nil {
			return err
		}
		if err := sess.requireActive(a.Stock); err != nil {
			return err
		}
		sess.reconcile("", nil, a.Stock, workflow.ArrivalEffect(a))
		if err := sess.commit(ctx, now); err != nil {
			return err
		}
		return repos.Arrivals.Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	uc.deps.Log.Debug().Str("arrival", a.ArrivalNumber).Str("stock", a.Stock).Str("status", a.ArrivalStatus).Msg("поставка создана")
	return a, nil
}

// Update aplica los cambios: deshace el efecto del estado guardado y aplica el
// del nuevo, validando la transición y que ninguna existencia quede negativa.
func (uc *ArrivalUseCase) Update(ctx context.Context, id, userID string, in dto.ArrivalRequest, files []entity.Attachment) (*entity.Arrival, error) {
	var a *entity.Arrival
	err := uc.deps.Tx.Run(ctx, func(repos TxRepos) error {
		var err error
		a, err = repos.Arrivals.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.NotFound(arrivalMessages.NotFound)
		}
		if a.IsArchived {
			return domain.Forbidden(arrivalMessages.InArchive)
		}
		before := *a
		applyArrival(a, in)
		a.Documents = appendDocuments(a.Documents, in.Documents, files)
		if err := workflow.ValidateArrivalUpdate(uc.deps.Machine, before.ArrivalStatus, a); err != nil {
			return err
		}
		if err := uc.checkRefs(ctx, a); err != nil {
			return err
		}

		sess := newStockSession(repos.Stocks)
		if err := sess.lock(ctx, before.Stock, a.Stock); err != nil {
			return err
		}
		if a.Stock != before.Stock {
			if err := sess.requireActive(a.Stock); err != nil {
				return err
			}
		}
		now := time.Now()
		sess.reconcile(before.Stock, workflow.ArrivalEffect(&before), a.Stock, workflow.ArrivalEffect(a))
		if err := sess.commit(ctx, now); err != nil {
			return err
		}
		if err := usecase.RecordDiff(a, &before, a, userID, &a.UpdatedAt); err != nil {
			return err
		}
		return repos.Arrivals.Update(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	uc.deps.Log.Debug().Str("arrival", a.ArrivalNumber).Str("stock", a.Stock).Str("status", a.ArrivalStatus).Msg("поставка обновлена")
	return a, nil
}

// Archive y Unarchive solo cambian la bandera; las existencias no se tocan.
func (uc *ArrivalUseCase) Archive(ctx context.Context, id, userID string) (*dto.MessageResponse, error) {
	return uc.toggle(ctx, id, userID, true)
}

func (uc *ArrivalUseCase) Unarchive(ctx context.Context, id, userID string) (*dto.MessageResponse, error) {
	return uc.toggle(ctx, id, userID, false)
}

func (uc *ArrivalUseCase) toggle(ctx context.Context, id, userID string, archived bool) (*dto.MessageResponse, error) {
	var res *dto.MessageResponse
	err := uc.deps.Tx.Run(ctx, func(repos TxRepos) error {
		if _, err := repos.Arrivals.GetForUpdate(ctx, id); err != nil {
			return err
		}
		lc := usecase.NewLifecycle[entity.Arrival](repos.Arrivals, arrivalMessages)
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

// Delete revierte el efecto de la entrega sobre la bodega y la elimina.
func (uc *ArrivalUseCase) Delete(ctx context.Context, id string) (*dto.MessageResponse, error) {
	err := uc.deps.Tx.Run(ctx, func(repos TxRepos) error {
		a, err := repos.Arrivals.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.NotFound(arrivalMessages.NotFound)
		}
		sess := newStockSession(repos.Stocks)
		if err := sess.lock(ctx, a.Stock); err != nil {
			return err
		}
		sess.reconcile(a.Stock, workflow.ArrivalEffect(a), "", nil)
		if err := sess.commit(ctx, time.Now()); err != nil {
			return err
		}
		return repos.Arrivals.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: arrivalMessages.Deleted}, nil
}

func (uc *ArrivalUseCase) checkRefs(ctx context.Context, a *entity.Arrival) error {
	switch {
	case a.Client == "":
		return domain.Invalid("Укажите клиента.")
	case a.Stock == "":
		return domain.Invalid("Укажите склад.")
	}
	client, err := uc.deps.Clients.GetByID(ctx, a.Client)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.NotFound("Клиент не найден.")
	}
	if a.ShippingAgent != nil {
		agent, err := uc.deps.Counterparties.GetByID(ctx, *a.ShippingAgent)
		if err != nil {
			return err
		}
		if agent == nil {
			return domain.NotFound("Контрагент не найден.")
		}
	}
	return nil
}

// applyArrival copia los campos presentes en in.
func applyArrival(a *entity.Arrival, in dto.ArrivalRequest) {
	if in.Client != nil {
		a.Client = strings.TrimSpace(*in.Client)
	}
	if in.Stock != nil {
		a.Stock = strings.TrimSpace(*in.Stock)
	}
	if in.ShippingAgent != nil {
		a.ShippingAgent = nil
		if s := strings.TrimSpace(*in.ShippingAgent); s != "" {
			a.ShippingAgent = &s
		}
	}
	if in.PickupLocation != nil {
		a.PickupLocation = *in.PickupLocation
	}
	if in.ArrivalDate != nil {
		a.ArrivalDate = *in.ArrivalDate
	}
	if in.ArrivalPrice != nil {
		a.ArrivalPrice = *in.ArrivalPrice
	}
	if in.SentAmount != nil {
		a.SentAmount = *in.SentAmount
	}
	if in.Products != nil {
		a.Products = in.Products
	}
	if in.ArrivalStatus != nil && *in.ArrivalStatus != "" {
		a.ArrivalStatus = *in.ArrivalStatus
	}
	if in.ReceivedAmount != nil {
		a.ReceivedAmount = in.ReceivedAmount
	}
	if in.Defects != nil {
		a.Defects = in.Defects
	}
	if in.Services != nil {
		a.Services = in.Services
	}
}

// appendDocuments agrega documentos nuevos sin reemplazar los existentes.
func appendDocuments(docs []entity.Attachment, extra ...[]entity.Attachment) []entity.Attachment {
	out := make([]entity.Attachment, 0, len(docs))
	out = append(out, docs...)
	for _, e := range extra {
		for _, d := range e {
			if d.Document != "" {
				out = append(out, d)
			}
		}
	}
	return out
}
