package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/audit"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var taskMessages = Messages{
	NotFound:        "Задача не найдена.",
	InArchive:       "Задача в архиве.",
	NotInArchive:    "Эта задача не в архиве.",
	AlreadyArchived: "Задача уже в архиве.",
	Archived:        "Задача перемещена в архив.",
	Unarchived:      "Задача восстановлена из архива.",
	Deleted:         "Задача успешно удалена.",
}

// TaskRepos puertos que usa TaskUseCase.
type TaskRepos struct {
	Tasks    repository.TaskRepository
	Users    repository.UserRepository
	Arrivals repository.ArrivalRepository
	Orders   repository.OrderRepository
	Counters repository.CounterRepository
}

// TaskUseCase casos de uso del tablero de tareas.
type TaskUseCase struct {
	Lifecycle[entity.Task, *entity.Task]
	repos    TaskRepos
	populate *Populator
}

// NewTaskUseCase construye el caso de uso.
func NewTaskUseCase(repos TaskRepos, populate *Populator) *TaskUseCase {
	return &TaskUseCase{
		Lifecycle: NewLifecycle[entity.Task](repos.Tasks, taskMessages),
		repos:     repos,
		populate:  populate,
	}
}

// ListView lista tareas; q.User filtra por responsable.
func (uc *TaskUseCase) ListView(ctx context.Context, archived bool, q dto.ListQuery) (any, error) {
	var (
		list []*entity.Task
		err  error
	)
	if q.User != "" {
		list, err = uc.repos.Tasks.ListByUser(ctx, q.User, archived)
	} else {
		list, err = uc.List(ctx, archived)
	}
	if err != nil {
		return nil, err
	}
	return ListView(ctx, uc.populate, list, TaskRefs, q.Populate)
}

func (uc *TaskUseCase) GetView(ctx context.Context, id string, archived bool, q dto.ListQuery) (any, error) {
	get := uc.Get
	if archived {
		get = uc.GetArchived
	}
	t, err := get(ctx, id)
	if err != nil {
		return nil, err
	}
	return DocView(ctx, uc.populate, t, TaskRefs, q.Populate)
}

// Create crea una tarea con número TSK-n. Sin estado empieza en «к выполнению».
func (uc *TaskUseCase) Create(ctx context.Context, userID string, in dto.TaskRequest) (*entity.Task, error) {
	now := time.Now()
	t := &entity.Task{
		ID:        uuid.New().String(),
		Type:      entity.TaskTypeOther,
		CreatedAt: now,
		UpdatedAt: now,
	}
	status := entity.TaskToDo
	if in.Status != nil {
		status = *in.Status
	}
	applyTask(t, in)
	if err := uc.validate(ctx, t, status); err != nil {
		return nil, err
	}
	t.MarkStatus(status, now)

	n, err := uc.repos.Counters.Next(ctx, "task")
	if err != nil {
		return nil, err
	}
	t.TaskNumber = fmt.Sprintf("TSK-%d", n)
	t.Logs = []entity.LogEntry{audit.Created(userID, now)}
	if err := uc.repos.Tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Update aplica una actualización parcial; un cambio de estado sella su fecha.
func (uc *TaskUseCase) Update(ctx context.Context, id, userID string, in dto.TaskRequest) (*entity.Task, error) {
	t, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *t
	status := t.Status
	if in.Status != nil {
		status = *in.Status
	}
	applyTask(t, in)
	if err := uc.validate(ctx, t, status); err != nil {
		return nil, err
	}
	return uc.save(ctx, t, &before, status, userID)
}

// UpdateStatus mueve la tarea de columna en el tablero.
func (uc *TaskUseCase) UpdateStatus(ctx context.Context, id, userID, status string) (*entity.Task, error) {
	if !entity.IsValidTaskStatus(status) {
		return nil, domain.Invalidf("Недопустимый статус: %q.", status)
	}
	t, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *t
	return uc.save(ctx, t, &before, status, userID)
}

func (uc *TaskUseCase) save(ctx context.Context, t, before *entity.Task, status, userID string) (*entity.Task, error) {
	if status != t.Status {
		t.MarkStatus(status, time.Now())
	}
	if err := RecordDiff(t, before, t, userID, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if err := uc.repos.Tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func applyTask(t *entity.Task, in dto.TaskRequest) {
	if in.User != nil {
		t.User = strings.TrimSpace(*in.User)
	}
	if in.Title != nil {
		t.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Type != nil && *in.Type != "" {
		t.Type = *in.Type
	}
	if in.AssociatedArrival != nil {
		t.AssociatedArrival = optional(*in.AssociatedArrival)
	}
	if in.AssociatedOrder != nil {
		t.AssociatedOrder = optional(*in.AssociatedOrder)
	}
}

// validate comprueba responsable, estado y que la asociación concuerde con el tipo.
func (uc *TaskUseCase) validate(ctx context.Context, t *entity.Task, status string) error {
	switch {
	case t.User == "":
		return domain.Invalid("Укажите исполнителя задачи.")
	case t.Title == "":
		return domain.Invalid("Укажите заголовок задачи.")
	case !entity.IsValidTaskStatus(status):
		return domain.Invalidf("Недопустимый статус: %q.", status)
	case !entity.IsValidTaskType(t.Type):
		return domain.Invalidf("Недопустимый тип задачи: %q.", t.Type)
	}
	u, err := uc.repos.Users.GetByID(ctx, t.User)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.NotFound(userMessages.NotFound)
	}

	switch t.Type {
	case entity.TaskTypeArrival:
		if t.AssociatedArrival == nil {
			return domain.Invalid("Укажите поставку для задачи.")
		}
		if t.AssociatedOrder != nil {
			return domain.Invalid("Задача по поставке не может быть связана с заказом.")
		}
		a, err := uc.repos.Arrivals.GetByID(ctx, *t.AssociatedArrival)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.NotFound("Поставка не найдена.")
		}
	case entity.TaskTypeOrder:
		if t.AssociatedOrder == nil {
			return domain.Invalid("Укажите заказ для задачи.")
		}
		if t.AssociatedArrival != nil {
			return domain.Invalid("Задача по заказу не может быть связана с поставкой.")
		}
		o, err := uc.repos.Orders.GetByID(ctx, *t.AssociatedOrder)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.NotFound("Заказ не найден.")
		}
	default:
		if t.AssociatedArrival != nil || t.AssociatedOrder != nil {
			return domain.Invalid("Задача типа «другое» не может быть связана с поставкой или заказом.")
		}
	}
	return nil
}

// optional convierte "" en nil.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
