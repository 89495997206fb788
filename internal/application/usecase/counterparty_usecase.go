package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/audit"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var counterpartyMessages = Messages{
	NotFound:        "Контрагент не найден.",
	InArchive:       "Контрагент в архиве.",
	NotInArchive:    "Этот контрагент не в архиве.",
	AlreadyArchived: "Контрагент уже в архиве.",
	Archived:        "Контрагент перемещен в архив.",
	Unarchived:      "Контрагент восстановлен из архива.",
	Deleted:         "Контрагент успешно удалён.",
}

// CounterpartyUseCase casos de uso de contrapartes (transportistas).
type CounterpartyUseCase struct {
	Lifecycle[entity.Counterparty, *entity.Counterparty]
	repo     repository.CounterpartyRepository
	populate *Populator
}

// NewCounterpartyUseCase construye el caso de uso.
func NewCounterpartyUseCase(repo repository.CounterpartyRepository, populate *Populator) *CounterpartyUseCase {
	return &CounterpartyUseCase{
		Lifecycle: NewLifecycle[entity.Counterparty](repo, counterpartyMessages),
		repo:      repo,
		populate:  populate,
	}
}

func (uc *CounterpartyUseCase) ListView(ctx context.Context, archived bool, q dto.ListQuery) (any, error) {
	list, err := uc.List(ctx, archived)
	if err != nil {
		return nil, err
	}
	return ListView(ctx, uc.populate, list, LogRefs, q.Populate)
}

func (uc *CounterpartyUseCase) GetView(ctx context.Context, id string, archived bool, q dto.ListQuery) (any, error) {
	get := uc.Get
	if archived {
		get = uc.GetArchived
	}
	c, err := get(ctx, id)
	if err != nil {
		return nil, err
	}
	return DocView(ctx, uc.populate, c, LogRefs, q.Populate)
}

// Create registra una contraparte. El nombre es único.
func (uc *CounterpartyUseCase) Create(ctx context.Context, userID string, in dto.CounterpartyRequest) (*entity.Counterparty, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("Укажите имя контрагента.")
	}
	if err := uc.checkName(ctx, name, ""); err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Counterparty{
		ID:          uuid.New().String(),
		Name:        name,
		Address:     in.Address,
		PhoneNumber: in.PhoneNumber,
		Logs:        []entity.LogEntry{audit.Created(userID, now)},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update reemplaza los datos de la contraparte.
func (uc *CounterpartyUseCase) Update(ctx context.Context, id, userID string, in dto.CounterpartyRequest) (*entity.Counterparty, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("Укажите имя контрагента.")
	}
	c, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.checkName(ctx, name, id); err != nil {
		return nil, err
	}
	before := *c
	c.Name = name
	c.Address = in.Address
	c.PhoneNumber = in.PhoneNumber
	if err := RecordDiff(c, &before, c, userID, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *CounterpartyUseCase) checkName(ctx context.Context, name, selfID string) error {
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.Conflict("Контрагент с таким именем уже существует.")
	}
	return nil
}
