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

var clientMessages = Messages{
	NotFound:        "Клиент не найден.",
	InArchive:       "Клиент в архиве.",
	NotInArchive:    "Этот клиент не в архиве.",
	AlreadyArchived: "Клиент уже в архиве.",
	Archived:        "Клиент перемещен в архив.",
	Unarchived:      "Клиент восстановлен из архива.",
	Deleted:         "Клиент успешно удалён.",
}

// ClientUseCase casos de uso de clientes.
type ClientUseCase struct {
	Lifecycle[entity.Client, *entity.Client]
	repo     repository.ClientRepository
	populate *Populator
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, populate *Populator) *ClientUseCase {
	return &ClientUseCase{
		Lifecycle: NewLifecycle[entity.Client](repo, clientMessages),
		repo:      repo,
		populate:  populate,
	}
}

// ListView lista clientes activos o archivados.
func (uc *ClientUseCase) ListView(ctx context.Context, archived bool, q dto.ListQuery) (any, error) {
	list, err := uc.List(ctx, archived)
	if err != nil {
		return nil, err
	}
	return ListView(ctx, uc.populate, list, LogRefs, q.Populate)
}

// GetView obtiene un cliente; archived indica desde qué lado del archivo se consulta.
func (uc *ClientUseCase) GetView(ctx context.Context, id string, archived bool, q dto.ListQuery) (any, error) {
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

// Create registra un cliente nuevo.
func (uc *ClientUseCase) Create(ctx context.Context, userID string, in dto.ClientRequest) (*entity.Client, error) {
	if err := validateClient(in); err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Client{ID: uuid.New().String(), CreatedAt: now}
	applyClient(c, in)
	c.UpdatedAt = now
	c.Logs = []entity.LogEntry{audit.Created(userID, now)}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update reemplaza los datos del cliente y registra el diff.
func (uc *ClientUseCase) Update(ctx context.Context, id, userID string, in dto.ClientRequest) (*entity.Client, error) {
	if err := validateClient(in); err != nil {
		return nil, err
	}
	c, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *c
	applyClient(c, in)
	if err := RecordDiff(c, &before, c, userID, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func validateClient(in dto.ClientRequest) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return domain.Invalid("Укажите имя клиента.")
	case strings.TrimSpace(in.PhoneNumber) == "":
		return domain.Invalid("Укажите номер телефона клиента.")
	case strings.TrimSpace(in.Email) == "":
		return domain.Invalid("Укажите эл. почту клиента.")
	case strings.TrimSpace(in.INN) == "":
		return domain.Invalid("Укажите ИНН клиента.")
	}
	return nil
}

func applyClient(c *entity.Client, in dto.ClientRequest) {
	c.Name = strings.TrimSpace(in.Name)
	c.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	c.Email = strings.TrimSpace(in.Email)
	c.INN = strings.TrimSpace(in.INN)
	c.Address = in.Address
	c.BankingData = in.BankingData
	c.OGRN = in.OGRN
}
