package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/audit"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var serviceMessages = Messages{
	NotFound:        "Услуга не найдена.",
	InArchive:       "Услуга в архиве.",
	NotInArchive:    "Эта услуга не в архиве.",
	AlreadyArchived: "Услуга уже в архиве.",
	Archived:        "Услуга перемещена в архив.",
	Unarchived:      "Услуга восстановлена из архива.",
	Deleted:         "Услуга успешно удалена.",
}

var categoryMessages = Messages{
	NotFound:        "Категория услуг не найдена.",
	InArchive:       "Категория услуг в архиве.",
	NotInArchive:    "Эта категория услуг не в архиве.",
	AlreadyArchived: "Категория услуг уже в архиве.",
	Archived:        "Категория услуг перемещена в архив.",
	Unarchived:      "Категория услуг восстановлена из архива.",
	Deleted:         "Категория услуг успешно удалена.",
}

// ServiceUseCase casos de uso del catálogo de servicios.
type ServiceUseCase struct {
	Lifecycle[entity.Service, *entity.Service]
	repo       repository.ServiceRepository
	categories repository.ServiceCategoryRepository
	populate   *Populator
}

// NewServiceUseCase construye el caso de uso.
func NewServiceUseCase(repo repository.ServiceRepository, categories repository.ServiceCategoryRepository, populate *Populator) *ServiceUseCase {
	return &ServiceUseCase{
		Lifecycle:  NewLifecycle[entity.Service](repo, serviceMessages),
		repo:       repo,
		categories: categories,
		populate:   populate,
	}
}

func (uc *ServiceUseCase) ListView(ctx context.Context, archived bool, q dto.ListQuery) (any, error) {
	list, err := uc.List(ctx, archived)
	if err != nil {
		return nil, err
	}
	return ListView(ctx, uc.populate, list, ServiceRefs, q.Populate)
}

func (uc *ServiceUseCase) GetView(ctx context.Context, id string, archived bool, q dto.ListQuery) (any, error) {
	get := uc.Get
	if archived {
		get = uc.GetArchived
	}
	s, err := get(ctx, id)
	if err != nil {
		return nil, err
	}
	return DocView(ctx, uc.populate, s, ServiceRefs, q.Populate)
}

// Create agrega un servicio al catálogo. Sin tipo se asume interno.
func (uc *ServiceUseCase) Create(ctx context.Context, userID string, in dto.ServiceRequest) (*entity.Service, error) {
	in, err := uc.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	s := &entity.Service{
		ID:              uuid.New().String(),
		Name:            in.Name,
		ServiceCategory: in.ServiceCategory,
		Price:           in.Price,
		Description:     in.Description,
		Type:            in.Type,
		Logs:            []entity.LogEntry{audit.Created(userID, now)},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Update reemplaza los datos del servicio.
func (uc *ServiceUseCase) Update(ctx context.Context, id, userID string, in dto.ServiceRequest) (*entity.Service, error) {
	s, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	in, err = uc.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	before := *s
	s.Name = in.Name
	s.ServiceCategory = in.ServiceCategory
	s.Price = in.Price
	s.Description = in.Description
	s.Type = in.Type
	if err := RecordDiff(s, &before, s, userID, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *ServiceUseCase) validate(ctx context.Context, in dto.ServiceRequest) (dto.ServiceRequest, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Type == "" {
		in.Type = entity.ServiceInternal
	}
	switch {
	case in.Name == "":
		return in, domain.Invalid("Укажите название услуги.")
	case in.ServiceCategory == "":
		return in, domain.Invalid("Укажите категорию услуги.")
	case in.Price.LessThan(decimal.Zero):
		return in, domain.Invalid("Цена услуги не может быть отрицательной.")
	case in.Type != entity.ServiceInternal && in.Type != entity.ServiceExternal:
		return in, domain.Invalidf("Недопустимый тип услуги: %q.", in.Type)
	}
	cat, err := uc.categories.GetByID(ctx, in.ServiceCategory)
	if err != nil {
		return in, err
	}
	if cat == nil {
		return in, domain.NotFound(categoryMessages.NotFound)
	}
	return in, nil
}

// ServiceCategoryUseCase casos de uso de categorías de servicios. El nombre es único.
type ServiceCategoryUseCase struct {
	Lifecycle[entity.ServiceCategory, *entity.ServiceCategory]
	repo repository.ServiceCategoryRepository
}

// NewServiceCategoryUseCase construye el caso de uso.
func NewServiceCategoryUseCase(repo repository.ServiceCategoryRepository) *ServiceCategoryUseCase {
	return &ServiceCategoryUseCase{
		Lifecycle: NewLifecycle[entity.ServiceCategory](repo, categoryMessages),
		repo:      repo,
	}
}

func (uc *ServiceCategoryUseCase) ListView(ctx context.Context, archived bool, _ dto.ListQuery) (any, error) {
	list, err := uc.List(ctx, archived)
	if err != nil {
		return nil, err
	}
	return ListView(ctx, nil, list, nil, false)
}

func (uc *ServiceCategoryUseCase) GetView(ctx context.Context, id string, archived bool, _ dto.ListQuery) (any, error) {
	if archived {
		return uc.GetArchived(ctx, id)
	}
	return uc.Get(ctx, id)
}

func (uc *ServiceCategoryUseCase) Create(ctx context.Context, _ string, in dto.ServiceCategoryRequest) (*entity.ServiceCategory, error) {
	name := strings.TrimSpace(in.Name)
	if err := uc.checkName(ctx, name, ""); err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.ServiceCategory{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *ServiceCategoryUseCase) Update(ctx context.Context, id, _ string, in dto.ServiceCategoryRequest) (*entity.ServiceCategory, error) {
	name := strings.TrimSpace(in.Name)
	c, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.checkName(ctx, name, id); err != nil {
		return nil, err
	}
	if c.Name != name {
		c.Name = name
		c.UpdatedAt = time.Now()
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *ServiceCategoryUseCase) checkName(ctx context.Context, name, selfID string) error {
	if name == "" {
		return domain.Invalid("Укажите название категории.")
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.Conflict("Категория с таким названием уже существует.")
	}
	return nil
}
