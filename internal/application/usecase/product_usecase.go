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

var productMessages = Messages{
	NotFound:        "Товар не найден.",
	InArchive:       "Товар в архиве.",
	NotInArchive:    "Этот товар не в архиве.",
	AlreadyArchived: "Товар уже в архиве.",
	Archived:        "Товар перемещен в архив.",
	Unarchived:      "Товар восстановлен из архива.",
	Deleted:         "Товар успешно удалён.",
}

// ProductUseCase casos de uso CRUD para productos. Las existencias viven en las bodegas.
type ProductUseCase struct {
	Lifecycle[entity.Product, *entity.Product]
	repo     repository.ProductRepository
	clients  repository.ClientRepository
	populate *Populator
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, clients repository.ClientRepository, populate *Populator) *ProductUseCase {
	return &ProductUseCase{
		Lifecycle: NewLifecycle[entity.Product](repo, productMessages),
		repo:      repo,
		clients:   clients,
		populate:  populate,
	}
}

// ListView lista productos; q.Client filtra por cliente.
func (uc *ProductUseCase) ListView(ctx context.Context, archived bool, q dto.ListQuery) (any, error) {
	var (
		list []*entity.Product
		err  error
	)
	if q.Client != "" {
		list, err = uc.repo.ListByClient(ctx, q.Client, archived)
	} else {
		list, err = uc.List(ctx, archived)
	}
	if err != nil {
		return nil, err
	}
	return ListView(ctx, uc.populate, list, ProductRefs, q.Populate)
}

func (uc *ProductUseCase) GetView(ctx context.Context, id string, archived bool, q dto.ListQuery) (any, error) {
	get := uc.Get
	if archived {
		get = uc.GetArchived
	}
	p, err := get(ctx, id)
	if err != nil {
		return nil, err
	}
	return DocView(ctx, uc.populate, p, ProductRefs, q.Populate)
}

// Create crea un producto. Barcode y artículo son únicos dentro del cliente.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.ProductRequest) (*entity.Product, error) {
	in = normalizeProduct(in)
	if err := uc.validate(ctx, in, ""); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Product{
		ID:            uuid.New().String(),
		Client:        in.Client,
		Title:         in.Title,
		Barcode:       in.Barcode,
		Article:       in.Article,
		DynamicFields: in.DynamicFields,
		Logs:          []entity.LogEntry{audit.Created(userID, now)},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update reemplaza los datos del producto.
func (uc *ProductUseCase) Update(ctx context.Context, id, userID string, in dto.ProductRequest) (*entity.Product, error) {
	in = normalizeProduct(in)
	p, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.validate(ctx, in, id); err != nil {
		return nil, err
	}
	before := *p
	p.Client = in.Client
	p.Title = in.Title
	p.Barcode = in.Barcode
	p.Article = in.Article
	p.DynamicFields = in.DynamicFields
	if err := RecordDiff(p, &before, p, userID, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func normalizeProduct(in dto.ProductRequest) dto.ProductRequest {
	in.Client = strings.TrimSpace(in.Client)
	in.Title = strings.TrimSpace(in.Title)
	in.Barcode = strings.TrimSpace(in.Barcode)
	in.Article = strings.TrimSpace(in.Article)
	if in.DynamicFields == nil {
		in.DynamicFields = []entity.DynamicField{}
	}
	return in
}

func (uc *ProductUseCase) validate(ctx context.Context, in dto.ProductRequest, selfID string) error {
	switch {
	case in.Client == "":
		return domain.Invalid("Укажите клиента.")
	case in.Title == "":
		return domain.Invalid("Укажите название товара.")
	case in.Barcode == "":
		return domain.Invalid("Укажите баркод товара.")
	case in.Article == "":
		return domain.Invalid("Укажите артикул товара.")
	}
	client, err := uc.clients.GetByID(ctx, in.Client)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.NotFound("Клиент не найден.")
	}

	byBarcode, err := uc.repo.GetByClientAndBarcode(ctx, in.Client, in.Barcode)
	if err != nil {
		return err
	}
	if byBarcode != nil && byBarcode.ID != selfID {
		return domain.Conflict("Товар с таким баркодом уже существует.")
	}
	byArticle, err := uc.repo.GetByClientAndArticle(ctx, in.Client, in.Article)
	if err != nil {
		return err
	}
	if byArticle != nil && byArticle.ID != selfID {
		return domain.Conflict("Товар с таким артикулом уже существует.")
	}
	return nil
}
