package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Tipos de referencia resolubles.
const (
	RefUser         = "user"
	RefClient       = "client"
	RefCounterparty = "counterparty"
	RefProduct      = "product"
	RefStock        = "stock"
	RefService      = "service"
	RefCategory     = "serviceCategory"
	RefArrival      = "arrival"
	RefOrder        = "order"
)

// Ref describe una referencia dentro del documento. Si Sub no está vacío,
// Field es una lista de objetos y el identificador está en Sub.
type Ref struct {
	Field string
	Sub   string
	Kind  string
}

// Loader obtiene el documento referenciado (nil si no existe).
type Loader func(ctx context.Context, id string) (any, error)

// Populator expande referencias por identificador en los documentos que
// devuelven los listados con populate=1.
type Populator struct {
	loaders map[string]Loader
}

// PopulatorRepos repositorios de los que se resuelven referencias.
type PopulatorRepos struct {
	Users          repository.UserRepository
	Clients        repository.ClientRepository
	Counterparties repository.CounterpartyRepository
	Products       repository.ProductRepository
	Stocks         repository.StockRepository
	Services       repository.ServiceRepository
	Categories     repository.ServiceCategoryRepository
	Arrivals       repository.ArrivalRepository
	Orders         repository.OrderRepository
}

// NewPopulator registra un loader por tipo de referencia.
func NewPopulator(r PopulatorRepos) *Populator {
	p := &Populator{loaders: map[string]Loader{}}
	p.loaders[RefUser] = func(ctx context.Context, id string) (any, error) {
		u, err := r.Users.GetByID(ctx, id)
		if err != nil || u == nil {
			return nil, err
		}
		return dto.ToUserResponse(u), nil
	}
	p.loaders[RefClient] = loader(r.Clients.GetByID)
	p.loaders[RefCounterparty] = loader(r.Counterparties.GetByID)
	p.loaders[RefProduct] = loader(r.Products.GetByID)
	p.loaders[RefStock] = loader(r.Stocks.GetByID)
	p.loaders[RefService] = loader(r.Services.GetByID)
	p.loaders[RefCategory] = loader(r.Categories.GetByID)
	p.loaders[RefArrival] = loader(r.Arrivals.GetByID)
	p.loaders[RefOrder] = loader(r.Orders.GetByID)
	return p
}

func loader[T any](get func(ctx context.Context, id string) (*T, error)) Loader {
	return func(ctx context.Context, id string) (any, error) {
		v, err := get(ctx, id)
		if err != nil || v == nil {
			return nil, err
		}
		return v, nil
	}
}

// Expand serializa doc y reemplaza cada referencia por el documento al que apunta.
func (p *Populator) Expand(ctx context.Context, doc any, refs []Ref) (map[string]any, error) {
	return p.expand(ctx, doc, refs, map[string]any{})
}

// ExpandAll aplica Expand a una lista compartiendo la caché de búsquedas.
func ExpandAll[T any](ctx context.Context, p *Populator, docs []*T, refs []Ref) ([]map[string]any, error) {
	cache := map[string]any{}
	out := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		m, err := p.expand(ctx, d, refs, cache)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (p *Populator) expand(ctx context.Context, doc any, refs []Ref, cache map[string]any) (map[string]any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("populate: %w", err)
	}
	m := map[string]any{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("populate: %w", err)
	}

	resolve := func(v any, kind string) (any, error) {
		id, ok := v.(string)
		if !ok || id == "" {
			return v, nil
		}
		key := kind + ":" + id
		if hit, ok := cache[key]; ok {
			return hit, nil
		}
		load, ok := p.loaders[kind]
		if !ok {
			return v, nil
		}
		got, err := load(ctx, id)
		if err != nil {
			return nil, err
		}
		cache[key] = got
		return got, nil
	}

	for _, ref := range refs {
		if ref.Sub == "" {
			v, err := resolve(m[ref.Field], ref.Kind)
			if err != nil {
				return nil, err
			}
			if _, present := m[ref.Field]; present {
				m[ref.Field] = v
			}
			continue
		}
		items, _ := m[ref.Field].([]any)
		for _, it := range items {
			obj, ok := it.(map[string]any)
			if !ok {
				continue
			}
			v, err := resolve(obj[ref.Sub], ref.Kind)
			if err != nil {
				return nil, err
			}
			obj[ref.Sub] = v
		}
	}
	return m, nil
}

// Referencias por colección.
var (
	ProductRefs = []Ref{{Field: "client", Kind: RefClient}, {Field: "logs", Sub: "user", Kind: RefUser}}
	ServiceRefs = []Ref{{Field: "serviceCategory", Kind: RefCategory}, {Field: "logs", Sub: "user", Kind: RefUser}}
	StockRefs   = []Ref{
		{Field: "products", Sub: "product", Kind: RefProduct},
		{Field: "defects", Sub: "product", Kind: RefProduct},
		{Field: "write_offs", Sub: "product", Kind: RefProduct},
		{Field: "write_offs", Sub: "client", Kind: RefClient},
		{Field: "logs", Sub: "user", Kind: RefUser},
	}
	ArrivalRefs = []Ref{
		{Field: "client", Kind: RefClient},
		{Field: "stock", Kind: RefStock},
		{Field: "shipping_agent", Kind: RefCounterparty},
		{Field: "products", Sub: "product", Kind: RefProduct},
		{Field: "received_amount", Sub: "product", Kind: RefProduct},
		{Field: "defects", Sub: "product", Kind: RefProduct},
		{Field: "services", Sub: "service", Kind: RefService},
		{Field: "logs", Sub: "user", Kind: RefUser},
	}
	OrderRefs = []Ref{
		{Field: "client", Kind: RefClient},
		{Field: "stock", Kind: RefStock},
		{Field: "products", Sub: "product", Kind: RefProduct},
		{Field: "defects", Sub: "product", Kind: RefProduct},
		{Field: "services", Sub: "service", Kind: RefService},
		{Field: "logs", Sub: "user", Kind: RefUser},
	}
	TaskRefs = []Ref{
		{Field: "user", Kind: RefUser},
		{Field: "associated_arrival", Kind: RefArrival},
		{Field: "associated_order", Kind: RefOrder},
		{Field: "logs", Sub: "user", Kind: RefUser},
	}
	InvoiceRefs = []Ref{
		{Field: "client", Kind: RefClient},
		{Field: "associatedArrival", Kind: RefArrival},
		{Field: "associatedOrder", Kind: RefOrder},
		{Field: "services", Sub: "service", Kind: RefService},
		{Field: "logs", Sub: "user", Kind: RefUser},
	}
	LogRefs = []Ref{{Field: "logs", Sub: "user", Kind: RefUser}}
)

// ListView devuelve docs tal cual o, con populate, con las referencias expandidas.
func ListView[T any](ctx context.Context, p *Populator, docs []*T, refs []Ref, populate bool) (any, error) {
	if docs == nil {
		docs = []*T{}
	}
	if !populate || p == nil {
		return docs, nil
	}
	return ExpandAll(ctx, p, docs, refs)
}

// DocView es ListView para un solo documento.
func DocView(ctx context.Context, p *Populator, doc any, refs []Ref, populate bool) (any, error) {
	if !populate || p == nil {
		return doc, nil
	}
	return p.Expand(ctx, doc, refs)
}
