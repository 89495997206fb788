package repository

import "context"

// Collection define el puerto de persistencia común a todas las colecciones
// de documentos (una por tipo de entidad). La implementación vive en infrastructure.
type Collection[T any] interface {
	Create(ctx context.Context, doc *T) error
	// GetByID devuelve nil, nil si el documento no existe.
	GetByID(ctx context.Context, id string) (*T, error)
	Update(ctx context.Context, doc *T) error
	Delete(ctx context.Context, id string) error
	// List devuelve los documentos archivados o no, del más reciente al más antiguo.
	List(ctx context.Context, archived bool) ([]*T, error)
}

// CounterRepository entrega números correlativos por tipo (arrival, order, task, invoice).
type CounterRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}
