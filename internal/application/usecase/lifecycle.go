package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/audit"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Messages textos que ve el usuario para una colección.
type Messages struct {
	NotFound        string
	InArchive       string
	NotInArchive    string
	AlreadyArchived string
	Archived        string
	Unarchived      string
	Deleted         string
}

// Archivable lo cumplen todas las entidades con bandera de archivo.
type Archivable interface {
	entity.Document
	SetArchived(v bool, at time.Time)
}

// logged lo cumplen las entidades con historial de cambios.
type logged interface {
	AppendLog(e entity.LogEntry)
}

// Lifecycle implementa las operaciones comunes de una colección: lectura de
// activos y archivados, archivar, restaurar y eliminar.
type Lifecycle[T any, P interface {
	*T
	Archivable
}] struct {
	Repo repository.Collection[T]
	Msg  Messages
}

// NewLifecycle construye el ciclo de vida de una colección.
func NewLifecycle[T any, P interface {
	*T
	Archivable
}](repo repository.Collection[T], msg Messages) Lifecycle[T, P] {
	return Lifecycle[T, P]{Repo: repo, Msg: msg}
}

// Find devuelve el documento sin mirar el archivo; NotFound si no existe.
func (l Lifecycle[T, P]) Find(ctx context.Context, id string) (*T, error) {
	doc, err := l.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.NotFound(l.Msg.NotFound)
	}
	return doc, nil
}

// Get devuelve un documento activo; Forbidden si está archivado.
func (l Lifecycle[T, P]) Get(ctx context.Context, id string) (*T, error) {
	doc, err := l.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if P(doc).Archived() {
		return nil, domain.Forbidden(l.Msg.InArchive)
	}
	return doc, nil
}

// GetArchived devuelve un documento archivado; Forbidden si no lo está.
func (l Lifecycle[T, P]) GetArchived(ctx context.Context, id string) (*T, error) {
	doc, err := l.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !P(doc).Archived() {
		return nil, domain.Forbidden(l.Msg.NotInArchive)
	}
	return doc, nil
}

// List devuelve los documentos activos o archivados, del más reciente al más antiguo.
func (l Lifecycle[T, P]) List(ctx context.Context, archived bool) ([]*T, error) {
	return l.Repo.List(ctx, archived)
}

// Archive marca el documento como archivado y registra la entrada en el historial.
func (l Lifecycle[T, P]) Archive(ctx context.Context, id, userID string) (*dto.MessageResponse, error) {
	return l.setArchived(ctx, id, userID, true)
}

// Unarchive restaura un documento archivado.
func (l Lifecycle[T, P]) Unarchive(ctx context.Context, id, userID string) (*dto.MessageResponse, error) {
	return l.setArchived(ctx, id, userID, false)
}

func (l Lifecycle[T, P]) setArchived(ctx context.Context, id, userID string, archived bool) (*dto.MessageResponse, error) {
	doc, err := l.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	p := P(doc)
	switch {
	case archived && p.Archived():
		return nil, domain.Forbidden(l.Msg.AlreadyArchived)
	case !archived && !p.Archived():
		return nil, domain.Forbidden(l.Msg.NotInArchive)
	}

	now := time.Now()
	p.SetArchived(archived, now)
	if lg, ok := any(p).(logged); ok {
		lg.AppendLog(audit.ArchiveToggled(userID, archived, now))
	}
	if err := l.Repo.Update(ctx, doc); err != nil {
		return nil, err
	}
	if archived {
		return &dto.MessageResponse{Message: l.Msg.Archived}, nil
	}
	return &dto.MessageResponse{Message: l.Msg.Unarchived}, nil
}

// Delete elimina el documento definitivamente.
func (l Lifecycle[T, P]) Delete(ctx context.Context, id string) (*dto.MessageResponse, error) {
	if _, err := l.Find(ctx, id); err != nil {
		return nil, err
	}
	if err := l.Repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: l.Msg.Deleted}, nil
}

// RecordDiff agrega a doc la entrada de historial con los campos que cambiaron
// entre before y after. Si hubo cambios también sella updatedAt.
func RecordDiff(doc logged, before, after any, userID string, updatedAt *time.Time) error {
	now := time.Now()
	entry, err := audit.Diff(before, after, userID, now)
	if err != nil {
		return err
	}
	if entry == nil {
		return nil
	}
	doc.AppendLog(*entry)
	*updatedAt = now
	return nil
}
