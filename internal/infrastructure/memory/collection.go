package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

type document[T any] interface {
	*T
	entity.Document
}

// collection es la versión en memoria de una tabla de documentos.
type collection[T any, P document[T]] struct {
	t    *table
	name string
	// unique devuelve la clave única del documento ("" = sin restricción).
	unique []func(*T) string
	// j registra las escrituras cuando la colección está atada a una transacción.
	j *journal
}

func newCollection[T any, P document[T]](s *Store, name string, unique ...func(*T) string) collection[T, P] {
	return collection[T, P]{t: s.table(name), name: name, unique: unique}
}

func (c collection[T, P]) Create(_ context.Context, doc *T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c.name, err)
	}
	p := P(doc)

	c.t.mu.Lock()
	defer c.t.mu.Unlock()
	if _, ok := c.t.rows[p.DocumentID()]; ok {
		return domain.Conflict("Запись с такими данными уже существует.")
	}
	if err := c.checkUnique(doc, p.DocumentID()); err != nil {
		return err
	}
	c.j.record(c.t, p.DocumentID())
	c.t.seq++
	c.t.rows[p.DocumentID()] = row{seq: c.t.seq, archived: p.Archived(), doc: raw}
	return nil
}

func (c collection[T, P]) GetByID(_ context.Context, id string) (*T, error) {
	c.t.mu.RLock()
	defer c.t.mu.RUnlock()
	r, ok := c.t.rows[id]
	if !ok {
		return nil, nil
	}
	return c.decode(r.doc)
}

func (c collection[T, P]) Update(_ context.Context, doc *T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c.name, err)
	}
	p := P(doc)

	c.t.mu.Lock()
	defer c.t.mu.Unlock()
	r, ok := c.t.rows[p.DocumentID()]
	if !ok {
		return domain.NotFound("Запись не найдена.")
	}
	if err := c.checkUnique(doc, p.DocumentID()); err != nil {
		return err
	}
	c.j.record(c.t, p.DocumentID())
	r.archived = p.Archived()
	r.doc = raw
	c.t.rows[p.DocumentID()] = r
	return nil
}

func (c collection[T, P]) Delete(_ context.Context, id string) error {
	c.t.mu.Lock()
	defer c.t.mu.Unlock()
	if _, ok := c.t.rows[id]; !ok {
		return domain.NotFound("Запись не найдена.")
	}
	c.j.record(c.t, id)
	delete(c.t.rows, id)
	return nil
}

func (c collection[T, P]) List(_ context.Context, archived bool) ([]*T, error) {
	return c.filter(func(r row, _ *T) bool { return r.archived == archived })
}

// filter devuelve los documentos que cumplen match, del más reciente al más antiguo.
func (c collection[T, P]) filter(match func(r row, doc *T) bool) ([]*T, error) {
	c.t.mu.RLock()
	rows := make([]row, 0, len(c.t.rows))
	for _, r := range c.t.rows {
		rows = append(rows, r)
	}
	c.t.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })

	var out []*T
	for _, r := range rows {
		v, err := c.decode(r.doc)
		if err != nil {
			return nil, err
		}
		if match(r, v) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (c collection[T, P]) findOne(match func(doc *T) bool) (*T, error) {
	list, err := c.filter(func(_ row, doc *T) bool { return match(doc) })
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

// checkUnique se llama con c.t.mu tomado.
func (c collection[T, P]) checkUnique(doc *T, id string) error {
	for _, key := range c.unique {
		k := key(doc)
		if k == "" {
			continue
		}
		for otherID, r := range c.t.rows {
			if otherID == id {
				continue
			}
			other, err := c.decode(r.doc)
			if err != nil {
				return err
			}
			if key(other) == k {
				return domain.Conflict("Запись с такими данными уже существует.")
			}
		}
	}
	return nil
}

func (c collection[T, P]) decode(raw []byte) (*T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.name, err)
	}
	return &v, nil
}
