// Package memory implementa los repositorios sobre memoria del proceso.
// Se usa con STORAGE_DRIVER=memory y como respaldo de los tests.
// Los documentos se guardan serializados: lo que devuelve el store nunca
// comparte memoria con lo guardado, igual que con PostgreSQL.
package memory

import (
	"sync"
)

type row struct {
	seq      int64
	archived bool
	doc      []byte
}

type table struct {
	mu   sync.RWMutex
	rows map[string]row
	seq  int64
}

func newTable() *table {
	return &table{rows: map[string]row{}}
}

// journal guarda el estado previo de cada fila que toca una transacción.
// Solo lo alimentan los repositorios atados a esa transacción.
type journal struct {
	mu     sync.Mutex
	before map[*table]map[string]*row
}

func newJournal() *journal {
	return &journal{before: map[*table]map[string]*row{}}
}

// record se llama con t.mu tomado y antes de modificar la fila id.
// Solo cuenta la primera vez: es el estado anterior a la transacción.
func (j *journal) record(t *table, id string) {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	rows, ok := j.before[t]
	if !ok {
		rows = map[string]*row{}
		j.before[t] = rows
	}
	if _, seen := rows[id]; seen {
		return
	}
	var prev *row
	if r, exists := t.rows[id]; exists {
		prev = &r
	}
	rows[id] = prev
}

// undo deja las filas registradas como estaban; nil significa que no existía.
func (j *journal) undo() {
	j.mu.Lock()
	before := j.before
	j.before = map[*table]map[string]*row{}
	j.mu.Unlock()

	for t, rows := range before {
		t.mu.Lock()
		for id, prev := range rows {
			if prev == nil {
				delete(t.rows, id)
				continue
			}
			t.rows[id] = *prev
		}
		t.mu.Unlock()
	}
}

// Store agrupa todas las colecciones y los contadores.
type Store struct {
	txMu sync.Mutex

	mu       sync.Mutex
	tables   map[string]*table
	counters map[string]int64
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{tables: map[string]*table{}, counters: map[string]int64{}}
}

func (s *Store) table(name string) *table {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[name]
	if !ok {
		t = newTable()
		s.tables[name] = t
	}
	return t
}

func (s *Store) next(name string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[name]++
	return s.counters[name]
}
