// Package workflow declara las máquinas de estado de entregas y pedidos y el
// efecto que cada estado implica sobre los libros de la bodega.
package workflow

import (
	"github.com/jhoicas/Almacen-api/internal/domain"
)

// Machine es una máquina de estados finita con tabla explícita de transiciones.
// El orden de States define el avance; un retroceso solo es legal si
// AllowRollback está activo (corrección manual).
type Machine struct {
	Name          string
	States        []string
	forward       map[string][]string
	AllowRollback bool
}

// NewMachine construye la máquina a partir de la tabla de avances.
// Cada estado admite siempre quedarse en sí mismo.
func NewMachine(name string, states []string, forward map[string][]string) Machine {
	return Machine{Name: name, States: states, forward: forward}
}

// Initial devuelve el primer estado.
func (m Machine) Initial() string { return m.States[0] }

// IsState indica si s pertenece a la máquina.
func (m Machine) IsState(s string) bool {
	return m.rank(s) >= 0
}

func (m Machine) rank(s string) int {
	for i, st := range m.States {
		if st == s {
			return i
		}
	}
	return -1
}

// WithRollback devuelve una copia que admite retrocesos.
func (m Machine) WithRollback(allow bool) Machine {
	m.AllowRollback = allow
	return m
}

// Allowed indica si from → to es una transición legal.
func (m Machine) Allowed(from, to string) bool {
	if !m.IsState(from) || !m.IsState(to) {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range m.forward[from] {
		if next == to {
			return true
		}
	}
	return m.AllowRollback && m.rank(to) < m.rank(from)
}

// Check valida el estado de destino y la transición.
func (m Machine) Check(from, to string) error {
	if !m.IsState(to) {
		return domain.Invalidf("Недопустимый статус: %q.", to)
	}
	if !m.Allowed(from, to) {
		return domain.Invalidf("Недопустимая смена статуса: «%s» → «%s».", from, to)
	}
	return nil
}
