package entity

import "time"

// Estados del tablero Kanban.
const (
	TaskToDo       = "к выполнению"
	TaskInProgress = "в работе"
	TaskDone       = "готово"
)

// Tipos de tarea.
const (
	TaskTypeArrival = "поставка"
	TaskTypeOrder   = "заказ"
	TaskTypeOther   = "другое"
)

// Task es una tarea asignada a un usuario, opcionalmente ligada a una entrega o a un pedido.
// DateToDo/DateInProgress/DateDone registran la última entrada a cada estado.
type Task struct {
	ID                string     `json:"_id"`
	TaskNumber        string     `json:"taskNumber"`
	User              string     `json:"user"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Type              string     `json:"type"`
	AssociatedOrder   *string    `json:"associated_order"`
	AssociatedArrival *string    `json:"associated_arrival"`
	Status            string     `json:"status"`
	DateToDo          *time.Time `json:"date_ToDO"`
	DateInProgress    *time.Time `json:"date_inProgress"`
	DateDone          *time.Time `json:"date_Done"`
	Logs              []LogEntry `json:"logs"`
	IsArchived        bool       `json:"isArchived"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func (t *Task) DocumentID() string               { return t.ID }
func (t *Task) Archived() bool                   { return t.IsArchived }
func (t *Task) SetArchived(v bool, at time.Time) { t.IsArchived = v; t.UpdatedAt = at }
func (t *Task) AppendLog(e LogEntry)             { t.Logs = append(t.Logs, e) }

// IsValidTaskStatus indica si s es un estado del tablero.
func IsValidTaskStatus(s string) bool {
	return s == TaskToDo || s == TaskInProgress || s == TaskDone
}

// IsValidTaskType indica si s es un tipo de tarea.
func IsValidTaskType(s string) bool {
	return s == TaskTypeArrival || s == TaskTypeOrder || s == TaskTypeOther
}

// MarkStatus cambia el estado y sella la fecha de entrada al nuevo estado.
// Si el estado no cambia, no toca las fechas.
func (t *Task) MarkStatus(status string, at time.Time) {
	if t.Status == status && t.dateFor(status) != nil {
		return
	}
	t.Status = status
	ts := at
	switch status {
	case TaskToDo:
		t.DateToDo = &ts
	case TaskInProgress:
		t.DateInProgress = &ts
	case TaskDone:
		t.DateDone = &ts
	}
}

func (t *Task) dateFor(status string) *time.Time {
	switch status {
	case TaskToDo:
		return t.DateToDo
	case TaskInProgress:
		return t.DateInProgress
	case TaskDone:
		return t.DateDone
	}
	return nil
}
