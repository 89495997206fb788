package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de servicio.
const (
	ServiceInternal = "внутренняя"
	ServiceExternal = "внешняя"
)

// Service es un servicio del catálogo (recepción, etiquetado, almacenamiento...).
type Service struct {
	ID              string          `json:"_id"`
	Name            string          `json:"name"`
	ServiceCategory string          `json:"serviceCategory"`
	Price           decimal.Decimal `json:"price"`
	Description     string          `json:"description,omitempty"`
	Type            string          `json:"type"`
	IsArchived      bool            `json:"isArchived"`
	Logs            []LogEntry      `json:"logs"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (s *Service) DocumentID() string               { return s.ID }
func (s *Service) Archived() bool                   { return s.IsArchived }
func (s *Service) SetArchived(v bool, at time.Time) { s.IsArchived = v; s.UpdatedAt = at }
func (s *Service) AppendLog(e LogEntry)             { s.Logs = append(s.Logs, e) }

// ServiceCategory agrupa servicios. Name es único.
type ServiceCategory struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	IsArchived bool      `json:"isArchived"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (c *ServiceCategory) DocumentID() string               { return c.ID }
func (c *ServiceCategory) Archived() bool                   { return c.IsArchived }
func (c *ServiceCategory) SetArchived(v bool, at time.Time) { c.IsArchived = v; c.UpdatedAt = at }
