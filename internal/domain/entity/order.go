package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido (Order).
const (
	OrderAssembling = "в сборке"
	OrderInTransit  = "в пути"
	OrderDelivered  = "доставлен"
)

// Order representa un envío saliente desde una bodega hacia el cliente final.
type Order struct {
	ID          string          `json:"_id"`
	OrderNumber string          `json:"orderNumber"`
	Client      string          `json:"client"`
	Stock       string          `json:"stock"`
	Products    []ProductLine   `json:"products"`
	Price       decimal.Decimal `json:"price"`
	SentAt      time.Time       `json:"sent_at"`
	DeliveredAt *time.Time      `json:"delivered_at,omitempty"`
	Comment     string          `json:"comment,omitempty"`
	Status      string          `json:"status"`
	Defects     []DefectLine    `json:"defects"`
	Services    []ServiceLine   `json:"services"`
	Documents   []Attachment    `json:"documents"`
	Logs        []LogEntry      `json:"logs"`
	IsArchived  bool            `json:"isArchived"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (o *Order) DocumentID() string               { return o.ID }
func (o *Order) Archived() bool                   { return o.IsArchived }
func (o *Order) SetArchived(v bool, at time.Time) { o.IsArchived = v; o.UpdatedAt = at }
func (o *Order) AppendLog(e LogEntry)             { o.Logs = append(o.Logs, e) }
