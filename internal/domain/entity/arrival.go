package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una entrega (Arrival).
const (
	ArrivalAwaiting = "ожидается доставка"
	ArrivalReceived = "получена"
	ArrivalSorted   = "отсортирована"
)

// Arrival representa una entrega entrante de mercancía de un cliente a una bodega.
type Arrival struct {
	ID             string          `json:"_id"`
	ArrivalNumber  string          `json:"arrivalNumber"`
	Client         string          `json:"client"`
	Stock          string          `json:"stock"`
	ShippingAgent  *string         `json:"shipping_agent"`
	PickupLocation string          `json:"pickup_location,omitempty"`
	ArrivalDate    time.Time       `json:"arrival_date"`
	ArrivalPrice   decimal.Decimal `json:"arrival_price"`
	SentAmount     string          `json:"sent_amount,omitempty"`
	Products       []ProductLine   `json:"products"`
	ArrivalStatus  string          `json:"arrival_status"`
	ReceivedAmount []ProductLine   `json:"received_amount"`
	Defects        []DefectLine    `json:"defects"`
	Services       []ServiceLine   `json:"services"`
	Documents      []Attachment    `json:"documents"`
	Logs           []LogEntry      `json:"logs"`
	IsArchived     bool            `json:"isArchived"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func (a *Arrival) DocumentID() string               { return a.ID }
func (a *Arrival) Archived() bool                   { return a.IsArchived }
func (a *Arrival) SetArchived(v bool, at time.Time) { a.IsArchived = v; a.UpdatedAt = at }
func (a *Arrival) AppendLog(e LogEntry)             { a.Logs = append(a.Logs, e) }
