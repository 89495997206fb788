package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ArrivalRequest body para POST/PUT /api/arrivals (JSON o multipart con "files").
// En PUT los campos nil conservan el valor actual.
type ArrivalRequest struct {
	Client         *string              `json:"client"`
	Stock          *string              `json:"stock"`
	ShippingAgent  *string              `json:"shipping_agent"`
	PickupLocation *string              `json:"pickup_location"`
	ArrivalDate    *time.Time           `json:"arrival_date"`
	ArrivalPrice   *decimal.Decimal     `json:"arrival_price"`
	SentAmount     *string              `json:"sent_amount"`
	Products       []entity.ProductLine `json:"products"`
	ArrivalStatus  *string              `json:"arrival_status"`
	ReceivedAmount []entity.ProductLine `json:"received_amount"`
	Defects        []entity.DefectLine  `json:"defects"`
	Services       []entity.ServiceLine `json:"services"`
	Documents      []entity.Attachment  `json:"documents"`
}

// OrderRequest body para POST/PUT /api/orders (JSON o multipart con "files").
type OrderRequest struct {
	Client      *string              `json:"client"`
	Stock       *string              `json:"stock"`
	Products    []entity.ProductLine `json:"products"`
	Price       *decimal.Decimal     `json:"price"`
	SentAt      *time.Time           `json:"sent_at"`
	DeliveredAt *time.Time           `json:"delivered_at"`
	Comment     *string              `json:"comment"`
	Status      *string              `json:"status"`
	Defects     []entity.DefectLine  `json:"defects"`
	Services    []entity.ServiceLine `json:"services"`
	Documents   []entity.Attachment  `json:"documents"`
}
