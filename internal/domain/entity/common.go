package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document lo implementan todas las entidades persistidas como documento
// (una colección por tipo). Lo usan los almacenes genéricos.
type Document interface {
	DocumentID() string
	Archived() bool
}

// LogEntry es una entrada del historial de cambios embebido en cada entidad.
// Solo se agrega, nunca se edita ni se elimina.
type LogEntry struct {
	User   string    `json:"user"`
	Change string    `json:"change"`
	Date   time.Time `json:"date"`
}

// Attachment referencia un archivo subido (ruta pública).
type Attachment struct {
	Document string `json:"document"`
}

// ProductLine línea de producto con cantidad (enviados, recibidos, pedidos).
type ProductLine struct {
	Product     string `json:"product"`
	Description string `json:"description,omitempty"`
	Amount      int    `json:"amount"`
}

// DefectLine línea de producto defectuoso.
type DefectLine struct {
	Product           string `json:"product"`
	DefectDescription string `json:"defect_description,omitempty"`
	Amount            int    `json:"amount"`
}

// ServiceLine servicio prestado sobre una entrega/pedido/factura.
// ServicePrice vacío significa "precio del catálogo".
type ServiceLine struct {
	Service       string           `json:"service"`
	ServiceAmount int              `json:"service_amount"`
	ServicePrice  *decimal.Decimal `json:"service_price,omitempty"`
}

// DynamicField campo adicional libre de un producto.
type DynamicField struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}
