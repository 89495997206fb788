package entity

import "time"

// StockItem cantidad de un producto en una bodega.
type StockItem struct {
	Product string `json:"product"`
	Amount  int    `json:"amount"`
}

// WriteOff registro de una baja de mercancía.
type WriteOff struct {
	Client  string    `json:"client,omitempty"`
	Product string    `json:"product"`
	Amount  int       `json:"amount"`
	Reason  string    `json:"reason,omitempty"`
	Date    time.Time `json:"date"`
}

// Stock representa una bodega física con sus dos libros: existencias (Products)
// y defectuosos (Defects). Las cantidades nunca son negativas.
// Solo se modifican a través de ledger.Ledger.
type Stock struct {
	ID         string      `json:"_id"`
	Name       string      `json:"name"`
	Address    string      `json:"address"`
	Products   []StockItem `json:"products"`
	Defects    []StockItem `json:"defects"`
	WriteOffs  []WriteOff  `json:"write_offs"`
	IsArchived bool        `json:"isArchived"`
	Logs       []LogEntry  `json:"logs"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

func (s *Stock) DocumentID() string               { return s.ID }
func (s *Stock) Archived() bool                   { return s.IsArchived }
func (s *Stock) SetArchived(v bool, at time.Time) { s.IsArchived = v; s.UpdatedAt = at }
func (s *Stock) AppendLog(e LogEntry)             { s.Logs = append(s.Logs, e) }

// Quantity devuelve la existencia de un producto (0 si no figura).
func (s *Stock) Quantity(productID string) int {
	for _, it := range s.Products {
		if it.Product == productID {
			return it.Amount
		}
	}
	return 0
}

// DefectQuantity devuelve la cantidad defectuosa de un producto.
func (s *Stock) DefectQuantity(productID string) int {
	for _, it := range s.Defects {
		if it.Product == productID {
			return it.Amount
		}
	}
	return 0
}
