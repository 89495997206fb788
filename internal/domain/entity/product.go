package entity

import "time"

// Product representa un SKU de un cliente. Barcode y Article son únicos por cliente.
// El stock vive en Stock (por bodega), no aquí.
type Product struct {
	ID            string         `json:"_id"`
	Client        string         `json:"client"`
	Title         string         `json:"title"`
	Barcode       string         `json:"barcode"`
	Article       string         `json:"article"`
	DynamicFields []DynamicField `json:"dynamic_fields"`
	IsArchived    bool           `json:"isArchived"`
	Logs          []LogEntry     `json:"logs"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func (p *Product) DocumentID() string               { return p.ID }
func (p *Product) Archived() bool                   { return p.IsArchived }
func (p *Product) SetArchived(v bool, at time.Time) { p.IsArchived = v; p.UpdatedAt = at }
func (p *Product) AppendLog(e LogEntry)             { p.Logs = append(p.Logs, e) }
