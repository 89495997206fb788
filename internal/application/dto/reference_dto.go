package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ClientRequest body para POST/PUT /api/clients.
type ClientRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	INN         string `json:"inn"`
	Address     string `json:"address"`
	BankingData string `json:"banking_data"`
	OGRN        string `json:"ogrn"`
}

// CounterpartyRequest body para POST/PUT /api/counterparties.
type CounterpartyRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

// ProductRequest body para POST/PUT /api/products.
type ProductRequest struct {
	Client        string                `json:"client"`
	Title         string                `json:"title"`
	Barcode       string                `json:"barcode"`
	Article       string                `json:"article"`
	DynamicFields []entity.DynamicField `json:"dynamic_fields"`
}

// StockRequest body para POST/PUT /api/stocks. Las cantidades no se editan aquí.
type StockRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// WriteOffRequest body para POST /api/stocks/:id/write-offs.
type WriteOffRequest struct {
	Client string         `json:"client"`
	Reason string         `json:"reason"`
	Lines  []WriteOffLine `json:"write_offs"`
}

// WriteOffLine producto y cantidad a dar de baja. Defect=true descuenta del libro de defectuosos.
type WriteOffLine struct {
	Product string `json:"product"`
	Amount  int    `json:"amount"`
	Defect  bool   `json:"defect"`
}

// ServiceRequest body para POST/PUT /api/services.
type ServiceRequest struct {
	Name            string          `json:"name"`
	ServiceCategory string          `json:"serviceCategory"`
	Price           decimal.Decimal `json:"price"`
	Description     string          `json:"description"`
	Type            string          `json:"type"`
}

// ServiceCategoryRequest body para POST/PUT /api/service-categories.
type ServiceCategoryRequest struct {
	Name string `json:"name"`
}
