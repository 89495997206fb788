package entity

import "time"

// Client es el cliente del fulfillment: dueño de productos, entregas y pedidos.
type Client struct {
	ID          string     `json:"_id"`
	Name        string     `json:"name"`
	PhoneNumber string     `json:"phone_number"`
	Email       string     `json:"email"`
	INN         string     `json:"inn"`
	Address     string     `json:"address,omitempty"`
	BankingData string     `json:"banking_data,omitempty"`
	OGRN        string     `json:"ogrn,omitempty"`
	IsArchived  bool       `json:"isArchived"`
	Logs        []LogEntry `json:"logs"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (c *Client) DocumentID() string               { return c.ID }
func (c *Client) Archived() bool                   { return c.IsArchived }
func (c *Client) SetArchived(v bool, at time.Time) { c.IsArchived = v; c.UpdatedAt = at }
func (c *Client) AppendLog(e LogEntry)             { c.Logs = append(c.Logs, e) }

// Counterparty es un transportista / agente de envío.
type Counterparty struct {
	ID          string     `json:"_id"`
	Name        string     `json:"name"`
	Address     string     `json:"address,omitempty"`
	PhoneNumber string     `json:"phone_number,omitempty"`
	IsArchived  bool       `json:"isArchived"`
	Logs        []LogEntry `json:"logs"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (c *Counterparty) DocumentID() string               { return c.ID }
func (c *Counterparty) Archived() bool                   { return c.IsArchived }
func (c *Counterparty) SetArchived(v bool, at time.Time) { c.IsArchived = v; c.UpdatedAt = at }
func (c *Counterparty) AppendLog(e LogEntry)             { c.Logs = append(c.Logs, e) }
