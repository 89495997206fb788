package dto

// TaskRequest body para POST/PUT /api/tasks. En PUT los campos nil conservan el valor actual.
type TaskRequest struct {
	User              *string `json:"user"`
	Title             *string `json:"title"`
	Description       *string `json:"description"`
	Type              *string `json:"type"`
	AssociatedOrder   *string `json:"associated_order"`
	AssociatedArrival *string `json:"associated_arrival"`
	Status            *string `json:"status"`
}

// TaskStatusRequest body para PATCH /api/tasks/:id/status.
type TaskStatusRequest struct {
	Status string `json:"status"`
}
