package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta de operaciones sin cuerpo (archivar, eliminar, logout).
type MessageResponse struct {
	Message string `json:"message"`
}

// ListQuery filtros de los listados: populate=1 expande referencias.
type ListQuery struct {
	Populate bool
	Client   string
	User     string
}
