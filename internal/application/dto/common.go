package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AdjustmentErrorResponse rechazo de negocio con contexto suficiente para explicarlo al usuario.
type AdjustmentErrorResponse struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	ProductID    string `json:"product_id"`
	Delta        int64  `json:"delta"`
	CurrentCount *int64 `json:"current_count,omitempty"`
}
