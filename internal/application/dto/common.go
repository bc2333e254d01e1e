package dto

// ErrorResponse cuerpo de error HTTP. Todas las fallas de negocio salen con
// este sobre: ok=false, código estable para el front y mensaje legible.
type ErrorResponse struct {
	OK      bool   `json:"ok"`
	Code    string `json:"code"`
	Message string `json:"error"`
	Details any    `json:"details,omitempty"`
}
