package dto

// Response envoltura estándar de la API: {success, data}.
type Response struct {
	Success    bool          `json:"success"`
	Data       any           `json:"data,omitempty"`
	Message    string        `json:"message,omitempty"`
	Pagination *PageResponse `json:"pagination,omitempty"`
}

// OK construye una respuesta exitosa.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// OKPage construye una respuesta exitosa paginada.
func OKPage(data any, page PageResponse) Response {
	return Response{Success: true, Data: data, Pagination: &page}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Err construye un cuerpo de error.
func Err(code, message string) ErrorResponse {
	return ErrorResponse{Success: false, Code: code, Message: message}
}

// PageRequest paginación para listados (página 1-based).
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// DefaultPage aplica valores por defecto y topes.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPageResponse calcula totalPages a partir del total.
func NewPageResponse(page, limit, total int) PageResponse {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return PageResponse{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}
