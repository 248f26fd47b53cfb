package dto

// Límites de paginación de los listados de catálogo, proveedores y órdenes.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PageRequest ventana solicitada por query string (?limit=&offset=).
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// Normalize ajusta la ventana: limit ausente o no positivo toma DefaultPageLimit,
// limit por encima de MaxPageLimit se recorta y offset negativo pasa a 0.
func (p *PageRequest) Normalize() {
	switch {
	case p.Limit <= 0:
		p.Limit = DefaultPageLimit
	case p.Limit > MaxPageLimit:
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse ventana efectivamente aplicada.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ErrorResponse cuerpo de error HTTP: código estable y mensaje legible.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
