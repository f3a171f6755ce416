package entity

import "time"

// Tipos de sitio.
const (
	SiteTypeStorage = "STORAGE" // almacena inventario
	SiteTypeExit    = "EXIT"    // sumidero terminal (chatarra, retrofit)
)

// Site representa un sitio físico. Solo los sitios STORAGE mantienen filas de
// stock persistidas; los EXIT son destinos válidos de movimientos pero el
// inventario que les llega se considera consumido.
type Site struct {
	ID        string
	Name      string // único
	Type      string // STORAGE | EXIT
	Address   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
