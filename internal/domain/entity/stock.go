package entity

import "time"

// Stock es la fila del libro mayor: cantidad actual de un producto en un
// sitio, separada por estado (nuevo/ocasión). Clave única (ProductID, SiteID).
// Se crea de forma perezosa con el primer movimiento que la referencia.
// Los contadores pueden quedar negativos tras una salida mayor al disponible;
// ese valor se interpreta como pedido pendiente (backorder), no se rechaza.
type Stock struct {
	ProductID    string
	SiteID       string
	QuantityNew  int
	QuantityUsed int
	UpdatedAt    time.Time

	// Expansión opcional para vistas de lectura.
	Product *Product
	Site    *Site
}

// Total devuelve la suma de ambos contadores.
func (s *Stock) Total() int {
	return s.QuantityNew + s.QuantityUsed
}
