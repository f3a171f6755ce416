// Package events define el puerto del relay de eventos CRUD. El relay es
// fire-and-forget: su indisponibilidad nunca afecta el resultado de la
// operación que lo invoca.
package events

import "time"

// Acciones publicables.
const (
	ActionInserted = "inserted"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
)

// Actor identifica al usuario que ejecutó la operación (claims del token).
type Actor struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Event es la carga publicada por cada mutación exitosa.
type Event struct {
	ID        string    `json:"id"`
	Table     string    `json:"table"`
	Action    string    `json:"action"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
	Actor     *Actor    `json:"actor"`
}

// Publisher es el colaborador inyectado que recibe los eventos después del
// commit. Las implementaciones no deben retornar el fallo al caso de uso.
type Publisher interface {
	Publish(event Event)
}

// NopPublisher descarta todos los eventos (relay no configurado).
type NopPublisher struct{}

// Publish no hace nada.
func (NopPublisher) Publish(Event) {}
