package entity

import "time"

// Cliente representa un cliente del taller. Nunca se elimina físicamente:
// se desactiva con Activo = false y los documentos conservan la referencia.
type Cliente struct {
	ID        string
	Nombre    string
	Tipo      string // particular | empresa
	RFC       string
	Telefono  string
	Email     string
	Direccion string
	Activo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
