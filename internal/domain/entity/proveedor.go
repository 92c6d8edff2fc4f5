package entity

import "time"

// Proveedor representa un proveedor de refacciones o servicios.
// Igual que Cliente, solo se desactiva, nunca se borra.
type Proveedor struct {
	ID        string
	Nombre    string
	Contacto  string
	RFC       string
	Telefono  string
	Email     string
	Direccion string
	Activo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
