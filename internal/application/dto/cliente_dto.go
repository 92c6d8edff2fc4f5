package dto

import "time"

// ClienteRequest alta/edición de cliente.
type ClienteRequest struct {
	Nombre    string `json:"nombre"`
	Tipo      string `json:"tipo"`
	RFC       string `json:"rfc"`
	Telefono  string `json:"telefono"`
	Email     string `json:"email"`
	Direccion string `json:"direccion"`
}

// ClienteResponse representación HTTP de un cliente.
type ClienteResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Tipo      string    `json:"tipo"`
	RFC       string    `json:"rfc"`
	Telefono  string    `json:"telefono"`
	Email     string    `json:"email"`
	Direccion string    `json:"direccion"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProveedorRequest alta/edición de proveedor.
type ProveedorRequest struct {
	Nombre    string `json:"nombre"`
	Contacto  string `json:"contacto"`
	RFC       string `json:"rfc"`
	Telefono  string `json:"telefono"`
	Email     string `json:"email"`
	Direccion string `json:"direccion"`
}

// ProveedorResponse representación HTTP de un proveedor.
type ProveedorResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Contacto  string    `json:"contacto"`
	RFC       string    `json:"rfc"`
	Telefono  string    `json:"telefono"`
	Email     string    `json:"email"`
	Direccion string    `json:"direccion"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
