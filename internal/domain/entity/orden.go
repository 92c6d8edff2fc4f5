package entity

import "time"

// Estados de una orden de trabajo.
const (
	OrdenPendiente  = "Pendiente"
	OrdenEnProceso  = "En Proceso"
	OrdenCompletada = "Completada"
	OrdenCancelada  = "Cancelada"
	OrdenFacturada  = "Facturada"
)

// Orden representa una orden de trabajo del taller. Sus renglones llevan solo
// cantidad y descripción (sin precio); el precio se asigna al facturar.
// Solo una orden Completada puede convertirse en nota; al hacerlo pasa a
// Facturada, estado terminal.
type Orden struct {
	ID           string
	Folio        string // ORD-YYYY-NNNN
	ClienteID    string
	Estado       string
	FechaEmision time.Time
	Marca        string
	Modelo       string
	Anio         int
	Placas       string
	Kilometraje  int
	Items        []*Item
	NotaFolio    string // vacío hasta la conversión
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Convertida indica si la orden ya fue facturada.
func (o *Orden) Convertida() bool { return o.NotaFolio != "" }

// Terminal indica si la orden ya no admite mutaciones.
func (o *Orden) Terminal() bool {
	return o.Estado == OrdenCancelada || o.Estado == OrdenFacturada
}
