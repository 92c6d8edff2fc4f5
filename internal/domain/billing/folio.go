package billing

import "fmt"

// Prefijos de folio por tipo de documento.
const (
	TipoCotizacion    = "COT"
	TipoOrden         = "ORD"
	TipoNotaVenta     = "NV"
	TipoNotaProveedor = "NP"
)

// FormatFolio arma el folio humano-legible PREFIX-YYYY-NNNN.
// El consecutivo es estrictamente creciente por par (tipo, año); los huecos
// por rollback son aceptables, la repetición no.
func FormatFolio(tipo string, anio, consecutivo int) string {
	return fmt.Sprintf("%s-%d-%04d", tipo, anio, consecutivo)
}
