// Package cfdi construye la representación XML de una nota de venta con la
// estructura del CFDI 4.0 (SAT, México), sin timbrar ni firmar. Sirve como
// archivo de intercambio para el contador del taller.
package cfdi

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// Namespaces del esquema CFDI 4.0.
const (
	nsCfdi         = "http://www.sat.gob.mx/cfd/4"
	nsXsi          = "http://www.w3.org/2001/XMLSchema-instance"
	schemaLocation = "http://www.sat.gob.mx/cfd/4 http://www.sat.gob.mx/sitio_internet/cfd/4/cfdv40.xsd"
)

// Emisor son los datos fiscales del taller que emite el comprobante.
type Emisor struct {
	RFC           string
	Nombre        string
	RegimenFiscal string
	CodigoPostal  string
}

// XMLBuilder construye el comprobante de una nota de venta.
type XMLBuilder struct {
	emisor Emisor
}

// NewXMLBuilder crea el builder con los datos del emisor.
func NewXMLBuilder(emisor Emisor) *XMLBuilder {
	return &XMLBuilder{emisor: emisor}
}

// Build genera el XML del comprobante. Solo los renglones con precio entran
// como conceptos; los renglones de texto no tienen representación fiscal.
func (b *XMLBuilder) Build(nota *entity.NotaVenta, cliente *entity.Cliente) ([]byte, error) {
	if nota == nil || cliente == nil {
		return nil, fmt.Errorf("cfdi: faltan nota o cliente")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	comp := doc.CreateElement("cfdi:Comprobante")
	comp.CreateAttr("xmlns:cfdi", nsCfdi)
	comp.CreateAttr("xmlns:xsi", nsXsi)
	comp.CreateAttr("xsi:schemaLocation", schemaLocation)
	comp.CreateAttr("Version", "4.0")
	comp.CreateAttr("Folio", nota.Folio)
	comp.CreateAttr("Fecha", nota.Fecha.Format("2006-01-02T15:04:05"))
	comp.CreateAttr("SubTotal", nota.Subtotal.StringFixed(2))
	comp.CreateAttr("Total", nota.Total.StringFixed(2))
	comp.CreateAttr("Moneda", "MXN")
	comp.CreateAttr("TipoDeComprobante", "I")
	comp.CreateAttr("Exportacion", "01")
	comp.CreateAttr("LugarExpedicion", b.emisor.CodigoPostal)
	comp.CreateAttr("MetodoPago", metodoPago(nota))
	comp.CreateAttr("FormaPago", formaPago(nota.Pagos))

	em := comp.CreateElement("cfdi:Emisor")
	em.CreateAttr("Rfc", b.emisor.RFC)
	em.CreateAttr("Nombre", b.emisor.Nombre)
	em.CreateAttr("RegimenFiscal", b.emisor.RegimenFiscal)

	rec := comp.CreateElement("cfdi:Receptor")
	rec.CreateAttr("Rfc", rfcGenerico(cliente.RFC))
	rec.CreateAttr("Nombre", cliente.Nombre)
	rec.CreateAttr("UsoCFDI", "G03")

	conceptos := comp.CreateElement("cfdi:Conceptos")
	totalTraslados := decimal.Zero
	for _, it := range nota.Items {
		if !it.EsNormal() {
			continue
		}
		totalTraslados = totalTraslados.Add(writeConcepto(conceptos, it))
	}

	if totalTraslados.IsPositive() {
		imp := comp.CreateElement("cfdi:Impuestos")
		imp.CreateAttr("TotalImpuestosTrasladados", nota.Impuestos.StringFixed(2))
		traslados := imp.CreateElement("cfdi:Traslados")
		tr := traslados.CreateElement("cfdi:Traslado")
		tr.CreateAttr("Base", nota.Subtotal.StringFixed(2))
		tr.CreateAttr("Impuesto", "002")
		tr.CreateAttr("TipoFactor", "Tasa")
		tr.CreateAttr("TasaOCuota", "0.160000")
		tr.CreateAttr("Importe", nota.Impuestos.StringFixed(2))
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

// writeConcepto agrega el concepto de un renglón y devuelve su IVA trasladado.
func writeConcepto(parent *etree.Element, it *entity.Item) decimal.Decimal {
	c := parent.CreateElement("cfdi:Concepto")
	c.CreateAttr("ClaveProdServ", "01010101")
	c.CreateAttr("Cantidad", it.Cantidad.String())
	c.CreateAttr("ClaveUnidad", "E48")
	c.CreateAttr("Descripcion", it.Descripcion)
	c.CreateAttr("ValorUnitario", it.PrecioUnitario.StringFixed(2))
	c.CreateAttr("Importe", it.Importe.StringFixed(2))
	c.CreateAttr("ObjetoImp", "02")

	tasa := it.Impuesto.Div(decimal.NewFromInt(100))
	iva := it.Importe.Mul(tasa).Round(2)

	imp := c.CreateElement("cfdi:Impuestos")
	traslados := imp.CreateElement("cfdi:Traslados")
	tr := traslados.CreateElement("cfdi:Traslado")
	tr.CreateAttr("Base", it.Importe.StringFixed(2))
	tr.CreateAttr("Impuesto", "002")
	tr.CreateAttr("TipoFactor", "Tasa")
	tr.CreateAttr("TasaOCuota", tasa.StringFixed(6))
	tr.CreateAttr("Importe", iva.StringFixed(2))
	return iva
}

// metodoPago mapea el estado de cobro: PUE si ya quedó pagada, PPD si hay
// saldo pendiente (pago en parcialidades o diferido).
func metodoPago(nota *entity.NotaVenta) string {
	if nota.Estado == entity.NotaPagada {
		return "PUE"
	}
	return "PPD"
}

// formaPago toma el método del primer abono; sin pagos es "99" (por definir).
func formaPago(pagos []*entity.Pago) string {
	if len(pagos) == 0 {
		return "99"
	}
	switch pagos[0].MetodoPago {
	case entity.PagoEfectivo:
		return "01"
	case entity.PagoCheque:
		return "02"
	case entity.PagoTransferencia:
		return "03"
	case entity.PagoTarjeta:
		return "04"
	default:
		return "99"
	}
}

// rfcGenerico devuelve el RFC del cliente o el genérico nacional del SAT.
func rfcGenerico(rfc string) string {
	if rfc == "" {
		return "XAXX010101000"
	}
	return rfc
}
