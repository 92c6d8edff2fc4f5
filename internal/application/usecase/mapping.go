package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/billing"
	"github.com/tallerpro/taller-api/internal/domain/entity"
)

const fechaLayout = "2006-01-02"

// impuestoDefault es la tasa de IVA aplicada cuando el renglón no la trae.
var impuestoDefault = decimal.NewFromFloat(16.0)

// parseFecha acepta YYYY-MM-DD o RFC 3339. Vacío devuelve def.
func parseFecha(s string, def time.Time) (time.Time, error) {
	if s == "" {
		return def, nil
	}
	if t, err := time.Parse(fechaLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, domain.ErrValidation
	}
	return t, nil
}

// itemsFromRequest valida y materializa los renglones de un documento.
// conPrecio=false (órdenes y documentos aún sin cotizar) fuerza precio e
// impuesto a cero. Los renglones de presentación solo llevan descripción.
func itemsFromRequest(documentoID string, in []dto.ItemRequest, conPrecio bool) ([]*entity.Item, error) {
	if len(in) == 0 {
		return nil, domain.ErrValidation
	}
	items := make([]*entity.Item, 0, len(in))
	for i, req := range in {
		tipo := req.Tipo
		if tipo == "" {
			tipo = entity.ItemNormal
		}
		switch tipo {
		case entity.ItemNormal, entity.ItemNota, entity.ItemSeccion, entity.ItemCondiciones:
		default:
			return nil, domain.ErrValidation
		}
		it := &entity.Item{
			ID:          uuid.New().String(),
			DocumentoID: documentoID,
			Tipo:        tipo,
			Descripcion: req.Descripcion,
			Posicion:    i,
		}
		if tipo == entity.ItemNormal {
			if req.Descripcion == "" || !req.Cantidad.GreaterThan(decimal.Zero) {
				return nil, domain.ErrValidation
			}
			it.Cantidad = req.Cantidad
			if conPrecio {
				if req.PrecioUnitario.LessThan(decimal.Zero) {
					return nil, domain.ErrValidation
				}
				it.PrecioUnitario = req.PrecioUnitario
				if req.Impuesto != nil {
					if req.Impuesto.LessThan(decimal.Zero) {
						return nil, domain.ErrValidation
					}
					it.Impuesto = req.Impuesto.Round(1)
				} else {
					it.Impuesto = impuestoDefault
				}
			} else {
				it.PrecioUnitario = decimal.Zero
				it.Impuesto = decimal.Zero
			}
		}
		it.Importe = billing.Importe(it)
		items = append(items, it)
	}
	return items, nil
}

// copiaItems duplica renglones hacia otro documento. Con precio=false los
// copia a precio cero (conversión de orden a nota borrador).
func copiaItems(documentoID string, items []*entity.Item, conPrecio bool) []*entity.Item {
	out := make([]*entity.Item, 0, len(items))
	for _, src := range items {
		it := &entity.Item{
			ID:          uuid.New().String(),
			DocumentoID: documentoID,
			Tipo:        src.Tipo,
			Cantidad:    src.Cantidad,
			Descripcion: src.Descripcion,
			Posicion:    src.Posicion,
		}
		if conPrecio {
			it.PrecioUnitario = src.PrecioUnitario
			it.Impuesto = src.Impuesto
		} else {
			it.PrecioUnitario = decimal.Zero
			it.Impuesto = decimal.Zero
		}
		it.Importe = billing.Importe(it)
		out = append(out, it)
	}
	return out
}

func itemsToResponse(items []*entity.Item) []dto.ItemResponse {
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ItemResponse{
			ID:             it.ID,
			Tipo:           it.Tipo,
			Cantidad:       it.Cantidad,
			Descripcion:    it.Descripcion,
			PrecioUnitario: it.PrecioUnitario,
			Impuesto:       it.Impuesto,
			Importe:        it.Importe,
		})
	}
	return out
}

func pagosToResponse(pagos []*entity.Pago) []dto.PagoResponse {
	out := make([]dto.PagoResponse, 0, len(pagos))
	for _, p := range pagos {
		out = append(out, dto.PagoResponse{
			ID:         p.ID,
			Monto:      p.Monto,
			FechaPago:  p.FechaPago.Format(fechaLayout),
			MetodoPago: p.MetodoPago,
			Memo:       p.Memo,
		})
	}
	return out
}

func cotizacionToResponse(c *entity.Cotizacion) *dto.CotizacionResponse {
	return &dto.CotizacionResponse{
		ID:           c.ID,
		Folio:        c.Folio,
		ClienteID:    c.ClienteID,
		Estado:       c.Estado,
		FechaEmision: c.FechaEmision.Format(fechaLayout),
		Vigencia:     c.Vigencia.Format(fechaLayout),
		Items:        itemsToResponse(c.Items),
		Subtotal:     c.Subtotal,
		Impuestos:    c.Impuestos,
		Total:        c.Total,
		NotaFolio:    c.NotaFolio,
	}
}

func ordenToResponse(o *entity.Orden) *dto.OrdenResponse {
	return &dto.OrdenResponse{
		ID:           o.ID,
		Folio:        o.Folio,
		ClienteID:    o.ClienteID,
		Estado:       o.Estado,
		FechaEmision: o.FechaEmision.Format(fechaLayout),
		Marca:        o.Marca,
		Modelo:       o.Modelo,
		Anio:         o.Anio,
		Placas:       o.Placas,
		Kilometraje:  o.Kilometraje,
		Items:        itemsToResponse(o.Items),
		NotaFolio:    o.NotaFolio,
	}
}

func notaVentaToResponse(n *entity.NotaVenta) *dto.NotaVentaResponse {
	return &dto.NotaVentaResponse{
		ID:              n.ID,
		Folio:           n.Folio,
		ClienteID:       n.ClienteID,
		Estado:          n.Estado,
		Fecha:           n.Fecha.Format(fechaLayout),
		Items:           itemsToResponse(n.Items),
		Subtotal:        n.Subtotal,
		Impuestos:       n.Impuestos,
		Total:           n.Total,
		TotalPagado:     n.TotalPagado,
		Saldo:           n.Saldo,
		Pagos:           pagosToResponse(n.Pagos),
		CotizacionFolio: n.CotizacionFolio,
		OrdenFolio:      n.OrdenFolio,
	}
}

func notaProveedorToResponse(n *entity.NotaProveedor) *dto.NotaProveedorResponse {
	return &dto.NotaProveedorResponse{
		ID:          n.ID,
		Folio:       n.Folio,
		ProveedorID: n.ProveedorID,
		Estado:      n.Estado,
		Fecha:       n.Fecha.Format(fechaLayout),
		Items:       itemsToResponse(n.Items),
		Subtotal:    n.Subtotal,
		Impuestos:   n.Impuestos,
		Total:       n.Total,
		TotalPagado: n.TotalPagado,
		Saldo:       n.Saldo,
		Pagos:       pagosToResponse(n.Pagos),
	}
}
