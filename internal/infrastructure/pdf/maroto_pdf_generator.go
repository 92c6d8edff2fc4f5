// Package pdf implementa la representación impresa de una nota de venta.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del taller  │  Folio + Fecha + Estado       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + RFC + contacto                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | IVA | Importe         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuestos / TOTAL / Pagado / Saldo     │
//	│  PAGOS: fecha | método | monto                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// NotaPDFGenerator genera el PDF de una nota de venta usando Maroto v2.
type NotaPDFGenerator struct {
	tallerNombre string
}

// NewNotaPDFGenerator construye el generador con el nombre del taller para el encabezado.
func NewNotaPDFGenerator(tallerNombre string) *NotaPDFGenerator {
	return &NotaPDFGenerator{tallerNombre: tallerNombre}
}

// GenerateNotaPDF genera el PDF y devuelve sus bytes.
func (g *NotaPDFGenerator) GenerateNotaPDF(
	_ context.Context,
	nota *entity.NotaVenta,
	cliente *entity.Cliente,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Nota de Venta "+nota.Folio, true).
		WithAuthor(g.tallerNombre, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(nota, g.tallerNombre))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(cliente))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(nota.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(nota))

	if len(nota.Pagos) > 0 {
		m.AddRows(line.NewRow(2))
		for _, r := range pagosRows(nota.Pagos) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del taller (izq) y folio + fecha + estado (der).
func headerRow(nota *entity.NotaVenta, taller string) core.Row {
	fecha := nota.Fecha.Format("02/01/2006")
	origen := ""
	if nota.CotizacionFolio != "" {
		origen = "Origen: " + nota.CotizacionFolio
	} else if nota.OrdenFolio != "" {
		origen = "Origen: " + nota.OrdenFolio
	}

	return row.New(20).Add(
		col.New(7).Add(
			text.New(taller, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(origen, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("NOTA DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(nota.Folio, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("Fecha: %s   |   %s", fecha, nota.Estado), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// clienteRow: datos del cliente.
func clienteRow(cliente *entity.Cliente) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(cliente.Nombre, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("RFC: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(cliente.RFC, "—"),
				nonEmpty(cliente.Telefono, "—"),
				nonEmpty(cliente.Email, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de renglones.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 5, align.Left),
		h("P. Unit.", 2, align.Right),
		h("IVA%", 1, align.Center),
		h("Importe", 3, align.Right),
	)
}

// tableItemRows: una fila por renglón. Los renglones de texto (nota, sección,
// condiciones) ocupan el ancho completo sin columnas de precio.
func tableItemRows(items []*entity.Item) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		if !it.EsNormal() {
			style := props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1, Color: colorGray}
			if it.Tipo == entity.ItemSeccion {
				style = props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Left, Top: 1, Color: colorPrimary}
			}
			result = append(result, row.New(6).Add(
				col.New(12).Add(text.New(it.Descripcion, style)),
			))
			continue
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				it.Cantidad.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				it.Descripcion,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(it.PrecioUnitario),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				it.Impuesto.StringFixed(1),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				"$"+formatMoney(it.Importe),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales con pagado y saldo.
func totalsRow(nota *entity.NotaVenta) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(34).Add(
		col.New(3),
		col.New(4).Add(
			label("Subtotal:"),
			label("Impuestos:"),
			grandLabel("TOTAL:"),
			label("Pagado:"),
			grandLabel("SALDO:"),
		),
		col.New(4).Add(
			value("$"+formatMoney(nota.Subtotal)),
			value("$"+formatMoney(nota.Impuestos)),
			grandValue("$"+formatMoney(nota.Total)),
			value("$"+formatMoney(nota.TotalPagado)),
			grandValue("$"+formatMoney(nota.Saldo)),
		),
		col.New(1),
	)
}

// pagosRows: historial de abonos aplicados a la nota.
func pagosRows(pagos []*entity.Pago) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("PAGOS APLICADOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, p := range pagos {
		detalle := fmt.Sprintf("%s   |   %s", p.FechaPago.Format("02/01/2006"), p.MetodoPago)
		if p.Memo != "" {
			detalle += "   |   " + p.Memo
		}
		rows = append(rows, row.New(5).Add(
			col.New(8).Add(text.New(detalle, props.Text{Size: 8, Top: 1, Left: 2, Color: colorGray})),
			col.New(4).Add(text.New("$"+formatMoney(p.Monto), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea un monto con separador de miles y 2 decimales.
// Ej: 25000 → "25,000.00"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	entero, dec, _ := strings.Cut(s, ".")
	n := len(entero)
	if n > 3 {
		buf := make([]byte, 0, n+n/3)
		for i := 0; i < n; i++ {
			if i > 0 && (n-i)%3 == 0 {
				buf = append(buf, ',')
			}
			buf = append(buf, entero[i])
		}
		entero = string(buf)
	}
	out := entero + "." + dec
	if neg {
		out = "-" + out
	}
	return out
}
