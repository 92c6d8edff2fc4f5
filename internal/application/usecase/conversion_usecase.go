package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/application/ports"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/billing"
	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// ConversionUseCase aplica las reglas de conversión de un solo sentido y a lo
// más una vez: Cotizacion→NotaVenta y Orden→NotaVenta. La marca del documento
// origen y el alta de la nota se confirman en la misma transacción; una
// conversión a medias (nota creada, origen sin marcar) es el peor modo de
// falla y se previene aquí.
type ConversionUseCase struct {
	tx       TxRunner
	notifier ports.Notifier
}

// NewConversionUseCase construye el caso de uso.
func NewConversionUseCase(tx TxRunner, notifier ports.Notifier) *ConversionUseCase {
	return &ConversionUseCase{tx: tx, notifier: notifier}
}

// ConvertCotizacion convierte una cotización Pendiente en una nota de venta
// Registrado con los renglones copiados tal cual (precio, cantidad e
// impuesto). La cotización queda Aceptada con nota_folio fijado.
//
// Si dos llamadores compiten por la misma cotización, el compare-and-set
// sobre nota_folio decide: exactamente uno gana y el perdedor recibe
// ErrAlreadyConverted sin crear una nota duplicada.
func (uc *ConversionUseCase) ConvertCotizacion(ctx context.Context, cotizacionID string) (*dto.NotaVentaResponse, error) {
	var (
		nota *entity.NotaVenta
		cot  *entity.Cotizacion
	)
	err := uc.tx.Run(ctx, func(r Repos) error {
		var err error
		cot, err = r.Cotizaciones.GetByID(cotizacionID)
		if err != nil {
			return err
		}
		if cot == nil {
			return domain.ErrNotFound
		}
		if cot.Convertida() {
			return domain.ErrAlreadyConverted
		}
		if cot.Estado != entity.CotizacionPendiente {
			return domain.ErrInvalidState
		}

		now := time.Now()
		anio := now.Year()
		seq, err := r.Folios.Next(billing.TipoNotaVenta, anio)
		if err != nil {
			return err
		}
		notaFolio := billing.FormatFolio(billing.TipoNotaVenta, anio, seq)

		// CAS primero: si otro llamador ya convirtió, salimos sin crear nada.
		ok, err := r.Cotizaciones.MarcarConvertida(cot.ID, notaFolio)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrAlreadyConverted
		}

		nota = &entity.NotaVenta{
			ID:              uuid.New().String(),
			Folio:           notaFolio,
			ClienteID:       cot.ClienteID,
			Estado:          entity.NotaRegistrada,
			Fecha:           now,
			TotalPagado:     decimal.Zero,
			CotizacionFolio: cot.Folio,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		nota.Items = copiaItems(nota.ID, cot.Items, true)
		nota.Subtotal, nota.Impuestos, nota.Total = billing.ComputeTotals(nota.Items)
		nota.Saldo = nota.Total
		if err := r.NotasVenta.Create(nota); err != nil {
			return err
		}
		cot.NotaFolio = notaFolio
		cot.Estado = entity.CotizacionAceptada
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := notaVentaToResponse(nota)
	uc.notifier.Broadcast(ports.Event{Type: "nota_venta_creado", Data: resp})
	uc.notifier.Broadcast(ports.Event{Type: "cotizacion_actualizado", Data: cotizacionToResponse(cot)})
	return resp, nil
}

// ConvertOrden convierte una orden Completada en una nota de venta Borrador
// con los renglones copiados a precio 0.00, lista para que el vendedor la
// cotice. La orden pasa a Facturada, estado terminal.
func (uc *ConversionUseCase) ConvertOrden(ctx context.Context, ordenID string) (*dto.NotaVentaResponse, error) {
	var (
		nota  *entity.NotaVenta
		orden *entity.Orden
	)
	err := uc.tx.Run(ctx, func(r Repos) error {
		var err error
		orden, err = r.Ordenes.GetByID(ordenID)
		if err != nil {
			return err
		}
		if orden == nil {
			return domain.ErrNotFound
		}
		if orden.Convertida() {
			return domain.ErrAlreadyConverted
		}
		if orden.Estado != entity.OrdenCompletada {
			return domain.ErrInvalidState
		}

		now := time.Now()
		anio := now.Year()
		seq, err := r.Folios.Next(billing.TipoNotaVenta, anio)
		if err != nil {
			return err
		}
		notaFolio := billing.FormatFolio(billing.TipoNotaVenta, anio, seq)

		ok, err := r.Ordenes.MarcarFacturada(orden.ID, notaFolio)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrAlreadyConverted
		}

		nota = &entity.NotaVenta{
			ID:          uuid.New().String(),
			Folio:       notaFolio,
			ClienteID:   orden.ClienteID,
			Estado:      entity.NotaBorrador,
			Fecha:       now,
			TotalPagado: decimal.Zero,
			OrdenFolio:  orden.Folio,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		nota.Items = copiaItems(nota.ID, orden.Items, false)
		nota.Subtotal, nota.Impuestos, nota.Total = billing.ComputeTotals(nota.Items)
		nota.Saldo = nota.Total
		if err := r.NotasVenta.Create(nota); err != nil {
			return err
		}
		orden.NotaFolio = notaFolio
		orden.Estado = entity.OrdenFacturada
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := notaVentaToResponse(nota)
	uc.notifier.Broadcast(ports.Event{Type: "nota_venta_creado", Data: resp})
	uc.notifier.Broadcast(ports.Event{Type: "orden_actualizado", Data: ordenToResponse(orden)})
	return resp, nil
}
