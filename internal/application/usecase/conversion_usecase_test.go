package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallerpro/taller-api/internal/application/usecase"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/billing"
	"github.com/tallerpro/taller-api/internal/domain/entity"
)

func seedCotizacionPendiente(st *store, id string) *entity.Cotizacion {
	items := []*entity.Item{
		{ID: "it-1", DocumentoID: id, Tipo: entity.ItemNormal, Cantidad: dec("1"),
			Descripcion: "cambio de balatas", PrecioUnitario: dec("500.00"), Impuesto: dec("16.0")},
		{ID: "it-2", DocumentoID: id, Tipo: entity.ItemNormal, Cantidad: dec("2"),
			Descripcion: "lata de limpiador", PrecioUnitario: dec("300.00"), Impuesto: dec("16.0")},
		{ID: "it-3", DocumentoID: id, Tipo: entity.ItemNota, Descripcion: "garantía 30 días"},
	}
	sub, imp, tot := billing.Normaliza(items)
	c := &entity.Cotizacion{
		ID:           id,
		Folio:        "COT-2025-0007",
		ClienteID:    "cli-1",
		Estado:       entity.CotizacionPendiente,
		FechaEmision: time.Now(),
		Vigencia:     time.Now().AddDate(0, 0, 15),
		Items:        items,
		Subtotal:     sub,
		Impuestos:    imp,
		Total:        tot,
	}
	st.cotizaciones[id] = c
	return c
}

func seedOrdenCompletada(st *store, id string) *entity.Orden {
	o := &entity.Orden{
		ID:           id,
		Folio:        "ORD-2025-0003",
		ClienteID:    "cli-1",
		Estado:       entity.OrdenCompletada,
		FechaEmision: time.Now(),
		Items: []*entity.Item{
			{ID: "it-10", DocumentoID: id, Tipo: entity.ItemNormal, Cantidad: dec("1"),
				Descripcion: "afinación mayor"},
			{ID: "it-11", DocumentoID: id, Tipo: entity.ItemSeccion, Descripcion: "REFACCIONES"},
		},
	}
	st.ordenes[id] = o
	return o
}

func TestConvertCotizacion_CreaNotaYMarcaOrigen(t *testing.T) {
	st := newStore()
	seedCliente(st, "cli-1")
	seedCotizacionPendiente(st, "cot-1")
	notifier := &stubNotifier{}
	uc := usecase.NewConversionUseCase(&stubTx{st}, notifier)

	resp, err := uc.ConvertCotizacion(context.Background(), "cot-1")
	require.NoError(t, err)

	assert.Equal(t, "NV-2025-0001", resp.Folio)
	assert.Equal(t, entity.NotaRegistrada, resp.Estado)
	assert.Equal(t, "COT-2025-0007", resp.CotizacionFolio)
	assert.Len(t, resp.Items, 3, "los renglones se copian completos, incluidas las notas")
	assert.True(t, dec("1276.00").Equal(resp.Total), "total: %s", resp.Total)
	assert.True(t, resp.Saldo.Equal(resp.Total), "una nota recién convertida debe deber todo")

	cot := st.cotizaciones["cot-1"]
	assert.Equal(t, entity.CotizacionAceptada, cot.Estado)
	assert.Equal(t, "NV-2025-0001", cot.NotaFolio)
	assert.Len(t, st.notasVenta, 1)
}

func TestConvertCotizacion_NoExiste(t *testing.T) {
	st := newStore()
	uc := usecase.NewConversionUseCase(&stubTx{st}, &stubNotifier{})

	_, err := uc.ConvertCotizacion(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConvertCotizacion_CanceladaEsEstadoIlegal(t *testing.T) {
	st := newStore()
	c := seedCotizacionPendiente(st, "cot-1")
	c.Estado = entity.CotizacionCancelada
	uc := usecase.NewConversionUseCase(&stubTx{st}, &stubNotifier{})

	_, err := uc.ConvertCotizacion(context.Background(), "cot-1")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Empty(t, st.notasVenta, "no debe crearse ninguna nota")
}

// La segunda conversión del mismo documento reporta ya-convertido, aun cuando
// el estado Aceptada también sería ilegal: el error de conversión previa tiene
// prioridad.
func TestConvertCotizacion_SegundaVezYaConvertida(t *testing.T) {
	st := newStore()
	seedCliente(st, "cli-1")
	seedCotizacionPendiente(st, "cot-1")
	notifier := &stubNotifier{}
	uc := usecase.NewConversionUseCase(&stubTx{st}, notifier)

	_, err := uc.ConvertCotizacion(context.Background(), "cot-1")
	require.NoError(t, err)

	_, err = uc.ConvertCotizacion(context.Background(), "cot-1")
	assert.ErrorIs(t, err, domain.ErrAlreadyConverted)
	assert.Len(t, st.notasVenta, 1, "no debe crearse una nota duplicada")
}

// Perdedor de carrera: el CAS falla aunque la lectura inicial vio Pendiente.
// El rollback de la transacción no debe dejar nota creada.
func TestConvertCotizacion_PerdedorDeCarreraNoCreaNota(t *testing.T) {
	st := newStore()
	seedCliente(st, "cli-1")
	c := seedCotizacionPendiente(st, "cot-1")
	uc := usecase.NewConversionUseCase(&racingTx{st: st, cotizacionID: c.ID}, &stubNotifier{})

	_, err := uc.ConvertCotizacion(context.Background(), "cot-1")
	assert.ErrorIs(t, err, domain.ErrAlreadyConverted)
	assert.Len(t, st.notasVenta, 1, "solo debe existir la nota del ganador")
	assert.Equal(t, "NV-2099-0001", st.cotizaciones["cot-1"].NotaFolio,
		"la marca del ganador debe sobrevivir al rollback del perdedor")
}

// racingTx simula a un competidor que convierte la misma cotización en una
// transacción propia, justo después de que el callback la leyó y antes del
// CAS. El commit del competidor sobrevive al rollback del perdedor.
type racingTx struct {
	st           *store
	cotizacionID string
	won          bool
}

func (t *racingTx) Run(_ context.Context, fn func(r usecase.Repos) error) error {
	snap := t.st.clone()
	err := fn(usecase.Repos{
		Folios:         &stubFolios{t.st},
		Cotizaciones:   &interceptCotizaciones{&stubCotizaciones{t.st}, t},
		Ordenes:        &stubOrdenes{t.st},
		NotasVenta:     &stubNotasVenta{t.st},
		NotasProveedor: &stubNotasProveedor{t.st},
	})
	if err != nil {
		*t.st = *snap
		if t.won {
			t.commitCompetitor()
		}
	}
	return err
}

// commitCompetitor aplica la conversión del ganador sobre el store.
func (t *racingTx) commitCompetitor() {
	c := t.st.cotizaciones[t.cotizacionID]
	c.NotaFolio = "NV-2099-0001"
	c.Estado = entity.CotizacionAceptada
	t.st.notasVenta["nota-ganadora"] = &entity.NotaVenta{
		ID: "nota-ganadora", Folio: "NV-2099-0001", ClienteID: c.ClienteID,
	}
}

type interceptCotizaciones struct {
	*stubCotizaciones
	tx *racingTx
}

func (r *interceptCotizaciones) MarcarConvertida(id, notaFolio string) (bool, error) {
	if !r.tx.won && id == r.tx.cotizacionID {
		// El competidor gana primero; dentro de esta transacción su marca ya
		// es visible y el CAS del perdedor falla.
		r.tx.won = true
		r.tx.commitCompetitor()
	}
	return r.stubCotizaciones.MarcarConvertida(id, notaFolio)
}

func TestConvertOrden_CreaBorradorSinPrecios(t *testing.T) {
	st := newStore()
	seedCliente(st, "cli-1")
	seedOrdenCompletada(st, "ord-1")
	notifier := &stubNotifier{}
	uc := usecase.NewConversionUseCase(&stubTx{st}, notifier)

	resp, err := uc.ConvertOrden(context.Background(), "ord-1")
	require.NoError(t, err)

	assert.Equal(t, entity.NotaBorrador, resp.Estado)
	assert.Equal(t, "ORD-2025-0003", resp.OrdenFolio)
	assert.True(t, resp.Total.IsZero(), "sin precios el total debe ser cero")
	for _, it := range resp.Items {
		assert.True(t, it.PrecioUnitario.IsZero())
		assert.True(t, it.Importe.IsZero())
	}

	orden := st.ordenes["ord-1"]
	assert.Equal(t, entity.OrdenFacturada, orden.Estado)
	assert.Equal(t, resp.Folio, orden.NotaFolio)
}

func TestConvertOrden_SoloCompletada(t *testing.T) {
	st := newStore()
	o := seedOrdenCompletada(st, "ord-1")
	o.Estado = entity.OrdenEnProceso
	uc := usecase.NewConversionUseCase(&stubTx{st}, &stubNotifier{})

	_, err := uc.ConvertOrden(context.Background(), "ord-1")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Empty(t, st.notasVenta)
}

func TestConvertOrden_FacturadaReportaYaConvertida(t *testing.T) {
	st := newStore()
	seedCliente(st, "cli-1")
	seedOrdenCompletada(st, "ord-1")
	uc := usecase.NewConversionUseCase(&stubTx{st}, &stubNotifier{})

	_, err := uc.ConvertOrden(context.Background(), "ord-1")
	require.NoError(t, err)

	_, err = uc.ConvertOrden(context.Background(), "ord-1")
	assert.ErrorIs(t, err, domain.ErrAlreadyConverted)
	assert.Len(t, st.notasVenta, 1)
}

// Las notificaciones solo salen cuando la conversión se confirmó.
func TestConvertCotizacion_NotificaSoloTrasExito(t *testing.T) {
	st := newStore()
	seedCliente(st, "cli-1")
	seedCotizacionPendiente(st, "cot-1")
	notifier := &stubNotifier{}
	uc := usecase.NewConversionUseCase(&stubTx{st}, notifier)

	_, err := uc.ConvertCotizacion(context.Background(), "no-existe")
	require.Error(t, err)
	assert.Empty(t, notifier.events, "un fallo no debe emitir eventos")

	_, err = uc.ConvertCotizacion(context.Background(), "cot-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"nota_venta_creado", "cotizacion_actualizado"}, notifier.types())
}
