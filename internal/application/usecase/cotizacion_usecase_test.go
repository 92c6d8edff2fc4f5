package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/application/usecase"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
)

func cotizacionUC(st *store, notifier *stubNotifier) *usecase.CotizacionUseCase {
	return usecase.NewCotizacionUseCase(&stubTx{st}, &stubCotizaciones{st}, &stubClientes{st}, notifier)
}

func cotizacionReq() dto.CotizacionRequest {
	return dto.CotizacionRequest{
		ClienteID:    "cli-1",
		FechaEmision: "2025-03-01",
		Vigencia:     "2025-03-16",
		Items: []dto.ItemRequest{
			{Cantidad: dec("1"), Descripcion: "cambio de aceite", PrecioUnitario: dec("450.00")},
			{Tipo: entity.ItemNota, Descripcion: "incluye filtro"},
		},
	}
}

func TestCotizacionCreate_AsignaFolioYTotales(t *testing.T) {
	st := newStore()
	seedCliente(st, "cli-1")
	notifier := &stubNotifier{}
	uc := cotizacionUC(st, notifier)

	resp, err := uc.Create(context.Background(), cotizacionReq())
	require.NoError(t, err)

	assert.Equal(t, "COT-2025-0001", resp.Folio)
	assert.Equal(t, entity.CotizacionPendiente, resp.Estado)
	assert.True(t, dec("450.00").Equal(resp.Subtotal), "subtotal: %s", resp.Subtotal)
	assert.True(t, dec("522.00").Equal(resp.Total), "total: %s", resp.Total)
	assert.Equal(t, []string{"cotizacion_creado"}, notifier.types())

	// El consecutivo avanza por año, no por documento global.
	resp2, err := uc.Create(context.Background(), cotizacionReq())
	require.NoError(t, err)
	assert.Equal(t, "COT-2025-0002", resp2.Folio)
}

func TestCotizacionCreate_VigenciaDebeSerPosterior(t *testing.T) {
	st := newStore()
	seedCliente(st, "cli-1")
	uc := cotizacionUC(st, &stubNotifier{})

	in := cotizacionReq()
	in.Vigencia = "2025-03-01" // mismo día que la emisión
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrValidation)

	in.Vigencia = ""
	_, err = uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCotizacionCreate_ClienteInvalido(t *testing.T) {
	st := newStore()
	uc := cotizacionUC(st, &stubNotifier{})

	_, err := uc.Create(context.Background(), cotizacionReq())
	assert.ErrorIs(t, err, domain.ErrNotFound, "cliente inexistente")

	seedCliente(st, "cli-1")
	st.clientes["cli-1"].Activo = false
	_, err = uc.Create(context.Background(), cotizacionReq())
	assert.ErrorIs(t, err, domain.ErrValidation, "cliente desactivado")
}

func TestCotizacionCreate_SinRenglones(t *testing.T) {
	st := newStore()
	seedCliente(st, "cli-1")
	uc := cotizacionUC(st, &stubNotifier{})

	in := cotizacionReq()
	in.Items = nil
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCotizacionUpdate_RecalculaTotales(t *testing.T) {
	st := newStore()
	seedCliente(st, "cli-1")
	uc := cotizacionUC(st, &stubNotifier{})

	created, err := uc.Create(context.Background(), cotizacionReq())
	require.NoError(t, err)

	in := cotizacionReq()
	in.Items = []dto.ItemRequest{
		{Cantidad: dec("2"), Descripcion: "amortiguador", PrecioUnitario: dec("1200.00")},
	}
	resp, err := uc.Update(context.Background(), created.ID, in)
	require.NoError(t, err)
	assert.True(t, dec("2400.00").Equal(resp.Subtotal), "subtotal: %s", resp.Subtotal)
	assert.True(t, dec("2784.00").Equal(resp.Total), "total: %s", resp.Total)
	assert.Equal(t, created.Folio, resp.Folio, "el folio nunca cambia")
}

func TestCotizacionUpdate_ConvertidaEstaCongelada(t *testing.T) {
	st := newStore()
	seedCliente(st, "cli-1")
	uc := cotizacionUC(st, &stubNotifier{})

	created, err := uc.Create(context.Background(), cotizacionReq())
	require.NoError(t, err)
	st.cotizaciones[created.ID].NotaFolio = "NV-2025-0001"

	_, err = uc.Update(context.Background(), created.ID, cotizacionReq())
	assert.ErrorIs(t, err, domain.ErrDocumentLocked)
}

func TestCotizacionCancelar_DosVecesReportaYaCancelada(t *testing.T) {
	st := newStore()
	seedCliente(st, "cli-1")
	uc := cotizacionUC(st, &stubNotifier{})

	created, err := uc.Create(context.Background(), cotizacionReq())
	require.NoError(t, err)

	resp, err := uc.Cancelar(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CotizacionCancelada, resp.Estado)

	_, err = uc.Cancelar(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
}

func TestCotizacionCancelar_ConvertidaEstaBloqueada(t *testing.T) {
	st := newStore()
	seedCliente(st, "cli-1")
	uc := cotizacionUC(st, &stubNotifier{})

	created, err := uc.Create(context.Background(), cotizacionReq())
	require.NoError(t, err)
	st.cotizaciones[created.ID].NotaFolio = "NV-2025-0001"
	st.cotizaciones[created.ID].Estado = entity.CotizacionAceptada

	_, err = uc.Cancelar(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentLocked)
}

func TestCotizacionGet_NoExiste(t *testing.T) {
	st := newStore()
	uc := cotizacionUC(st, &stubNotifier{})

	_, err := uc.Get(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
