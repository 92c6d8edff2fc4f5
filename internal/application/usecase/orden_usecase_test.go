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

func ordenUC(st *store, notifier *stubNotifier) *usecase.OrdenUseCase {
	return usecase.NewOrdenUseCase(&stubTx{st}, &stubOrdenes{st}, &stubClientes{st}, notifier)
}

func ordenReq() dto.OrdenRequest {
	return dto.OrdenRequest{
		ClienteID:    "cli-1",
		FechaEmision: "2025-04-10",
		Marca:        "Nissan",
		Modelo:       "Versa",
		Anio:         2019,
		Placas:       "ABC-123-D",
		Kilometraje:  84500,
		Items: []dto.ItemRequest{
			{Cantidad: dec("1"), Descripcion: "revisión de frenos", PrecioUnitario: dec("999.00")},
			{Tipo: entity.ItemSeccion, Descripcion: "DIAGNÓSTICO"},
		},
	}
}

func TestOrdenCreate_RenglonesSinPrecio(t *testing.T) {
	st := newStore()
	seedCliente(st, "cli-1")
	notifier := &stubNotifier{}
	uc := ordenUC(st, notifier)

	resp, err := uc.Create(context.Background(), ordenReq())
	require.NoError(t, err)

	assert.Equal(t, "ORD-2025-0001", resp.Folio)
	assert.Equal(t, entity.OrdenPendiente, resp.Estado)
	assert.Equal(t, "Versa", resp.Modelo)
	for _, it := range resp.Items {
		assert.True(t, it.PrecioUnitario.IsZero(), "el precio llega hasta la facturación")
		assert.True(t, it.Importe.IsZero())
	}
	assert.Equal(t, []string{"orden_creado"}, notifier.types())
}

func TestOrdenCambiarEstado_FlujoCompleto(t *testing.T) {
	st := newStore()
	seedCliente(st, "cli-1")
	uc := ordenUC(st, &stubNotifier{})

	created, err := uc.Create(context.Background(), ordenReq())
	require.NoError(t, err)

	resp, err := uc.CambiarEstado(context.Background(), created.ID, dto.OrdenEstadoRequest{Estado: entity.OrdenEnProceso})
	require.NoError(t, err)
	assert.Equal(t, entity.OrdenEnProceso, resp.Estado)

	resp, err = uc.CambiarEstado(context.Background(), created.ID, dto.OrdenEstadoRequest{Estado: entity.OrdenCompletada})
	require.NoError(t, err)
	assert.Equal(t, entity.OrdenCompletada, resp.Estado)
}

// Pendiente puede saltar directo a Completada (trabajo exprés).
func TestOrdenCambiarEstado_SaltoDirectoACompletada(t *testing.T) {
	st := newStore()
	seedCliente(st, "cli-1")
	uc := ordenUC(st, &stubNotifier{})

	created, err := uc.Create(context.Background(), ordenReq())
	require.NoError(t, err)

	resp, err := uc.CambiarEstado(context.Background(), created.ID, dto.OrdenEstadoRequest{Estado: entity.OrdenCompletada})
	require.NoError(t, err)
	assert.Equal(t, entity.OrdenCompletada, resp.Estado)
}

func TestOrdenCambiarEstado_TransicionesIlegales(t *testing.T) {
	st := newStore()
	seedCliente(st, "cli-1")
	uc := ordenUC(st, &stubNotifier{})

	created, err := uc.Create(context.Background(), ordenReq())
	require.NoError(t, err)

	// Retroceso y estados reservados a conversión/cancelación.
	for _, hacia := range []string{entity.OrdenPendiente, entity.OrdenFacturada, entity.OrdenCancelada} {
		_, err = uc.CambiarEstado(context.Background(), created.ID, dto.OrdenEstadoRequest{Estado: hacia})
		assert.ErrorIs(t, err, domain.ErrInvalidState, "hacia %s", hacia)
	}

	_, err = uc.CambiarEstado(context.Background(), created.ID, dto.OrdenEstadoRequest{Estado: entity.OrdenCompletada})
	require.NoError(t, err)

	_, err = uc.CambiarEstado(context.Background(), created.ID, dto.OrdenEstadoRequest{Estado: entity.OrdenEnProceso})
	assert.ErrorIs(t, err, domain.ErrInvalidState, "Completada no retrocede")
}

func TestOrdenUpdate_FacturadaEstaCongelada(t *testing.T) {
	st := newStore()
	seedCliente(st, "cli-1")
	uc := ordenUC(st, &stubNotifier{})

	created, err := uc.Create(context.Background(), ordenReq())
	require.NoError(t, err)
	st.ordenes[created.ID].Estado = entity.OrdenFacturada
	st.ordenes[created.ID].NotaFolio = "NV-2025-0001"

	_, err = uc.Update(context.Background(), created.ID, ordenReq())
	assert.ErrorIs(t, err, domain.ErrDocumentLocked)
}

func TestOrdenCancelar_SoloAntesDeCompletar(t *testing.T) {
	st := newStore()
	seedCliente(st, "cli-1")
	uc := ordenUC(st, &stubNotifier{})

	created, err := uc.Create(context.Background(), ordenReq())
	require.NoError(t, err)

	resp, err := uc.Cancelar(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrdenCancelada, resp.Estado)

	_, err = uc.Cancelar(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
}

func TestOrdenCancelar_CompletadaYFacturada(t *testing.T) {
	st := newStore()
	seedCliente(st, "cli-1")
	uc := ordenUC(st, &stubNotifier{})

	created, err := uc.Create(context.Background(), ordenReq())
	require.NoError(t, err)

	st.ordenes[created.ID].Estado = entity.OrdenCompletada
	_, err = uc.Cancelar(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "Completada se factura, no se cancela")

	st.ordenes[created.ID].Estado = entity.OrdenFacturada
	st.ordenes[created.ID].NotaFolio = "NV-2025-0001"
	_, err = uc.Cancelar(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentLocked)
}
