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

func notaVentaUC(st *store, notifier *stubNotifier) *usecase.NotaVentaUseCase {
	return usecase.NewNotaVentaUseCase(&stubTx{st}, &stubNotasVenta{st}, &stubClientes{st}, notifier)
}

func notaReq() dto.NotaRequest {
	return dto.NotaRequest{
		ClienteID: "cli-1",
		Fecha:     "2025-05-20",
		Items: []dto.ItemRequest{
			{Cantidad: dec("1"), Descripcion: "servicio mayor", PrecioUnitario: dec("2500.00")},
		},
	}
}

func TestNotaVentaCreate_RegistradaConSaldoCompleto(t *testing.T) {
	st := newStore()
	seedCliente(st, "cli-1")
	notifier := &stubNotifier{}
	uc := notaVentaUC(st, notifier)

	resp, err := uc.Create(context.Background(), notaReq())
	require.NoError(t, err)

	assert.Equal(t, "NV-2025-0001", resp.Folio)
	assert.Equal(t, entity.NotaRegistrada, resp.Estado)
	assert.True(t, dec("2900.00").Equal(resp.Total), "total: %s", resp.Total)
	assert.True(t, resp.Saldo.Equal(resp.Total), "una nota directa nace debiendo todo")
	assert.True(t, resp.TotalPagado.IsZero())
	assert.Equal(t, []string{"nota_venta_creado"}, notifier.types())
}

// El nuevo total no puede quedar por debajo de lo ya pagado.
func TestNotaVentaUpdate_NoPuedeBajarDeLoPagado(t *testing.T) {
	st := newStore()
	seedCliente(st, "cli-1")
	uc := notaVentaUC(st, &stubNotifier{})
	pagos := usecase.NewPagoUseCase(&stubTx{st}, &stubNotifier{})

	created, err := uc.Create(context.Background(), notaReq())
	require.NoError(t, err)
	_, err = pagos.ApplyPagoVenta(context.Background(), created.ID, pago("2000.00"))
	require.NoError(t, err)

	in := notaReq()
	in.Items = []dto.ItemRequest{
		{Cantidad: dec("1"), Descripcion: "solo diagnóstico", PrecioUnitario: dec("500.00")},
	}
	_, err = uc.Update(context.Background(), created.ID, in)
	assert.ErrorIs(t, err, domain.ErrValidation)

	n := st.notasVenta[created.ID]
	assert.True(t, dec("2900.00").Equal(n.Total), "el total no debe moverse tras el rechazo")
}

// Una nota con abonos que al reducir su total queda cubierta pasa a Pagada.
func TestNotaVentaUpdate_ReduccionQueCubreElSaldoPromueve(t *testing.T) {
	st := newStore()
	seedCliente(st, "cli-1")
	uc := notaVentaUC(st, &stubNotifier{})
	pagos := usecase.NewPagoUseCase(&stubTx{st}, &stubNotifier{})

	created, err := uc.Create(context.Background(), notaReq())
	require.NoError(t, err)
	_, err = pagos.ApplyPagoVenta(context.Background(), created.ID, pago("1160.00"))
	require.NoError(t, err)

	in := notaReq()
	in.Items = []dto.ItemRequest{
		{Cantidad: dec("1"), Descripcion: "servicio ajustado", PrecioUnitario: dec("1000.00")},
	}
	resp, err := uc.Update(context.Background(), created.ID, in)
	require.NoError(t, err)
	assert.True(t, resp.Saldo.IsZero(), "saldo: %s", resp.Saldo)
	assert.Equal(t, entity.NotaPagada, resp.Estado)
}

func TestNotaVentaCancelar_DosVeces(t *testing.T) {
	st := newStore()
	seedCliente(st, "cli-1")
	notifier := &stubNotifier{}
	uc := notaVentaUC(st, notifier)

	created, err := uc.Create(context.Background(), notaReq())
	require.NoError(t, err)

	resp, err := uc.Cancelar(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.NotaCancelada, resp.Estado)

	_, err = uc.Cancelar(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
}

func TestNotaVentaUpdate_CanceladaEstaCongelada(t *testing.T) {
	st := newStore()
	seedCliente(st, "cli-1")
	uc := notaVentaUC(st, &stubNotifier{})

	created, err := uc.Create(context.Background(), notaReq())
	require.NoError(t, err)
	_, err = uc.Cancelar(context.Background(), created.ID)
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), created.ID, notaReq())
	assert.ErrorIs(t, err, domain.ErrDocumentLocked)
}

// Update recalcula total_pagado/saldo, así que también lee con bloqueo de
// fila para no pisar un abono concurrente.
func TestNotaVentaUpdate_LeeLaNotaConBloqueoDeFila(t *testing.T) {
	st := newStore()
	seedCliente(st, "cli-1")
	seedNotaVenta(st, "nv-1", "1000.00")
	tx := newCandadoTx(st)
	uc := usecase.NewNotaVentaUseCase(tx, &stubNotasVenta{st}, &stubClientes{st}, &stubNotifier{})

	_, err := uc.Update(context.Background(), "nv-1", notaReq())
	require.NoError(t, err)
	assert.Equal(t, 1, tx.venta.conBloqueo)
	assert.Zero(t, tx.venta.sinBloqueo)
}

func TestNotaVentaGetEntityConCliente(t *testing.T) {
	st := newStore()
	seedCliente(st, "cli-1")
	uc := notaVentaUC(st, &stubNotifier{})

	created, err := uc.Create(context.Background(), notaReq())
	require.NoError(t, err)

	n, cliente, err := uc.GetEntityConCliente(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Folio, n.Folio)
	assert.Equal(t, "Juan Pérez", cliente.Nombre)

	_, _, err = uc.GetEntityConCliente(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
