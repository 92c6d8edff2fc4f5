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

// PagoUseCase es el libro de pagos: aplica y revierte abonos contra notas de
// venta y de proveedor manteniendo el invariante saldo = total - total_pagado
// (con tolerancia de un centavo). Cada operación es una sola transacción:
// la nota se lee con bloqueo de fila para que dos abonos concurrentes no
// partan del mismo saldo, y el pago junto con el saldo se confirman juntos.
type PagoUseCase struct {
	tx       TxRunner
	notifier ports.Notifier
}

// NewPagoUseCase construye el caso de uso.
func NewPagoUseCase(tx TxRunner, notifier ports.Notifier) *PagoUseCase {
	return &PagoUseCase{tx: tx, notifier: notifier}
}

// validaPago aplica las guardas de negocio comunes a ambas notas.
func validaPago(monto, saldo decimal.Decimal, estado string) error {
	if estado == entity.NotaCancelada {
		return domain.ErrDocumentLocked
	}
	if !monto.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	// Una nota con saldo ya cubierto no admite más abonos: la tolerancia
	// absorbe el residuo de redondeo del último pago, no pagos adicionales.
	if billing.SaldoCubierto(saldo) || billing.ExcedeSaldo(monto, saldo) {
		return domain.ErrOverpayment
	}
	return nil
}

// nuevoPago materializa el abono a partir de la petición.
func nuevoPago(notaID string, in dto.PagoRequest) (*entity.Pago, error) {
	fecha, err := parseFecha(in.FechaPago, time.Now())
	if err != nil {
		return nil, err
	}
	return &entity.Pago{
		ID:         uuid.New().String(),
		NotaID:     notaID,
		Monto:      in.Monto.Round(2),
		FechaPago:  fecha,
		MetodoPago: in.MetodoPago,
		Memo:       in.Memo,
		CreatedAt:  time.Now(),
	}, nil
}

// ApplyPagoVenta abona a una nota de venta. Promueve el estado a Pagada
// cuando el saldo queda cubierto (≤ 0.01).
func (uc *PagoUseCase) ApplyPagoVenta(ctx context.Context, notaID string, in dto.PagoRequest) (*dto.NotaVentaResponse, error) {
	var n *entity.NotaVenta
	err := uc.tx.Run(ctx, func(r Repos) error {
		var err error
		n, err = r.NotasVenta.GetByIDForUpdate(notaID)
		if err != nil {
			return err
		}
		if n == nil {
			return domain.ErrNotFound
		}
		if err := validaPago(in.Monto, n.Saldo, n.Estado); err != nil {
			return err
		}
		pago, err := nuevoPago(n.ID, in)
		if err != nil {
			return err
		}
		if err := r.NotasVenta.CreatePago(pago); err != nil {
			return err
		}
		n.TotalPagado = n.TotalPagado.Add(pago.Monto).Round(2)
		n.Saldo = n.Total.Sub(n.TotalPagado).Round(2)
		n.Estado = estadoNota(n.Estado, n.TotalPagado, n.Saldo, n.Total)
		n.Pagos = append(n.Pagos, pago)
		return r.NotasVenta.ActualizarSaldo(n.ID, n.TotalPagado, n.Saldo, n.Estado)
	})
	if err != nil {
		return nil, err
	}
	resp := notaVentaToResponse(n)
	uc.notifier.Broadcast(ports.Event{Type: "nota_venta_actualizado", Data: resp})
	return resp, nil
}

// ReversePagoVenta elimina un abono y restaura total_pagado/saldo; si la nota
// estaba Pagada y el saldo vuelve a ser positivo, regresa a Registrado.
// ErrNotFound cuando el pago ya fue reversado por otro llamador.
func (uc *PagoUseCase) ReversePagoVenta(ctx context.Context, pagoID string) (*dto.NotaVentaResponse, error) {
	var n *entity.NotaVenta
	err := uc.tx.Run(ctx, func(r Repos) error {
		pago, err := r.NotasVenta.GetPago(pagoID)
		if err != nil {
			return err
		}
		if pago == nil {
			return domain.ErrNotFound
		}
		n, err = r.NotasVenta.GetByIDForUpdate(pago.NotaID)
		if err != nil {
			return err
		}
		if n == nil {
			return domain.ErrNotFound
		}
		if n.Estado == entity.NotaCancelada {
			return domain.ErrDocumentLocked
		}
		ok, err := r.NotasVenta.DeletePago(pagoID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		n.TotalPagado = n.TotalPagado.Sub(pago.Monto).Round(2)
		n.Saldo = n.Total.Sub(n.TotalPagado).Round(2)
		n.Estado = estadoNota(n.Estado, n.TotalPagado, n.Saldo, n.Total)
		n.Pagos = sinPago(n.Pagos, pagoID)
		return r.NotasVenta.ActualizarSaldo(n.ID, n.TotalPagado, n.Saldo, n.Estado)
	})
	if err != nil {
		return nil, err
	}
	resp := notaVentaToResponse(n)
	uc.notifier.Broadcast(ports.Event{Type: "nota_venta_actualizado", Data: resp})
	return resp, nil
}

// ApplyPagoProveedor abona a una nota de proveedor.
func (uc *PagoUseCase) ApplyPagoProveedor(ctx context.Context, notaID string, in dto.PagoRequest) (*dto.NotaProveedorResponse, error) {
	var n *entity.NotaProveedor
	err := uc.tx.Run(ctx, func(r Repos) error {
		var err error
		n, err = r.NotasProveedor.GetByIDForUpdate(notaID)
		if err != nil {
			return err
		}
		if n == nil {
			return domain.ErrNotFound
		}
		if err := validaPago(in.Monto, n.Saldo, n.Estado); err != nil {
			return err
		}
		pago, err := nuevoPago(n.ID, in)
		if err != nil {
			return err
		}
		if err := r.NotasProveedor.CreatePago(pago); err != nil {
			return err
		}
		n.TotalPagado = n.TotalPagado.Add(pago.Monto).Round(2)
		n.Saldo = n.Total.Sub(n.TotalPagado).Round(2)
		n.Estado = estadoNota(n.Estado, n.TotalPagado, n.Saldo, n.Total)
		n.Pagos = append(n.Pagos, pago)
		return r.NotasProveedor.ActualizarSaldo(n.ID, n.TotalPagado, n.Saldo, n.Estado)
	})
	if err != nil {
		return nil, err
	}
	resp := notaProveedorToResponse(n)
	uc.notifier.Broadcast(ports.Event{Type: "nota_proveedor_actualizado", Data: resp})
	return resp, nil
}

// ReversePagoProveedor elimina un abono de una nota de proveedor.
func (uc *PagoUseCase) ReversePagoProveedor(ctx context.Context, pagoID string) (*dto.NotaProveedorResponse, error) {
	var n *entity.NotaProveedor
	err := uc.tx.Run(ctx, func(r Repos) error {
		pago, err := r.NotasProveedor.GetPago(pagoID)
		if err != nil {
			return err
		}
		if pago == nil {
			return domain.ErrNotFound
		}
		n, err = r.NotasProveedor.GetByIDForUpdate(pago.NotaID)
		if err != nil {
			return err
		}
		if n == nil {
			return domain.ErrNotFound
		}
		if n.Estado == entity.NotaCancelada {
			return domain.ErrDocumentLocked
		}
		ok, err := r.NotasProveedor.DeletePago(pagoID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		n.TotalPagado = n.TotalPagado.Sub(pago.Monto).Round(2)
		n.Saldo = n.Total.Sub(n.TotalPagado).Round(2)
		n.Estado = estadoNota(n.Estado, n.TotalPagado, n.Saldo, n.Total)
		n.Pagos = sinPago(n.Pagos, pagoID)
		return r.NotasProveedor.ActualizarSaldo(n.ID, n.TotalPagado, n.Saldo, n.Estado)
	})
	if err != nil {
		return nil, err
	}
	resp := notaProveedorToResponse(n)
	uc.notifier.Broadcast(ports.Event{Type: "nota_proveedor_actualizado", Data: resp})
	return resp, nil
}

func sinPago(pagos []*entity.Pago, pagoID string) []*entity.Pago {
	out := pagos[:0]
	for _, p := range pagos {
		if p.ID != pagoID {
			out = append(out, p)
		}
	}
	return out
}
