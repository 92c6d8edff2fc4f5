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
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

// NotaVentaUseCase cubre altas directas, edición y cancelación de notas de
// venta. Los pagos viven en PagoUseCase y la conversión en ConversionUseCase.
type NotaVentaUseCase struct {
	tx          TxRunner
	notaRepo    repository.NotaVentaRepository
	clienteRepo repository.ClienteRepository
	notifier    ports.Notifier
}

// NewNotaVentaUseCase construye el caso de uso.
func NewNotaVentaUseCase(tx TxRunner, notaRepo repository.NotaVentaRepository, clienteRepo repository.ClienteRepository, notifier ports.Notifier) *NotaVentaUseCase {
	return &NotaVentaUseCase{tx: tx, notaRepo: notaRepo, clienteRepo: clienteRepo, notifier: notifier}
}

// Create da de alta una nota de venta directa (sin documento origen) en
// estado Registrado, con saldo igual al total.
func (uc *NotaVentaUseCase) Create(ctx context.Context, in dto.NotaRequest) (*dto.NotaVentaResponse, error) {
	if err := validaClienteActivo(uc.clienteRepo, in.ClienteID); err != nil {
		return nil, err
	}
	now := time.Now()
	fecha, err := parseFecha(in.Fecha, now)
	if err != nil {
		return nil, err
	}
	n := &entity.NotaVenta{
		ID:          uuid.New().String(),
		ClienteID:   in.ClienteID,
		Estado:      entity.NotaRegistrada,
		Fecha:       fecha,
		TotalPagado: decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	n.Items, err = itemsFromRequest(n.ID, in.Items, true)
	if err != nil {
		return nil, err
	}
	n.Subtotal, n.Impuestos, n.Total = billing.Normaliza(n.Items)
	n.Saldo = n.Total

	err = uc.tx.Run(ctx, func(r Repos) error {
		seq, err := r.Folios.Next(billing.TipoNotaVenta, fecha.Year())
		if err != nil {
			return err
		}
		n.Folio = billing.FormatFolio(billing.TipoNotaVenta, fecha.Year(), seq)
		return r.NotasVenta.Create(n)
	})
	if err != nil {
		return nil, err
	}
	resp := notaVentaToResponse(n)
	uc.notifier.Broadcast(ports.Event{Type: "nota_venta_creado", Data: resp})
	return resp, nil
}

// Get obtiene una nota de venta completa (renglones y pagos).
func (uc *NotaVentaUseCase) Get(ctx context.Context, id string) (*dto.NotaVentaResponse, error) {
	n, err := uc.notaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	return notaVentaToResponse(n), nil
}

// GetEntity expone la entidad completa para los renderizadores (PDF/XML).
func (uc *NotaVentaUseCase) GetEntity(ctx context.Context, id string) (*entity.NotaVenta, error) {
	n, err := uc.notaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	return n, nil
}

// GetEntityConCliente devuelve la nota junto con su cliente, como los
// necesitan el PDF y el XML.
func (uc *NotaVentaUseCase) GetEntityConCliente(ctx context.Context, id string) (*entity.NotaVenta, *entity.Cliente, error) {
	n, err := uc.GetEntity(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	cliente, err := uc.clienteRepo.GetByID(n.ClienteID)
	if err != nil {
		return nil, nil, err
	}
	if cliente == nil {
		return nil, nil, domain.ErrNotFound
	}
	return n, cliente, nil
}

// List lista notas de venta paginadas.
func (uc *NotaVentaUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.NotaVentaResponse, error) {
	page.DefaultPage()
	list, err := uc.notaRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.NotaVentaResponse, 0, len(list))
	for _, n := range list {
		out = append(out, notaVentaToResponse(n))
	}
	return out, nil
}

// Update reemplaza renglones y recalcula totales. El nuevo total no puede
// quedar por debajo de lo ya pagado; una nota Borrador que recibe precios
// pasa a Registrado.
func (uc *NotaVentaUseCase) Update(ctx context.Context, id string, in dto.NotaRequest) (*dto.NotaVentaResponse, error) {
	var n *entity.NotaVenta
	err := uc.tx.Run(ctx, func(r Repos) error {
		var err error
		n, err = r.NotasVenta.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if n == nil {
			return domain.ErrNotFound
		}
		if n.Terminal() {
			return domain.ErrDocumentLocked
		}
		if in.ClienteID != "" && in.ClienteID != n.ClienteID {
			if err := validaClienteActivo(uc.clienteRepo, in.ClienteID); err != nil {
				return err
			}
			n.ClienteID = in.ClienteID
		}
		fecha, err := parseFecha(in.Fecha, n.Fecha)
		if err != nil {
			return err
		}
		n.Fecha = fecha
		n.Items, err = itemsFromRequest(n.ID, in.Items, true)
		if err != nil {
			return err
		}
		n.Subtotal, n.Impuestos, n.Total = billing.Normaliza(n.Items)
		saldo := n.Total.Sub(n.TotalPagado).Round(2)
		if saldo.LessThan(billing.Tolerancia.Neg()) {
			return domain.ErrValidation
		}
		n.Saldo = saldo
		n.Estado = estadoNota(n.Estado, n.TotalPagado, n.Saldo, n.Total)
		n.UpdatedAt = time.Now()
		return r.NotasVenta.Update(n)
	})
	if err != nil {
		return nil, err
	}
	resp := notaVentaToResponse(n)
	uc.notifier.Broadcast(ports.Event{Type: "nota_venta_actualizado", Data: resp})
	return resp, nil
}

// Cancelar anula la nota (terminal). Los pagos históricos se conservan pero
// la nota deja de admitir mutaciones.
func (uc *NotaVentaUseCase) Cancelar(ctx context.Context, id string) (*dto.NotaVentaResponse, error) {
	var n *entity.NotaVenta
	err := uc.tx.Run(ctx, func(r Repos) error {
		var err error
		n, err = r.NotasVenta.GetByID(id)
		if err != nil {
			return err
		}
		if n == nil {
			return domain.ErrNotFound
		}
		if n.Estado == entity.NotaCancelada {
			return domain.ErrAlreadyCancelled
		}
		ok, err := r.NotasVenta.CambiarEstado(id, n.Estado, entity.NotaCancelada)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrAlreadyCancelled
		}
		n.Estado = entity.NotaCancelada
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := notaVentaToResponse(n)
	uc.notifier.Broadcast(ports.Event{Type: "nota_venta_cancelada", Data: resp})
	return resp, nil
}

// estadoNota decide el estado de una nota abierta tras recalcular su saldo.
// Con saldo cubierto y algún pago aplicado la nota queda Pagada; una nota sin
// precio sigue en Borrador; cualquier otra combinación queda Registrado.
func estadoNota(actual string, totalPagado, saldo, total decimal.Decimal) string {
	if totalPagado.GreaterThan(decimal.Zero) && billing.SaldoCubierto(saldo) {
		return entity.NotaPagada
	}
	if actual == entity.NotaBorrador && total.IsZero() {
		return entity.NotaBorrador
	}
	return entity.NotaRegistrada
}
