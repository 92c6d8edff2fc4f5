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

// NotaProveedorUseCase es la contraparte de compra de NotaVenta: mismas
// reglas de totales, saldo y cancelación, referidas a un proveedor.
type NotaProveedorUseCase struct {
	tx            TxRunner
	notaRepo      repository.NotaProveedorRepository
	proveedorRepo repository.ProveedorRepository
	notifier      ports.Notifier
}

// NewNotaProveedorUseCase construye el caso de uso.
func NewNotaProveedorUseCase(tx TxRunner, notaRepo repository.NotaProveedorRepository, proveedorRepo repository.ProveedorRepository, notifier ports.Notifier) *NotaProveedorUseCase {
	return &NotaProveedorUseCase{tx: tx, notaRepo: notaRepo, proveedorRepo: proveedorRepo, notifier: notifier}
}

// Create da de alta una nota de proveedor en Registrado, saldo igual al total.
func (uc *NotaProveedorUseCase) Create(ctx context.Context, in dto.NotaRequest) (*dto.NotaProveedorResponse, error) {
	if err := uc.validaProveedor(in.ProveedorID); err != nil {
		return nil, err
	}
	now := time.Now()
	fecha, err := parseFecha(in.Fecha, now)
	if err != nil {
		return nil, err
	}
	n := &entity.NotaProveedor{
		ID:          uuid.New().String(),
		ProveedorID: in.ProveedorID,
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
		seq, err := r.Folios.Next(billing.TipoNotaProveedor, fecha.Year())
		if err != nil {
			return err
		}
		n.Folio = billing.FormatFolio(billing.TipoNotaProveedor, fecha.Year(), seq)
		return r.NotasProveedor.Create(n)
	})
	if err != nil {
		return nil, err
	}
	resp := notaProveedorToResponse(n)
	uc.notifier.Broadcast(ports.Event{Type: "nota_proveedor_creado", Data: resp})
	return resp, nil
}

// Get obtiene una nota de proveedor completa.
func (uc *NotaProveedorUseCase) Get(ctx context.Context, id string) (*dto.NotaProveedorResponse, error) {
	n, err := uc.notaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	return notaProveedorToResponse(n), nil
}

// List lista notas de proveedor paginadas.
func (uc *NotaProveedorUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.NotaProveedorResponse, error) {
	page.DefaultPage()
	list, err := uc.notaRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.NotaProveedorResponse, 0, len(list))
	for _, n := range list {
		out = append(out, notaProveedorToResponse(n))
	}
	return out, nil
}

// Update reemplaza renglones y recalcula totales con la misma guarda de
// saldo que la nota de venta.
func (uc *NotaProveedorUseCase) Update(ctx context.Context, id string, in dto.NotaRequest) (*dto.NotaProveedorResponse, error) {
	var n *entity.NotaProveedor
	err := uc.tx.Run(ctx, func(r Repos) error {
		var err error
		n, err = r.NotasProveedor.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if n == nil {
			return domain.ErrNotFound
		}
		if n.Terminal() {
			return domain.ErrDocumentLocked
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
		return r.NotasProveedor.Update(n)
	})
	if err != nil {
		return nil, err
	}
	resp := notaProveedorToResponse(n)
	uc.notifier.Broadcast(ports.Event{Type: "nota_proveedor_actualizado", Data: resp})
	return resp, nil
}

// Cancelar anula la nota de proveedor (terminal).
func (uc *NotaProveedorUseCase) Cancelar(ctx context.Context, id string) (*dto.NotaProveedorResponse, error) {
	var n *entity.NotaProveedor
	err := uc.tx.Run(ctx, func(r Repos) error {
		var err error
		n, err = r.NotasProveedor.GetByID(id)
		if err != nil {
			return err
		}
		if n == nil {
			return domain.ErrNotFound
		}
		if n.Estado == entity.NotaCancelada {
			return domain.ErrAlreadyCancelled
		}
		ok, err := r.NotasProveedor.CambiarEstado(id, n.Estado, entity.NotaCancelada)
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
	resp := notaProveedorToResponse(n)
	uc.notifier.Broadcast(ports.Event{Type: "nota_proveedor_cancelada", Data: resp})
	return resp, nil
}

func (uc *NotaProveedorUseCase) validaProveedor(proveedorID string) error {
	if proveedorID == "" {
		return domain.ErrValidation
	}
	p, err := uc.proveedorRepo.GetByID(proveedorID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if !p.Activo {
		return domain.ErrValidation
	}
	return nil
}
