package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/application/ports"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/billing"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

// transicionesOrden son los cambios manuales de estado permitidos. Facturada
// solo se alcanza vía conversión y Cancelada vía Cancelar.
var transicionesOrden = map[string][]string{
	entity.OrdenPendiente: {entity.OrdenEnProceso, entity.OrdenCompletada},
	entity.OrdenEnProceso: {entity.OrdenCompletada},
}

// OrdenUseCase cubre el ciclo de vida de la orden de trabajo.
type OrdenUseCase struct {
	tx          TxRunner
	ordenRepo   repository.OrdenRepository
	clienteRepo repository.ClienteRepository
	notifier    ports.Notifier
}

// NewOrdenUseCase construye el caso de uso.
func NewOrdenUseCase(tx TxRunner, ordenRepo repository.OrdenRepository, clienteRepo repository.ClienteRepository, notifier ports.Notifier) *OrdenUseCase {
	return &OrdenUseCase{tx: tx, ordenRepo: ordenRepo, clienteRepo: clienteRepo, notifier: notifier}
}

// Create da de alta una orden en Pendiente. Los renglones llevan solo
// cantidad y descripción; el precio se asigna al facturar.
func (uc *OrdenUseCase) Create(ctx context.Context, in dto.OrdenRequest) (*dto.OrdenResponse, error) {
	if err := validaClienteActivo(uc.clienteRepo, in.ClienteID); err != nil {
		return nil, err
	}
	now := time.Now()
	fechaEmision, err := parseFecha(in.FechaEmision, now)
	if err != nil {
		return nil, err
	}
	o := &entity.Orden{
		ID:           uuid.New().String(),
		ClienteID:    in.ClienteID,
		Estado:       entity.OrdenPendiente,
		FechaEmision: fechaEmision,
		Marca:        in.Marca,
		Modelo:       in.Modelo,
		Anio:         in.Anio,
		Placas:       in.Placas,
		Kilometraje:  in.Kilometraje,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	o.Items, err = itemsFromRequest(o.ID, in.Items, false)
	if err != nil {
		return nil, err
	}

	err = uc.tx.Run(ctx, func(r Repos) error {
		n, err := r.Folios.Next(billing.TipoOrden, fechaEmision.Year())
		if err != nil {
			return err
		}
		o.Folio = billing.FormatFolio(billing.TipoOrden, fechaEmision.Year(), n)
		return r.Ordenes.Create(o)
	})
	if err != nil {
		return nil, err
	}
	resp := ordenToResponse(o)
	uc.notifier.Broadcast(ports.Event{Type: "orden_creado", Data: resp})
	return resp, nil
}

// Get obtiene una orden completa.
func (uc *OrdenUseCase) Get(ctx context.Context, id string) (*dto.OrdenResponse, error) {
	o, err := uc.ordenRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return ordenToResponse(o), nil
}

// List lista órdenes paginadas.
func (uc *OrdenUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.OrdenResponse, error) {
	page.DefaultPage()
	list, err := uc.ordenRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrdenResponse, 0, len(list))
	for _, o := range list {
		out = append(out, ordenToResponse(o))
	}
	return out, nil
}

// Update reemplaza cabecera y renglones mientras la orden no sea terminal.
func (uc *OrdenUseCase) Update(ctx context.Context, id string, in dto.OrdenRequest) (*dto.OrdenResponse, error) {
	var o *entity.Orden
	err := uc.tx.Run(ctx, func(r Repos) error {
		var err error
		o, err = r.Ordenes.GetByID(id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if o.Terminal() {
			return domain.ErrDocumentLocked
		}
		if in.ClienteID != "" && in.ClienteID != o.ClienteID {
			if err := validaClienteActivo(uc.clienteRepo, in.ClienteID); err != nil {
				return err
			}
			o.ClienteID = in.ClienteID
		}
		o.Marca = in.Marca
		o.Modelo = in.Modelo
		o.Anio = in.Anio
		o.Placas = in.Placas
		o.Kilometraje = in.Kilometraje
		o.Items, err = itemsFromRequest(o.ID, in.Items, false)
		if err != nil {
			return err
		}
		o.UpdatedAt = time.Now()
		return r.Ordenes.Update(o)
	})
	if err != nil {
		return nil, err
	}
	resp := ordenToResponse(o)
	uc.notifier.Broadcast(ports.Event{Type: "orden_actualizado", Data: resp})
	return resp, nil
}

// CambiarEstado avanza la orden por Pendiente → En Proceso → Completada.
// El CAS sobre el estado origen hace que el perdedor de una carrera reciba
// ErrInvalidState en lugar de pisar la transición del ganador.
func (uc *OrdenUseCase) CambiarEstado(ctx context.Context, id string, in dto.OrdenEstadoRequest) (*dto.OrdenResponse, error) {
	var o *entity.Orden
	err := uc.tx.Run(ctx, func(r Repos) error {
		var err error
		o, err = r.Ordenes.GetByID(id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if o.Terminal() {
			return domain.ErrDocumentLocked
		}
		if !transicionValida(o.Estado, in.Estado) {
			return domain.ErrInvalidState
		}
		ok, err := r.Ordenes.CambiarEstado(id, o.Estado, in.Estado)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidState
		}
		o.Estado = in.Estado
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := ordenToResponse(o)
	uc.notifier.Broadcast(ports.Event{Type: "orden_actualizado", Data: resp})
	return resp, nil
}

// Cancelar anula una orden Pendiente o En Proceso. Completada ya no se
// cancela (se factura o se reabre manualmente en base de datos).
func (uc *OrdenUseCase) Cancelar(ctx context.Context, id string) (*dto.OrdenResponse, error) {
	var o *entity.Orden
	err := uc.tx.Run(ctx, func(r Repos) error {
		var err error
		o, err = r.Ordenes.GetByID(id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		switch o.Estado {
		case entity.OrdenCancelada:
			return domain.ErrAlreadyCancelled
		case entity.OrdenFacturada:
			return domain.ErrDocumentLocked
		case entity.OrdenCompletada:
			return domain.ErrInvalidState
		}
		ok, err := r.Ordenes.CambiarEstado(id, o.Estado, entity.OrdenCancelada)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrAlreadyCancelled
		}
		o.Estado = entity.OrdenCancelada
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := ordenToResponse(o)
	uc.notifier.Broadcast(ports.Event{Type: "orden_cancelada", Data: resp})
	return resp, nil
}

func transicionValida(desde, hacia string) bool {
	for _, s := range transicionesOrden[desde] {
		if s == hacia {
			return true
		}
	}
	return false
}

// validaClienteActivo verifica que el cliente exista y no esté desactivado.
func validaClienteActivo(repo repository.ClienteRepository, clienteID string) error {
	if clienteID == "" {
		return domain.ErrValidation
	}
	cliente, err := repo.GetByID(clienteID)
	if err != nil {
		return err
	}
	if cliente == nil {
		return domain.ErrNotFound
	}
	if !cliente.Activo {
		return domain.ErrValidation
	}
	return nil
}
