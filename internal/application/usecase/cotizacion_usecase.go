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

// CotizacionUseCase cubre el ciclo de vida de la cotización: alta con folio
// consecutivo, edición mientras siga Pendiente y cancelación. La conversión
// a nota de venta vive en ConversionUseCase.
type CotizacionUseCase struct {
	tx          TxRunner
	cotRepo     repository.CotizacionRepository
	clienteRepo repository.ClienteRepository
	notifier    ports.Notifier
}

// NewCotizacionUseCase construye el caso de uso.
func NewCotizacionUseCase(tx TxRunner, cotRepo repository.CotizacionRepository, clienteRepo repository.ClienteRepository, notifier ports.Notifier) *CotizacionUseCase {
	return &CotizacionUseCase{tx: tx, cotRepo: cotRepo, clienteRepo: clienteRepo, notifier: notifier}
}

// Create da de alta una cotización en estado Pendiente. El folio se genera
// dentro de la misma transacción que inserta el documento.
func (uc *CotizacionUseCase) Create(ctx context.Context, in dto.CotizacionRequest) (*dto.CotizacionResponse, error) {
	if err := validaClienteActivo(uc.clienteRepo, in.ClienteID); err != nil {
		return nil, err
	}
	now := time.Now()
	fechaEmision, err := parseFecha(in.FechaEmision, now)
	if err != nil {
		return nil, err
	}
	vigencia, err := parseFecha(in.Vigencia, time.Time{})
	if err != nil {
		return nil, err
	}
	if vigencia.IsZero() || !vigencia.After(fechaEmision) {
		return nil, domain.ErrValidation
	}

	c := &entity.Cotizacion{
		ID:           uuid.New().String(),
		ClienteID:    in.ClienteID,
		Estado:       entity.CotizacionPendiente,
		FechaEmision: fechaEmision,
		Vigencia:     vigencia,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	c.Items, err = itemsFromRequest(c.ID, in.Items, true)
	if err != nil {
		return nil, err
	}
	c.Subtotal, c.Impuestos, c.Total = billing.Normaliza(c.Items)

	err = uc.tx.Run(ctx, func(r Repos) error {
		n, err := r.Folios.Next(billing.TipoCotizacion, fechaEmision.Year())
		if err != nil {
			return err
		}
		c.Folio = billing.FormatFolio(billing.TipoCotizacion, fechaEmision.Year(), n)
		return r.Cotizaciones.Create(c)
	})
	if err != nil {
		return nil, err
	}
	resp := cotizacionToResponse(c)
	uc.notifier.Broadcast(ports.Event{Type: "cotizacion_creado", Data: resp})
	return resp, nil
}

// Get obtiene una cotización completa.
func (uc *CotizacionUseCase) Get(ctx context.Context, id string) (*dto.CotizacionResponse, error) {
	c, err := uc.cotRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return cotizacionToResponse(c), nil
}

// List lista cotizaciones paginadas (lectura sin candado; snapshot consistente).
func (uc *CotizacionUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.CotizacionResponse, error) {
	page.DefaultPage()
	list, err := uc.cotRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CotizacionResponse, 0, len(list))
	for _, c := range list {
		out = append(out, cotizacionToResponse(c))
	}
	return out, nil
}

// Update reemplaza cabecera y renglones. Rechaza cotizaciones canceladas o ya
// convertidas (renglones congelados) con ErrDocumentLocked.
func (uc *CotizacionUseCase) Update(ctx context.Context, id string, in dto.CotizacionRequest) (*dto.CotizacionResponse, error) {
	var c *entity.Cotizacion
	err := uc.tx.Run(ctx, func(r Repos) error {
		var err error
		c, err = r.Cotizaciones.GetByID(id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		if c.Terminal() {
			return domain.ErrDocumentLocked
		}
		if in.ClienteID != "" && in.ClienteID != c.ClienteID {
			if err := validaClienteActivo(uc.clienteRepo, in.ClienteID); err != nil {
				return err
			}
			c.ClienteID = in.ClienteID
		}
		fechaEmision, err := parseFecha(in.FechaEmision, c.FechaEmision)
		if err != nil {
			return err
		}
		vigencia, err := parseFecha(in.Vigencia, c.Vigencia)
		if err != nil {
			return err
		}
		if !vigencia.After(fechaEmision) {
			return domain.ErrValidation
		}
		c.FechaEmision = fechaEmision
		c.Vigencia = vigencia
		c.Items, err = itemsFromRequest(c.ID, in.Items, true)
		if err != nil {
			return err
		}
		c.Subtotal, c.Impuestos, c.Total = billing.Normaliza(c.Items)
		c.UpdatedAt = time.Now()
		return r.Cotizaciones.Update(c)
	})
	if err != nil {
		return nil, err
	}
	resp := cotizacionToResponse(c)
	uc.notifier.Broadcast(ports.Event{Type: "cotizacion_actualizado", Data: resp})
	return resp, nil
}

// Cancelar pasa la cotización a Cancelada (terminal). Cancelar dos veces
// devuelve ErrAlreadyCancelled para que el perdedor de la carrera lo detecte.
func (uc *CotizacionUseCase) Cancelar(ctx context.Context, id string) (*dto.CotizacionResponse, error) {
	var c *entity.Cotizacion
	err := uc.tx.Run(ctx, func(r Repos) error {
		var err error
		c, err = r.Cotizaciones.GetByID(id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		if c.Estado == entity.CotizacionCancelada {
			return domain.ErrAlreadyCancelled
		}
		if c.Convertida() {
			return domain.ErrDocumentLocked
		}
		ok, err := r.Cotizaciones.CambiarEstado(id, c.Estado, entity.CotizacionCancelada)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrAlreadyCancelled
		}
		c.Estado = entity.CotizacionCancelada
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := cotizacionToResponse(c)
	uc.notifier.Broadcast(ports.Event{Type: "cotizacion_cancelada", Data: resp})
	return resp, nil
}
