package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/application/ports"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

// ClienteUseCase CRUD de clientes. Los clientes nunca se borran físicamente
// porque los documentos los referencian; Delete es desactivación.
type ClienteUseCase struct {
	repo     repository.ClienteRepository
	notifier ports.Notifier
}

// NewClienteUseCase construye el caso de uso.
func NewClienteUseCase(repo repository.ClienteRepository, notifier ports.Notifier) *ClienteUseCase {
	return &ClienteUseCase{repo: repo, notifier: notifier}
}

// Create da de alta un cliente activo.
func (uc *ClienteUseCase) Create(ctx context.Context, in dto.ClienteRequest) (*dto.ClienteResponse, error) {
	if in.Nombre == "" {
		return nil, domain.ErrValidation
	}
	now := time.Now()
	c := &entity.Cliente{
		ID:        uuid.New().String(),
		Nombre:    in.Nombre,
		Tipo:      in.Tipo,
		RFC:       in.RFC,
		Telefono:  in.Telefono,
		Email:     in.Email,
		Direccion: in.Direccion,
		Activo:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(c); err != nil {
		return nil, err
	}
	resp := clienteToResponse(c)
	uc.notifier.Broadcast(ports.Event{Type: "cliente_creado", Data: resp})
	return resp, nil
}

// Get obtiene un cliente por ID.
func (uc *ClienteUseCase) Get(ctx context.Context, id string) (*dto.ClienteResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return clienteToResponse(c), nil
}

// List lista clientes; search filtra por nombre o RFC sin distinguir acentos.
func (uc *ClienteUseCase) List(ctx context.Context, search string, page dto.PageRequest) ([]*dto.ClienteResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClienteResponse, 0, len(list))
	for _, c := range list {
		out = append(out, clienteToResponse(c))
	}
	return out, nil
}

// Update edita los datos de contacto del cliente.
func (uc *ClienteUseCase) Update(ctx context.Context, id string, in dto.ClienteRequest) (*dto.ClienteResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nombre == "" {
		return nil, domain.ErrValidation
	}
	c.Nombre = in.Nombre
	c.Tipo = in.Tipo
	c.RFC = in.RFC
	c.Telefono = in.Telefono
	c.Email = in.Email
	c.Direccion = in.Direccion
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(c); err != nil {
		return nil, err
	}
	resp := clienteToResponse(c)
	uc.notifier.Broadcast(ports.Event{Type: "cliente_actualizado", Data: resp})
	return resp, nil
}

// Disable desactiva al cliente (borrado suave).
func (uc *ClienteUseCase) Disable(ctx context.Context, id string) error {
	ok, err := uc.repo.Disable(id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	uc.notifier.Broadcast(ports.Event{Type: "cliente_actualizado", Data: map[string]any{"id": id, "activo": false}})
	return nil
}

func clienteToResponse(c *entity.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:        c.ID,
		Nombre:    c.Nombre,
		Tipo:      c.Tipo,
		RFC:       c.RFC,
		Telefono:  c.Telefono,
		Email:     c.Email,
		Direccion: c.Direccion,
		Activo:    c.Activo,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
