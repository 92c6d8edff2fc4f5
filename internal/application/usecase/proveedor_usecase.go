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

// ProveedorUseCase CRUD de proveedores, con borrado suave como los clientes.
type ProveedorUseCase struct {
	repo     repository.ProveedorRepository
	notifier ports.Notifier
}

// NewProveedorUseCase construye el caso de uso.
func NewProveedorUseCase(repo repository.ProveedorRepository, notifier ports.Notifier) *ProveedorUseCase {
	return &ProveedorUseCase{repo: repo, notifier: notifier}
}

// Create da de alta un proveedor activo.
func (uc *ProveedorUseCase) Create(ctx context.Context, in dto.ProveedorRequest) (*dto.ProveedorResponse, error) {
	if in.Nombre == "" {
		return nil, domain.ErrValidation
	}
	now := time.Now()
	p := &entity.Proveedor{
		ID:        uuid.New().String(),
		Nombre:    in.Nombre,
		Contacto:  in.Contacto,
		RFC:       in.RFC,
		Telefono:  in.Telefono,
		Email:     in.Email,
		Direccion: in.Direccion,
		Activo:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	resp := proveedorToResponse(p)
	uc.notifier.Broadcast(ports.Event{Type: "proveedor_creado", Data: resp})
	return resp, nil
}

// Get obtiene un proveedor por ID.
func (uc *ProveedorUseCase) Get(ctx context.Context, id string) (*dto.ProveedorResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return proveedorToResponse(p), nil
}

// List lista proveedores con búsqueda sin acentos.
func (uc *ProveedorUseCase) List(ctx context.Context, search string, page dto.PageRequest) ([]*dto.ProveedorResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProveedorResponse, 0, len(list))
	for _, p := range list {
		out = append(out, proveedorToResponse(p))
	}
	return out, nil
}

// Update edita los datos de contacto del proveedor.
func (uc *ProveedorUseCase) Update(ctx context.Context, id string, in dto.ProveedorRequest) (*dto.ProveedorResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nombre == "" {
		return nil, domain.ErrValidation
	}
	p.Nombre = in.Nombre
	p.Contacto = in.Contacto
	p.RFC = in.RFC
	p.Telefono = in.Telefono
	p.Email = in.Email
	p.Direccion = in.Direccion
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	resp := proveedorToResponse(p)
	uc.notifier.Broadcast(ports.Event{Type: "proveedor_actualizado", Data: resp})
	return resp, nil
}

// Disable desactiva al proveedor (borrado suave).
func (uc *ProveedorUseCase) Disable(ctx context.Context, id string) error {
	ok, err := uc.repo.Disable(id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	uc.notifier.Broadcast(ports.Event{Type: "proveedor_actualizado", Data: map[string]any{"id": id, "activo": false}})
	return nil
}

func proveedorToResponse(p *entity.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:        p.ID,
		Nombre:    p.Nombre,
		Contacto:  p.Contacto,
		RFC:       p.RFC,
		Telefono:  p.Telefono,
		Email:     p.Email,
		Direccion: p.Direccion,
		Activo:    p.Activo,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
