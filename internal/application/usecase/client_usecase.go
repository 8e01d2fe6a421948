package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/inventario-multibodega/internal/application/ports"
	"github.com/jhoicas/inventario-multibodega/internal/domain"
	"github.com/jhoicas/inventario-multibodega/internal/domain/entity"
)

// ClientUseCase casos de uso CRUD para clientes y proveedores.
type ClientUseCase struct {
	sessions ports.SessionRunner
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(sessions ports.SessionRunner) *ClientUseCase {
	return &ClientUseCase{sessions: sessions}
}

// ClientInput datos para crear o actualizar un cliente/proveedor.
type ClientInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
	Type    string
}

func validClientType(t string) bool {
	switch t {
	case entity.ClientTypeProveedor, entity.ClientTypeCliente, entity.ClientTypeAmbos:
		return true
	}
	return false
}

// Create crea un cliente/proveedor.
func (uc *ClientUseCase) Create(ctx context.Context, tenant string, in ClientInput) (*entity.Client, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !validClientType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	var client *entity.Client
	err := uc.sessions.WithTx(ctx, tenant, func(r ports.Repos) error {
		c := &entity.Client{
			Name:    name,
			Phone:   strings.TrimSpace(in.Phone),
			Email:   strings.TrimSpace(in.Email),
			Address: strings.TrimSpace(in.Address),
			Type:    in.Type,
		}
		if err := r.Clients.Create(ctx, c); err != nil {
			return err
		}
		client = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// GetByID obtiene un cliente/proveedor.
func (uc *ClientUseCase) GetByID(ctx context.Context, tenant string, id int64) (*entity.Client, error) {
	var client *entity.Client
	err := uc.sessions.WithSession(ctx, tenant, func(r ports.Repos) error {
		c, err := r.Clients.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return &domain.NotFoundError{Resource: "cliente", ID: id, Tenant: tenant}
		}
		client = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Update actualiza los datos del cliente/proveedor, incluido su tipo.
func (uc *ClientUseCase) Update(ctx context.Context, tenant string, id int64, in ClientInput) (*entity.Client, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !validClientType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	var client *entity.Client
	err := uc.sessions.WithTx(ctx, tenant, func(r ports.Repos) error {
		c, err := r.Clients.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return &domain.NotFoundError{Resource: "cliente", ID: id, Tenant: tenant}
		}
		c.Name = name
		c.Phone = strings.TrimSpace(in.Phone)
		c.Email = strings.TrimSpace(in.Email)
		c.Address = strings.TrimSpace(in.Address)
		c.Type = in.Type
		if err := r.Clients.Update(ctx, c); err != nil {
			return err
		}
		client = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Delete elimina un cliente/proveedor. ErrConflict si tiene movimientos.
func (uc *ClientUseCase) Delete(ctx context.Context, tenant string, id int64) error {
	return uc.sessions.WithTx(ctx, tenant, func(r ports.Repos) error {
		c, err := r.Clients.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return &domain.NotFoundError{Resource: "cliente", ID: id, Tenant: tenant}
		}
		count, err := r.Ledger.CountByClient(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrConflict
		}
		return r.Clients.Delete(ctx, id)
	})
}

// List busca clientes por nombre, paginado.
func (uc *ClientUseCase) List(ctx context.Context, tenant, search string, page, limit int) ([]*entity.Client, int64, error) {
	var (
		list  []*entity.Client
		total int64
	)
	err := uc.sessions.WithSession(ctx, tenant, func(r ports.Repos) error {
		var err error
		list, total, err = r.Clients.List(ctx, NormalizeSearch(search), page, limit)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
