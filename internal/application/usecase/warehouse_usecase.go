package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/inventario-multibodega/internal/application/ports"
	"github.com/jhoicas/inventario-multibodega/internal/domain"
	"github.com/jhoicas/inventario-multibodega/internal/domain/entity"
)

// WarehouseUseCase casos de uso CRUD para bodegas.
type WarehouseUseCase struct {
	sessions ports.SessionRunner
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(sessions ports.SessionRunner) *WarehouseUseCase {
	return &WarehouseUseCase{sessions: sessions}
}

// WarehouseInput datos para crear o actualizar una bodega.
type WarehouseInput struct {
	Name     string
	Location string
}

// Create crea una bodega. El nombre es único por tenant.
func (uc *WarehouseUseCase) Create(ctx context.Context, tenant string, in WarehouseInput) (*entity.Warehouse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	var warehouse *entity.Warehouse
	err := uc.sessions.WithTx(ctx, tenant, func(r ports.Repos) error {
		w := &entity.Warehouse{Name: name, Location: strings.TrimSpace(in.Location)}
		if err := r.Warehouses.Create(ctx, w); err != nil {
			return err
		}
		warehouse = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return warehouse, nil
}

// GetByID obtiene una bodega.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, tenant string, id int64) (*entity.Warehouse, error) {
	var warehouse *entity.Warehouse
	err := uc.sessions.WithSession(ctx, tenant, func(r ports.Repos) error {
		w, err := r.Warehouses.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if w == nil {
			return &domain.NotFoundError{Resource: "bodega", ID: id, Tenant: tenant}
		}
		warehouse = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return warehouse, nil
}

// Update actualiza nombre y ubicación.
func (uc *WarehouseUseCase) Update(ctx context.Context, tenant string, id int64, in WarehouseInput) (*entity.Warehouse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	var warehouse *entity.Warehouse
	err := uc.sessions.WithTx(ctx, tenant, func(r ports.Repos) error {
		w, err := r.Warehouses.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if w == nil {
			return &domain.NotFoundError{Resource: "bodega", ID: id, Tenant: tenant}
		}
		w.Name = name
		w.Location = strings.TrimSpace(in.Location)
		if err := r.Warehouses.Update(ctx, w); err != nil {
			return err
		}
		warehouse = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return warehouse, nil
}

// Delete elimina una bodega. ErrConflict si tiene movimientos registrados.
func (uc *WarehouseUseCase) Delete(ctx context.Context, tenant string, id int64) error {
	return uc.sessions.WithTx(ctx, tenant, func(r ports.Repos) error {
		w, err := r.Warehouses.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if w == nil {
			return &domain.NotFoundError{Resource: "bodega", ID: id, Tenant: tenant}
		}
		count, err := r.Ledger.CountByWarehouse(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrConflict
		}
		return r.Warehouses.Delete(ctx, id)
	})
}

// List devuelve todas las bodegas del tenant.
func (uc *WarehouseUseCase) List(ctx context.Context, tenant string) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	err := uc.sessions.WithSession(ctx, tenant, func(r ports.Repos) error {
		var err error
		list, err = r.Warehouses.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}
