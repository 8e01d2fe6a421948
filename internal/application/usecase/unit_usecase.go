package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/inventario-multibodega/internal/application/ports"
	"github.com/jhoicas/inventario-multibodega/internal/domain"
	"github.com/jhoicas/inventario-multibodega/internal/domain/entity"
)

// UnitUseCase casos de uso CRUD para unidades de medida.
type UnitUseCase struct {
	sessions ports.SessionRunner
}

// NewUnitUseCase construye el caso de uso.
func NewUnitUseCase(sessions ports.SessionRunner) *UnitUseCase {
	return &UnitUseCase{sessions: sessions}
}

// UnitInput datos para crear o actualizar una unidad.
type UnitInput struct {
	Name        string
	Description string
}

// Create crea una unidad de medida.
func (uc *UnitUseCase) Create(ctx context.Context, tenant string, in UnitInput) (*entity.Unit, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	var unit *entity.Unit
	err := uc.sessions.WithTx(ctx, tenant, func(r ports.Repos) error {
		u := &entity.Unit{Name: name, Description: strings.TrimSpace(in.Description)}
		if err := r.Units.Create(ctx, u); err != nil {
			return err
		}
		unit = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return unit, nil
}

// Update actualiza nombre y descripción.
func (uc *UnitUseCase) Update(ctx context.Context, tenant string, id int64, in UnitInput) (*entity.Unit, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	var unit *entity.Unit
	err := uc.sessions.WithTx(ctx, tenant, func(r ports.Repos) error {
		u, err := r.Units.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return &domain.NotFoundError{Resource: "unidad de medida", ID: id, Tenant: tenant}
		}
		u.Name = name
		u.Description = strings.TrimSpace(in.Description)
		if err := r.Units.Update(ctx, u); err != nil {
			return err
		}
		unit = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return unit, nil
}

// Delete elimina una unidad. ErrConflict si algún producto la usa.
func (uc *UnitUseCase) Delete(ctx context.Context, tenant string, id int64) error {
	return uc.sessions.WithTx(ctx, tenant, func(r ports.Repos) error {
		u, err := r.Units.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return &domain.NotFoundError{Resource: "unidad de medida", ID: id, Tenant: tenant}
		}
		count, err := r.Units.CountProducts(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrConflict
		}
		return r.Units.Delete(ctx, id)
	})
}

// List devuelve todas las unidades del tenant.
func (uc *UnitUseCase) List(ctx context.Context, tenant string) ([]*entity.Unit, error) {
	var list []*entity.Unit
	err := uc.sessions.WithSession(ctx, tenant, func(r ports.Repos) error {
		var err error
		list, err = r.Units.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}
