// Package usecase contiene los casos de uso CRUD del catálogo: productos,
// bodegas, clientes y unidades de medida. El stock nunca se edita aquí; se
// mueve únicamente a través del motor de movimientos.
package usecase

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/inventario-multibodega/internal/application/ports"
	"github.com/jhoicas/inventario-multibodega/internal/domain"
	"github.com/jhoicas/inventario-multibodega/internal/domain/entity"
)

// ProductUseCase casos de uso CRUD para productos.
type ProductUseCase struct {
	sessions ports.SessionRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(sessions ports.SessionRunner) *ProductUseCase {
	return &ProductUseCase{sessions: sessions}
}

// CreateProductInput datos para crear o actualizar un producto.
type CreateProductInput struct {
	Code        string
	Description string
	UnitID      int64
}

// Create crea un producto nuevo. El código es único por tenant.
func (uc *ProductUseCase) Create(ctx context.Context, tenant string, in CreateProductInput) (*entity.Product, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" || strings.TrimSpace(in.Description) == "" || in.UnitID == 0 {
		return nil, domain.ErrInvalidInput
	}
	var product *entity.Product
	err := uc.sessions.WithTx(ctx, tenant, func(r ports.Repos) error {
		unit, err := r.Units.GetByID(ctx, in.UnitID)
		if err != nil {
			return err
		}
		if unit == nil {
			return &domain.NotFoundError{Resource: "unidad de medida", ID: in.UnitID, Tenant: tenant}
		}
		p := &entity.Product{
			Code:        code,
			Description: strings.TrimSpace(in.Description),
			UnitID:      in.UnitID,
			UnitName:    unit.Name,
		}
		if err := r.Products.Create(ctx, p); err != nil {
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID obtiene un producto.
func (uc *ProductUseCase) GetByID(ctx context.Context, tenant string, id int64) (*entity.Product, error) {
	var product *entity.Product
	err := uc.sessions.WithSession(ctx, tenant, func(r ports.Repos) error {
		p, err := r.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return &domain.NotFoundError{Resource: "producto", ID: id, Tenant: tenant}
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Update actualiza código, descripción y unidad.
func (uc *ProductUseCase) Update(ctx context.Context, tenant string, id int64, in CreateProductInput) (*entity.Product, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" || strings.TrimSpace(in.Description) == "" || in.UnitID == 0 {
		return nil, domain.ErrInvalidInput
	}
	var product *entity.Product
	err := uc.sessions.WithTx(ctx, tenant, func(r ports.Repos) error {
		p, err := r.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return &domain.NotFoundError{Resource: "producto", ID: id, Tenant: tenant}
		}
		unit, err := r.Units.GetByID(ctx, in.UnitID)
		if err != nil {
			return err
		}
		if unit == nil {
			return &domain.NotFoundError{Resource: "unidad de medida", ID: in.UnitID, Tenant: tenant}
		}
		p.Code = code
		p.Description = strings.TrimSpace(in.Description)
		p.UnitID = in.UnitID
		p.UnitName = unit.Name
		if err := r.Products.Update(ctx, p); err != nil {
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Delete elimina un producto. ErrConflict si tiene movimientos registrados.
func (uc *ProductUseCase) Delete(ctx context.Context, tenant string, id int64) error {
	return uc.sessions.WithTx(ctx, tenant, func(r ports.Repos) error {
		p, err := r.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return &domain.NotFoundError{Resource: "producto", ID: id, Tenant: tenant}
		}
		count, err := r.Ledger.CountByProduct(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrConflict
		}
		return r.Products.Delete(ctx, id)
	})
}

// List busca productos por código o descripción. La búsqueda ignora acentos:
// "cafe" encuentra "Café".
func (uc *ProductUseCase) List(ctx context.Context, tenant, search string, page, limit int) ([]*entity.Product, int64, error) {
	var (
		list  []*entity.Product
		total int64
	)
	err := uc.sessions.WithSession(ctx, tenant, func(r ports.Repos) error {
		var err error
		list, total, err = r.Products.List(ctx, NormalizeSearch(search), page, limit)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

var unaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeSearch recorta y despoja de acentos el término de búsqueda para que
// case contra columnas sin acentos con ILIKE.
func NormalizeSearch(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	out, _, err := transform.String(unaccent, s)
	if err != nil {
		return s
	}
	return out
}
