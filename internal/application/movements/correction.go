package movements

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-multibodega/internal/application/ports"
	"github.com/jhoicas/inventario-multibodega/internal/domain"
	"github.com/jhoicas/inventario-multibodega/internal/domain/entity"
)

// UpdateInput corrección administrativa de un movimiento existente. El tipo,
// producto y bodega del movimiento no cambian; solo cantidad, precio, fecha,
// contraparte y observación.
type UpdateInput struct {
	Quantity decimal.Decimal
	Price    decimal.Decimal
	Date     *time.Time
	ClientID *int64
	Note     string
}

// Update corrige un movimiento. Si el movimiento es una salida y la cantidad
// cambia, el stock se recalcula EXCLUYENDO la contribución actual del
// movimiento y la nueva cantidad debe caber en ese disponible.
func (e *Engine) Update(ctx context.Context, tenant string, id int64, in UpdateInput) (*entity.Movement, error) {
	if err := validateAmounts(in.Quantity, in.Price); err != nil {
		return nil, err
	}
	var updated *entity.Movement
	err := e.sessions.WithTx(ctx, tenant, func(r ports.Repos) error {
		current, err := r.Movements.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return &domain.NotFoundError{Resource: "movimiento", ID: id, Tenant: tenant}
		}
		if in.ClientID != nil {
			client, err := r.Clients.GetByID(ctx, *in.ClientID)
			if err != nil {
				return err
			}
			if client == nil {
				return &domain.NotFoundError{Resource: "cliente", ID: *in.ClientID, Tenant: tenant}
			}
		}
		if current.Type == entity.MovementTypeSalida && !in.Quantity.Equal(current.Quantity) {
			if _, err := r.Products.GetForUpdate(ctx, current.ProductID); err != nil {
				return err
			}
			available, err := r.Ledger.StockOfExcluding(ctx, current.ProductID, current.WarehouseID, id)
			if err != nil {
				return err
			}
			if available.LessThan(in.Quantity) {
				return &domain.InsufficientStockError{
					ProductCode: current.ProductCode,
					Available:   available,
					Requested:   in.Quantity,
				}
			}
		}
		m := current.Movement
		m.Quantity = in.Quantity
		m.Price = in.Price
		if in.Date != nil {
			m.Date = *in.Date
		}
		m.ClientID = in.ClientID
		m.Note = in.Note
		if err := r.Movements.Update(ctx, &m); err != nil {
			return err
		}
		updated = &m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete elimina un movimiento. No hay precondición de stock: borrar una
// entrada puede dejar el saldo histórico en negativo y es responsabilidad
// del administrador.
func (e *Engine) Delete(ctx context.Context, tenant string, id int64) error {
	return e.sessions.WithTx(ctx, tenant, func(r ports.Repos) error {
		current, err := r.Movements.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return &domain.NotFoundError{Resource: "movimiento", ID: id, Tenant: tenant}
		}
		return r.Movements.Delete(ctx, id)
	})
}
