package movements

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-multibodega/internal/application/ports"
	"github.com/jhoicas/inventario-multibodega/internal/domain"
	"github.com/jhoicas/inventario-multibodega/internal/domain/entity"
)

// SplitDestination un producto destino de una división y su cantidad.
type SplitDestination struct {
	ProductID int64
	Quantity  decimal.Decimal
	Price     decimal.Decimal
}

// DividirInput datos para descomponer un producto en otros.
type DividirInput struct {
	OriginProductID int64
	WarehouseID     int64
	UserID          int64
	TotalQuantity   decimal.Decimal
	Destinations    []SplitDestination
	Date            *time.Time
	Note            string
}

// ComboIngredient un insumo del combo y la cantidad que consume.
type ComboIngredient struct {
	ProductID int64
	Quantity  decimal.Decimal
}

// ComboInput datos para ensamblar un combo a partir de sus insumos.
type ComboInput struct {
	ComboProductID int64
	WarehouseID    int64
	UserID         int64
	Ingredients    []ComboIngredient
	Price          decimal.Decimal
	Date           *time.Time
	Note           string
}

// DividirProducto retira TotalQuantity del producto origen y acredita cada
// destino con su cantidad, todo en una sola transacción: o se escriben la
// salida y todas las entradas, o ninguna. Los movimientos comparten BatchID.
//
// La suma de los destinos no tiene por qué igualar la cantidad total salvo
// que RequireBalancedSplit esté activo.
func (e *Engine) DividirProducto(ctx context.Context, tenant string, in DividirInput) ([]*entity.Movement, error) {
	if len(in.Destinations) == 0 || !in.TotalQuantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	for _, d := range in.Destinations {
		if err := validateAmounts(d.Quantity, d.Price); err != nil {
			return nil, err
		}
	}
	if e.RequireBalancedSplit {
		sum := decimal.Zero
		for _, d := range in.Destinations {
			sum = sum.Add(d.Quantity)
		}
		if !sum.Equal(in.TotalQuantity) {
			return nil, domain.ErrUnbalancedSplit
		}
	}

	var written []*entity.Movement
	err := e.sessions.WithTx(ctx, tenant, func(r ports.Repos) error {
		// Primero toda la validación de entidades, incluidos TODOS los
		// destinos; recién después stock y escrituras.
		origin, err := validateEntities(ctx, r, tenant, in.OriginProductID, in.WarehouseID, in.UserID, nil, entity.MovementTypeSalida)
		if err != nil {
			return err
		}
		for _, d := range in.Destinations {
			p, err := r.Products.GetByID(ctx, d.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return &domain.NotFoundError{Resource: "producto", ID: d.ProductID, Tenant: tenant}
			}
		}

		if _, err := r.Products.GetForUpdate(ctx, in.OriginProductID); err != nil {
			return err
		}
		stock, err := r.Ledger.StockOf(ctx, in.OriginProductID, in.WarehouseID)
		if err != nil {
			return err
		}
		if stock.LessThan(in.TotalQuantity) {
			return &domain.InsufficientStockError{
				ProductCode: origin.Code,
				Available:   stock,
				Requested:   in.TotalQuantity,
			}
		}

		batchID := uuid.New().String()
		now := dateOrNow(in.Date)
		salida := &entity.Movement{
			BatchID:     batchID,
			Type:        entity.MovementTypeSalida,
			Quantity:    in.TotalQuantity,
			Date:        now,
			ProductID:   in.OriginProductID,
			WarehouseID: in.WarehouseID,
			UserID:      in.UserID,
			Note:        in.Note,
		}
		if err := r.Movements.Create(ctx, salida); err != nil {
			return err
		}
		written = append(written, salida)
		// Entradas de los destinos en el orden declarado.
		for _, d := range in.Destinations {
			entrada := &entity.Movement{
				BatchID:     batchID,
				Type:        entity.MovementTypeEntrada,
				Quantity:    d.Quantity,
				Price:       d.Price,
				Date:        now,
				ProductID:   d.ProductID,
				WarehouseID: in.WarehouseID,
				UserID:      in.UserID,
				Note:        in.Note,
			}
			if err := r.Movements.Create(ctx, entrada); err != nil {
				return err
			}
			written = append(written, entrada)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return written, nil
}

// CrearCombo consume los insumos y acredita el producto combo con la suma de
// las cantidades consumidas, en una sola transacción. Cada insumo se verifica
// contra su propio stock de forma independiente.
func (e *Engine) CrearCombo(ctx context.Context, tenant string, in ComboInput) ([]*entity.Movement, error) {
	if len(in.Ingredients) == 0 {
		return nil, domain.ErrInvalidInput
	}
	total := decimal.Zero
	for _, ing := range in.Ingredients {
		if !ing.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		total = total.Add(ing.Quantity)
	}
	if in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var written []*entity.Movement
	err := e.sessions.WithTx(ctx, tenant, func(r ports.Repos) error {
		if _, err := validateEntities(ctx, r, tenant, in.ComboProductID, in.WarehouseID, in.UserID, nil, entity.MovementTypeEntrada); err != nil {
			return err
		}
		ingredients := make(map[int64]*entity.Product, len(in.Ingredients))
		for _, ing := range in.Ingredients {
			p, err := r.Products.GetByID(ctx, ing.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return &domain.NotFoundError{Resource: "producto", ID: ing.ProductID, Tenant: tenant}
			}
			ingredients[ing.ProductID] = p
		}

		// Bloqueo en orden ascendente de id para que dos combos concurrentes
		// con insumos en común no se interbloqueen.
		lockOrder := make([]int64, 0, len(ingredients))
		for id := range ingredients {
			lockOrder = append(lockOrder, id)
		}
		sort.Slice(lockOrder, func(i, j int) bool { return lockOrder[i] < lockOrder[j] })
		for _, id := range lockOrder {
			if _, err := r.Products.GetForUpdate(ctx, id); err != nil {
				return err
			}
		}

		for _, ing := range in.Ingredients {
			stock, err := r.Ledger.StockOf(ctx, ing.ProductID, in.WarehouseID)
			if err != nil {
				return err
			}
			if stock.LessThan(ing.Quantity) {
				return &domain.InsufficientStockError{
					ProductCode: ingredients[ing.ProductID].Code,
					Available:   stock,
					Requested:   ing.Quantity,
				}
			}
		}

		batchID := uuid.New().String()
		now := dateOrNow(in.Date)
		for _, ing := range in.Ingredients {
			salida := &entity.Movement{
				BatchID:     batchID,
				Type:        entity.MovementTypeSalida,
				Quantity:    ing.Quantity,
				Date:        now,
				ProductID:   ing.ProductID,
				WarehouseID: in.WarehouseID,
				UserID:      in.UserID,
				Note:        in.Note,
			}
			if err := r.Movements.Create(ctx, salida); err != nil {
				return err
			}
			written = append(written, salida)
		}
		entrada := &entity.Movement{
			BatchID:     batchID,
			Type:        entity.MovementTypeEntrada,
			Quantity:    total,
			Price:       in.Price,
			Date:        now,
			ProductID:   in.ComboProductID,
			WarehouseID: in.WarehouseID,
			UserID:      in.UserID,
			Note:        in.Note,
		}
		if err := r.Movements.Create(ctx, entrada); err != nil {
			return err
		}
		written = append(written, entrada)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return written, nil
}
