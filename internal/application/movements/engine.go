// Package movements implementa el motor de movimientos: entradas, salidas y
// las operaciones compuestas (dividir producto, crear combo). Toda escritura
// corre dentro de una transacción con el esquema del tenant fijado; toda
// validación de entidades ocurre antes de cualquier chequeo de stock o insert.
package movements

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-multibodega/internal/application/ports"
	"github.com/jhoicas/inventario-multibodega/internal/domain"
	"github.com/jhoicas/inventario-multibodega/internal/domain/entity"
)

// Engine registra movimientos de inventario de forma transaccional con bloqueo
// de fila (SELECT FOR UPDATE sobre productos) para serializar los chequeos de
// stock concurrentes.
type Engine struct {
	sessions ports.SessionRunner

	// RequireBalancedSplit exige en DividirProducto que la suma de los
	// destinos coincida con la cantidad total retirada del origen. Apagado
	// por defecto: mermas y empaques hacen legítima la diferencia.
	RequireBalancedSplit bool
}

// NewEngine construye el motor de movimientos.
func NewEngine(sessions ports.SessionRunner) *Engine {
	return &Engine{sessions: sessions}
}

// EntradaInput datos para registrar una entrada de stock.
type EntradaInput struct {
	ProductID   int64
	WarehouseID int64
	UserID      int64
	ClientID    *int64 // proveedor opcional
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	Date        *time.Time
	Note        string
}

// SalidaInput datos para registrar una salida de stock.
type SalidaInput struct {
	ProductID   int64
	WarehouseID int64
	UserID      int64
	ClientID    *int64 // cliente opcional
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	Date        *time.Time
	Note        string
}

// CreateEntrada valida las entidades referenciadas e inserta una entrada.
// Las entradas no tienen precondición de stock.
func (e *Engine) CreateEntrada(ctx context.Context, tenant string, in EntradaInput) (*entity.Movement, error) {
	if err := validateAmounts(in.Quantity, in.Price); err != nil {
		return nil, err
	}
	var mov *entity.Movement
	err := e.sessions.WithTx(ctx, tenant, func(r ports.Repos) error {
		if _, err := validateEntities(ctx, r, tenant, in.ProductID, in.WarehouseID, in.UserID, in.ClientID, entity.MovementTypeEntrada); err != nil {
			return err
		}
		m := &entity.Movement{
			Type:        entity.MovementTypeEntrada,
			Quantity:    in.Quantity,
			Price:       in.Price,
			Date:        dateOrNow(in.Date),
			ProductID:   in.ProductID,
			WarehouseID: in.WarehouseID,
			UserID:      in.UserID,
			ClientID:    in.ClientID,
			Note:        in.Note,
		}
		if err := r.Movements.Create(ctx, m); err != nil {
			return err
		}
		mov = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// CreateSalida valida las entidades, bloquea la fila del producto, verifica
// stock disponible >= cantidad y recién entonces inserta la salida.
func (e *Engine) CreateSalida(ctx context.Context, tenant string, in SalidaInput) (*entity.Movement, error) {
	if err := validateAmounts(in.Quantity, in.Price); err != nil {
		return nil, err
	}
	var mov *entity.Movement
	err := e.sessions.WithTx(ctx, tenant, func(r ports.Repos) error {
		product, err := validateEntities(ctx, r, tenant, in.ProductID, in.WarehouseID, in.UserID, in.ClientID, entity.MovementTypeSalida)
		if err != nil {
			return err
		}
		// Bloquea la fila del producto para que dos salidas concurrentes no
		// lean el mismo stock.
		if _, err := r.Products.GetForUpdate(ctx, in.ProductID); err != nil {
			return err
		}
		stock, err := r.Ledger.StockOf(ctx, in.ProductID, in.WarehouseID)
		if err != nil {
			return err
		}
		if stock.LessThan(in.Quantity) {
			return &domain.InsufficientStockError{
				ProductCode: product.Code,
				Available:   stock,
				Requested:   in.Quantity,
			}
		}
		m := &entity.Movement{
			Type:        entity.MovementTypeSalida,
			Quantity:    in.Quantity,
			Price:       in.Price,
			Date:        dateOrNow(in.Date),
			ProductID:   in.ProductID,
			WarehouseID: in.WarehouseID,
			UserID:      in.UserID,
			ClientID:    in.ClientID,
			Note:        in.Note,
		}
		if err := r.Movements.Create(ctx, m); err != nil {
			return err
		}
		mov = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// validateAmounts: cantidad estrictamente positiva, precio no negativo.
func validateAmounts(quantity, price decimal.Decimal) error {
	if !quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if price.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

// validateEntities comprueba que producto, bodega, usuario y (si viene)
// cliente existan en el esquema del tenant, y que el tipo del cliente sea
// compatible con el tipo de movimiento. Devuelve el producto para que el
// caller informe su código en errores de stock.
func validateEntities(ctx context.Context, r ports.Repos, tenant string, productID, warehouseID, userID int64, clientID *int64, movType string) (*entity.Product, error) {
	product, err := r.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.NotFoundError{Resource: "producto", ID: productID, Tenant: tenant}
	}
	warehouse, err := r.Warehouses.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, &domain.NotFoundError{Resource: "bodega", ID: warehouseID, Tenant: tenant}
	}
	user, err := r.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &domain.NotFoundError{Resource: "usuario", ID: userID, Tenant: tenant}
	}
	if clientID != nil {
		client, err := r.Clients.GetByID(ctx, *clientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, &domain.NotFoundError{Resource: "cliente", ID: *clientID, Tenant: tenant}
		}
		switch movType {
		case entity.MovementTypeEntrada:
			if !client.AllowsEntrada() {
				return nil, domain.ErrInvalidOperation
			}
		case entity.MovementTypeSalida:
			if !client.AllowsSalida() {
				return nil, domain.ErrInvalidOperation
			}
		}
	}
	return product, nil
}

func dateOrNow(d *time.Time) time.Time {
	if d != nil {
		return *d
	}
	return time.Now()
}
