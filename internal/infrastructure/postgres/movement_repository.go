package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-multibodega/internal/domain/entity"
	"github.com/jhoicas/inventario-multibodega/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre PostgreSQL (usable
// con conexión o tx). Las tablas se resuelven por el search_path del tenant.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar conexión o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// psql es el builder con placeholders $1, $2... de PostgreSQL.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// movementRow es la fila del join de movimientos con sus referencias.
type movementRow struct {
	ID                 int64           `db:"id"`
	BatchID            *string         `db:"batch_id"`
	Type               string          `db:"tipo"`
	Quantity           decimal.Decimal `db:"cantidad"`
	Price              decimal.Decimal `db:"precio"`
	Date               time.Time       `db:"fecha"`
	ProductID          int64           `db:"producto_id"`
	WarehouseID        int64           `db:"bodega_id"`
	UserID             int64           `db:"usuario_id"`
	ClientID           *int64          `db:"cliente_id"`
	Note               *string         `db:"observacion"`
	ProductCode        string          `db:"producto_codigo"`
	ProductDescription string          `db:"producto_descripcion"`
	UnitName           *string         `db:"unidad_nombre"`
	WarehouseName      string          `db:"bodega_nombre"`
	UserName           string          `db:"usuario_nombre"`
	ClientName         *string         `db:"cliente_nombre"`
	ClientType         *string         `db:"cliente_tipo"`
}

func (r movementRow) toEntity() *entity.MovementDetail {
	d := &entity.MovementDetail{
		Movement: entity.Movement{
			ID:          r.ID,
			Type:        r.Type,
			Quantity:    r.Quantity,
			Price:       r.Price,
			Date:        r.Date,
			ProductID:   r.ProductID,
			WarehouseID: r.WarehouseID,
			UserID:      r.UserID,
			ClientID:    r.ClientID,
		},
		ProductCode:        r.ProductCode,
		ProductDescription: r.ProductDescription,
		WarehouseName:      r.WarehouseName,
		UserName:           r.UserName,
	}
	if r.BatchID != nil {
		d.BatchID = *r.BatchID
	}
	if r.Note != nil {
		d.Note = *r.Note
	}
	if r.UnitName != nil {
		d.UnitName = *r.UnitName
	}
	if r.ClientName != nil {
		d.ClientName = *r.ClientName
	}
	if r.ClientType != nil {
		d.ClientType = *r.ClientType
	}
	return d
}

// detailSelect devuelve el SELECT base del join de movimientos.
func detailSelect() sq.SelectBuilder {
	return psql.Select(
		"m.id", "m.batch_id", "m.tipo", "m.cantidad", "m.precio", "m.fecha",
		"m.producto_id", "m.bodega_id", "m.usuario_id", "m.cliente_id", "m.observacion",
		"p.codigo AS producto_codigo", "p.descripcion AS producto_descripcion",
		"um.nombre AS unidad_nombre",
		"b.nombre AS bodega_nombre",
		"u.nombre AS usuario_nombre",
		"c.nombre AS cliente_nombre", "c.tipo AS cliente_tipo",
	).
		From("movimientos m").
		Join("productos p ON p.id = m.producto_id").
		LeftJoin("unidades_medida um ON um.id = p.unidad_medida_id").
		Join("bodegas b ON b.id = m.bodega_id").
		Join("usuarios u ON u.id = m.usuario_id").
		LeftJoin("clientes c ON c.id = m.cliente_id")
}

// applyFilter traduce el criteria object a cláusulas WHERE. Campo en cero = sin filtro.
func applyFilter(b sq.SelectBuilder, f repository.MovementFilter) sq.SelectBuilder {
	if f.Type != "" {
		b = b.Where(sq.Eq{"m.tipo": f.Type})
	}
	if f.ProductID != 0 {
		b = b.Where(sq.Eq{"m.producto_id": f.ProductID})
	}
	if f.ProductCode != "" {
		b = b.Where(sq.ILike{"p.codigo": "%" + f.ProductCode + "%"})
	}
	if f.WarehouseID != 0 {
		b = b.Where(sq.Eq{"m.bodega_id": f.WarehouseID})
	}
	if f.ClientID != 0 {
		b = b.Where(sq.Eq{"m.cliente_id": f.ClientID})
	}
	if f.UserID != 0 {
		b = b.Where(sq.Eq{"m.usuario_id": f.UserID})
	}
	if f.DateFrom != nil {
		b = b.Where(sq.GtOrEq{"m.fecha": *f.DateFrom})
	}
	if f.DateTo != nil {
		b = b.Where(sq.LtOrEq{"m.fecha": *f.DateTo})
	}
	return b
}

// Create persiste un movimiento y asigna el ID generado.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movimientos (batch_id, tipo, cantidad, precio, fecha, producto_id, bodega_id, usuario_id, cliente_id, observacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	batchID := (*string)(nil)
	if m.BatchID != "" {
		batchID = &m.BatchID
	}
	note := (*string)(nil)
	if m.Note != "" {
		note = &m.Note
	}
	if m.Date.IsZero() {
		m.Date = time.Now()
	}
	err := r.q.QueryRow(ctx, query,
		batchID, m.Type, m.Quantity, m.Price, m.Date,
		m.ProductID, m.WarehouseID, m.UserID, m.ClientID, note,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento con sus referencias resueltas. nil si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*entity.MovementDetail, error) {
	sql, args, err := detailSelect().Where(sq.Eq{"m.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get movimiento: %w", err)
	}
	var row movementRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movimiento: %w", err)
	}
	return row.toEntity(), nil
}

// Update actualiza los campos corregibles de un movimiento (corrección
// administrativa; las validaciones viven en el caso de uso). El tipo, el
// producto y la bodega nunca cambian.
func (r *MovementRepo) Update(ctx context.Context, m *entity.Movement) error {
	note := (*string)(nil)
	if m.Note != "" {
		note = &m.Note
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE movimientos SET cantidad = $2, precio = $3, fecha = $4, cliente_id = $5, observacion = $6 WHERE id = $1`,
		m.ID, m.Quantity, m.Price, m.Date, m.ClientID, note,
	)
	if err != nil {
		return fmt.Errorf("update movimiento: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete elimina un movimiento por ID.
func (r *MovementRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM movimientos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movimiento: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// List devuelve una página de movimientos filtrados, más el total sin paginar.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter, page, limit int) ([]*entity.MovementDetail, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	countSQL, countArgs, err := applyFilter(
		psql.Select("COUNT(*)").
			From("movimientos m").
			Join("productos p ON p.id = m.producto_id"),
		f,
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count movimientos: %w", err)
	}
	var total int64
	if err := r.q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movimientos: %w", err)
	}

	sql, args, err := applyFilter(detailSelect(), f).
		OrderBy("m.fecha DESC", "m.id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list movimientos: %w", err)
	}
	var rows []movementRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list movimientos: %w", err)
	}
	list := make([]*entity.MovementDetail, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, total, nil
}

// ListByProductCode devuelve los movimientos de un producto por código exacto,
// más reciente primero.
func (r *MovementRepo) ListByProductCode(ctx context.Context, code string) ([]*entity.MovementDetail, error) {
	sql, args, err := detailSelect().
		Where(sq.Eq{"p.codigo": code}).
		OrderBy("m.fecha DESC", "m.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list by codigo: %w", err)
	}
	var rows []movementRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list by codigo: %w", err)
	}
	list := make([]*entity.MovementDetail, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}
