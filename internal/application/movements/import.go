package movements

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-multibodega/internal/application/ports"
	"github.com/jhoicas/inventario-multibodega/internal/domain/entity"
)

// Nombre de la hoja que la plantilla de importación debe contener.
const templateSheet = "PLANTILLA"

// ImportRow una fila de importación masiva ya tipada. RowNumber es la fila
// 1-based de la hoja de cálculo, para que los errores sean ubicables.
type ImportRow struct {
	RowNumber   int
	Tipo        string
	ProductCode string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	WarehouseID int64
	ClientID    *int64
	Note        string
}

// ImportError el motivo por el que una fila no se importó.
type ImportError struct {
	RowNumber int
	Message   string
}

// ImportResult saldo de una importación: cuántas filas entraron y el detalle
// de las que no.
type ImportResult struct {
	Imported int
	Errors   []ImportError
}

// rowError una falla de validación propia de la fila: se anota en el
// resultado y la fila se salta. Un error que NO sea rowError viene de la
// infraestructura (la transacción puede haber quedado abortada en Postgres)
// y detiene el lote entero.
type rowError struct{ msg string }

func (e rowError) Error() string { return e.msg }

func rowErrorf(format string, args ...interface{}) error {
	return rowError{msg: fmt.Sprintf(format, args...)}
}

// ImportRows importa un lote de filas en UNA transacción. Cada fila se
// revalida con las mismas reglas de entrada/salida; una fila inválida se
// anota en Errors y se salta sin abortar el lote. Un error de base de datos
// aborta la importación completa. Las filas buenas quedan escritas solo si
// el commit del lote llega a buen puerto.
func (e *Engine) ImportRows(ctx context.Context, tenant string, userID int64, rows []ImportRow) (*ImportResult, error) {
	result := &ImportResult{}
	err := e.sessions.WithTx(ctx, tenant, func(r ports.Repos) error {
		now := time.Now()
		for _, row := range rows {
			err := e.importOne(ctx, r, tenant, userID, row, now)
			if err == nil {
				result.Imported++
				continue
			}
			var re rowError
			if errors.As(err, &re) {
				result.Errors = append(result.Errors, ImportError{
					RowNumber: row.RowNumber,
					Message:   re.Error(),
				})
				continue
			}
			return fmt.Errorf("fila %d: %w", row.RowNumber, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (e *Engine) importOne(ctx context.Context, r ports.Repos, tenant string, userID int64, row ImportRow, now time.Time) error {
	tipo := strings.ToLower(strings.TrimSpace(row.Tipo))
	if tipo != entity.MovementTypeEntrada && tipo != entity.MovementTypeSalida {
		return rowErrorf("tipo inválido %q", row.Tipo)
	}
	if err := validateAmounts(row.Quantity, row.Price); err != nil {
		return rowErrorf("cantidad o precio inválido")
	}
	product, err := r.Products.GetByCode(ctx, strings.TrimSpace(row.ProductCode))
	if err != nil {
		return err
	}
	if product == nil {
		return rowErrorf("producto %q no existe", row.ProductCode)
	}
	warehouse, err := r.Warehouses.GetByID(ctx, row.WarehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return rowErrorf("bodega %d no existe", row.WarehouseID)
	}
	if row.ClientID != nil {
		client, err := r.Clients.GetByID(ctx, *row.ClientID)
		if err != nil {
			return err
		}
		if client == nil {
			return rowErrorf("cliente %d no existe", *row.ClientID)
		}
		if tipo == entity.MovementTypeEntrada && !client.AllowsEntrada() {
			return rowErrorf("el cliente %d no es proveedor", *row.ClientID)
		}
		if tipo == entity.MovementTypeSalida && !client.AllowsSalida() {
			return rowErrorf("el cliente %d no es comprador", *row.ClientID)
		}
	}
	if tipo == entity.MovementTypeSalida {
		if _, err := r.Products.GetForUpdate(ctx, product.ID); err != nil {
			return err
		}
		// Dentro del lote, el stock ya refleja las filas anteriores de la
		// misma transacción.
		stock, err := r.Ledger.StockOf(ctx, product.ID, row.WarehouseID)
		if err != nil {
			return err
		}
		if stock.LessThan(row.Quantity) {
			return rowErrorf("stock insuficiente de %s: disponible %s, solicitado %s",
				product.Code, stock.String(), row.Quantity.String())
		}
	}
	return r.Movements.Create(ctx, &entity.Movement{
		Type:        tipo,
		Quantity:    row.Quantity,
		Price:       row.Price,
		Date:        now,
		ProductID:   product.ID,
		WarehouseID: row.WarehouseID,
		UserID:      userID,
		ClientID:    row.ClientID,
		Note:        row.Note,
	})
}

// ImportXLSX lee la hoja PLANTILLA de un archivo Excel y la importa. Columnas
// esperadas: TIPO, CODIGO PRODUCTO, CANTIDAD, PRECIO, ID BODEGA, ID CLIENTE,
// OBSERVACION. La primera fila es el encabezado; las filas vacías se ignoran.
func (e *Engine) ImportXLSX(ctx context.Context, tenant string, userID int64, reader io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("abrir archivo: %w", err)
	}
	defer f.Close()

	sheetRows, err := f.GetRows(templateSheet)
	if err != nil {
		return nil, fmt.Errorf("la hoja %s no existe en el archivo", templateSheet)
	}

	var (
		rows      []ImportRow
		parseErrs []ImportError
	)
	for i, cells := range sheetRows {
		if i == 0 {
			continue // encabezado
		}
		rowNum := i + 1
		if isEmptyRow(cells) {
			continue
		}
		row, err := parseImportRow(rowNum, cells)
		if err != nil {
			parseErrs = append(parseErrs, ImportError{RowNumber: rowNum, Message: err.Error()})
			continue
		}
		rows = append(rows, row)
	}

	result, err := e.ImportRows(ctx, tenant, userID, rows)
	if err != nil {
		return nil, err
	}
	result.Errors = append(parseErrs, result.Errors...)
	return result, nil
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseImportRow(rowNum int, cells []string) (ImportRow, error) {
	cell := func(i int) string {
		if i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}
	row := ImportRow{
		RowNumber:   rowNum,
		Tipo:        cell(0),
		ProductCode: cell(1),
		Note:        cell(6),
	}
	qty, err := decimal.NewFromString(cell(2))
	if err != nil {
		return row, fmt.Errorf("cantidad inválida %q", cell(2))
	}
	row.Quantity = qty
	if s := cell(3); s != "" {
		price, err := decimal.NewFromString(s)
		if err != nil {
			return row, fmt.Errorf("precio inválido %q", s)
		}
		row.Price = price
	}
	whID, err := strconv.ParseInt(cell(4), 10, 64)
	if err != nil {
		return row, fmt.Errorf("id de bodega inválido %q", cell(4))
	}
	row.WarehouseID = whID
	if s := cell(5); s != "" {
		clientID, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return row, fmt.Errorf("id de cliente inválido %q", s)
		}
		row.ClientID = &clientID
	}
	return row, nil
}
