package movements

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-multibodega/internal/application/ports"
	"github.com/jhoicas/inventario-multibodega/internal/domain/entity"
	"github.com/jhoicas/inventario-multibodega/internal/domain/repository"
)

// ExportMovimientos genera el reporte Excel de movimientos con una hoja
// Entradas y otra Salidas. El caller es dueño del archivo devuelto.
func (e *Engine) ExportMovimientos(ctx context.Context, tenant string, f repository.MovementFilter) (*excelize.File, error) {
	var rows []*entity.MovementDetail
	err := e.sessions.WithSession(ctx, tenant, func(r ports.Repos) error {
		var err error
		rows, _, err = r.Movements.List(ctx, f, 1, 100000)
		return err
	})
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	header := []string{"ID", "FECHA", "CODIGO PRODUCTO", "DESCRIPCION", "CANTIDAD", "PRECIO", "BODEGA", "CLIENTE", "USUARIO", "OBSERVACION"}
	for _, sheet := range []string{"Entradas", "Salidas"} {
		if _, err := file.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("crear hoja %s: %w", sheet, err)
		}
		writeHeader(file, sheet, header)
	}
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	nextRow := map[string]int{"Entradas": 2, "Salidas": 2}
	for _, m := range rows {
		sheet := "Entradas"
		if m.Type == entity.MovementTypeSalida {
			sheet = "Salidas"
		}
		n := nextRow[sheet]
		setRow(file, sheet, n, []interface{}{
			m.ID,
			m.Date.Format("2006-01-02 15:04"),
			m.ProductCode,
			m.ProductDescription,
			m.Quantity.String(),
			m.Price.String(),
			m.WarehouseName,
			m.ClientName,
			m.UserName,
			m.Note,
		})
		nextRow[sheet] = n + 1
	}
	return file, nil
}

// ExportInventario genera el reporte Excel del inventario general filtrado.
func (e *Engine) ExportInventario(ctx context.Context, tenant string, f repository.InventoryFilter) (*excelize.File, error) {
	report, err := e.InventarioGeneral(ctx, tenant, f)
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	const sheet = "Inventario"
	if _, err := file.NewSheet(sheet); err != nil {
		return nil, err
	}
	writeHeader(file, sheet, []string{"CODIGO", "DESCRIPCION", "UNIDAD", "BODEGA", "STOCK", "ENTRADAS", "SALIDAS", "MOVIMIENTOS", "ULTIMO MOVIMIENTO"})
	for i, row := range report.Rows {
		setRow(file, sheet, i+2, []interface{}{
			row.ProductCode,
			row.ProductDescription,
			row.UnitName,
			row.WarehouseName,
			row.Stock.String(),
			row.TotalEntradas.String(),
			row.TotalSalidas.String(),
			row.TotalMovements,
			row.LastMovement.Format("2006-01-02 15:04"),
		})
	}
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	return file, nil
}

// ExportPlantilla genera la plantilla de importación: la hoja PLANTILLA con
// el encabezado esperado por ImportXLSX más hojas de referencia con los
// productos, bodegas y clientes vigentes del tenant.
func (e *Engine) ExportPlantilla(ctx context.Context, tenant string) (*excelize.File, error) {
	var (
		products   []*entity.Product
		warehouses []*entity.Warehouse
		clients    []*entity.Client
	)
	err := e.sessions.WithSession(ctx, tenant, func(r ports.Repos) error {
		var err error
		if products, _, err = r.Products.List(ctx, "", 1, 100000); err != nil {
			return err
		}
		if warehouses, err = r.Warehouses.List(ctx); err != nil {
			return err
		}
		clients, _, err = r.Clients.List(ctx, "", 1, 100000)
		return err
	})
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	if _, err := file.NewSheet(templateSheet); err != nil {
		return nil, err
	}
	writeHeader(file, templateSheet, []string{"TIPO", "CODIGO PRODUCTO", "CANTIDAD", "PRECIO", "ID BODEGA", "ID CLIENTE", "OBSERVACION"})

	if _, err := file.NewSheet("PRODUCTOS"); err != nil {
		return nil, err
	}
	writeHeader(file, "PRODUCTOS", []string{"CODIGO", "DESCRIPCION", "UNIDAD"})
	for i, p := range products {
		setRow(file, "PRODUCTOS", i+2, []interface{}{p.Code, p.Description, p.UnitName})
	}

	if _, err := file.NewSheet("BODEGAS"); err != nil {
		return nil, err
	}
	writeHeader(file, "BODEGAS", []string{"ID", "NOMBRE", "UBICACION"})
	for i, w := range warehouses {
		setRow(file, "BODEGAS", i+2, []interface{}{w.ID, w.Name, w.Location})
	}

	if _, err := file.NewSheet("CLIENTES"); err != nil {
		return nil, err
	}
	writeHeader(file, "CLIENTES", []string{"ID", "NOMBRE", "TIPO"})
	for i, c := range clients {
		setRow(file, "CLIENTES", i+2, []interface{}{c.ID, c.Name, c.Type})
	}

	if err := file.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	return file, nil
}

func writeHeader(f *excelize.File, sheet string, cols []string) {
	setRow(f, sheet, 1, toAny(cols))
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		// SetCellValue solo falla con coordenadas inválidas, ya descartadas.
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func toAny(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
