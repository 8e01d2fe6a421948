package movements

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestImportRows(t *testing.T) {
	e, sessions := newTestEngine(t)
	ctx := context.Background()

	result, err := e.ImportRows(ctx, tenantPrincipal, 1, []ImportRow{
		{RowNumber: 2, Tipo: "entrada", ProductCode: "MAD-3M", Quantity: qty(100), WarehouseID: 1},
		{RowNumber: 3, Tipo: "salida", ProductCode: "MAD-3M", Quantity: qty(30), WarehouseID: 1},
		{RowNumber: 4, Tipo: "entrada", ProductCode: "NO-EXISTE", Quantity: qty(5), WarehouseID: 1},
		{RowNumber: 5, Tipo: "salida", ProductCode: "MAD-3M", Quantity: qty(500), WarehouseID: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 4, result.Errors[0].RowNumber)
	assert.Equal(t, 5, result.Errors[1].RowNumber)
	assert.Contains(t, result.Errors[1].Message, "stock insuficiente")

	// Las filas buenas quedaron escritas; las malas no.
	assert.Len(t, sessions.store(tenantPrincipal).movements, 2)

	stock, err := e.Stock(ctx, tenantPrincipal, 1, 1)
	require.NoError(t, err)
	assert.True(t, stock.Equal(qty(70)))
}

func TestImportRows_SalidaVeFilasAnterioresDelLote(t *testing.T) {
	e, _ := newTestEngine(t)

	// La salida de la fila 3 consume la entrada de la fila 2 del mismo lote.
	result, err := e.ImportRows(context.Background(), tenantPrincipal, 1, []ImportRow{
		{RowNumber: 2, Tipo: "entrada", ProductCode: "MAD-3M", Quantity: qty(10), WarehouseID: 1},
		{RowNumber: 3, Tipo: "salida", ProductCode: "MAD-3M", Quantity: qty(10), WarehouseID: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Empty(t, result.Errors)
}

func TestImportRows_TipoInvalido(t *testing.T) {
	e, _ := newTestEngine(t)

	result, err := e.ImportRows(context.Background(), tenantPrincipal, 1, []ImportRow{
		{RowNumber: 2, Tipo: "traslado", ProductCode: "MAD-3M", Quantity: qty(1), WarehouseID: 1},
	})
	require.NoError(t, err)
	assert.Zero(t, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "tipo inválido")
}

func TestImportRows_ErrorDeBaseDeDatosAbortaElLote(t *testing.T) {
	e, sessions := newTestEngine(t)

	// En Postgres un error de infraestructura deja la transacción abortada;
	// la fila que falla no puede tratarse como una fila inválida más.
	dbErr := errors.New("insert movimiento: conexión perdida")
	sessions.store(tenantPrincipal).createErr = dbErr

	result, err := e.ImportRows(context.Background(), tenantPrincipal, 1, []ImportRow{
		{RowNumber: 2, Tipo: "entrada", ProductCode: "MAD-3M", Quantity: qty(10), WarehouseID: 1},
		{RowNumber: 3, Tipo: "entrada", ProductCode: "MAD-3M", Quantity: qty(5), WarehouseID: 1},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "fila 2")
	assert.Nil(t, result)
	assert.Empty(t, sessions.store(tenantPrincipal).movements)
}

func buildTemplate(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	_, err := f.NewSheet(templateSheet)
	require.NoError(t, err)
	require.NoError(t, f.DeleteSheet("Sheet1"))

	header := []interface{}{"TIPO", "CODIGO PRODUCTO", "CANTIDAD", "PRECIO", "ID BODEGA", "ID CLIENTE", "OBSERVACION"}
	for i, row := range append([][]interface{}{header}, rows...) {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(templateSheet, cell, v))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestImportXLSX(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	buf := buildTemplate(t, [][]interface{}{
		{"entrada", "MAD-3M", 50, 1200, 1, "", "compra inicial"},
		{"salida", "MAD-3M", 20, 1500, 1, "", ""},
		{"entrada", "MAD-3M", "no-numero", "", 1, "", ""},
	})

	result, err := e.ImportXLSX(ctx, tenantPrincipal, 1, buf)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 4, result.Errors[0].RowNumber)
	assert.Contains(t, result.Errors[0].Message, "cantidad inválida")

	stock, err := e.Stock(ctx, tenantPrincipal, 1, 1)
	require.NoError(t, err)
	assert.True(t, stock.Equal(qty(30)))
}

func TestImportXLSX_SinHojaPlantilla(t *testing.T) {
	e, _ := newTestEngine(t)

	f := excelize.NewFile()
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, err := e.ImportXLSX(context.Background(), tenantPrincipal, 1, &buf)
	assert.Error(t, err)
}
