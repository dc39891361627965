package excel

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"github.com/crucitafashion/crucita-api/internal/domain/entity"
)

func TestExportProducts(t *testing.T) {
	size := "7.5"
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	products := []*entity.Product{
		{ID: 3, Code: "ZP-01", Quantity: 4, Cost: decimal.RequireFromString("899.90"), CategoryID: 2, Size: &size, CreatedAt: now, UpdatedAt: now},
		{ID: 4, Code: "BL-01", Quantity: 1, Cost: decimal.NewFromInt(120), CategoryID: 9, CreatedAt: now, UpdatedAt: now},
	}

	out, err := NewProductExporter().ExportProducts(context.Background(), products, map[int64]string{2: "Zapato", 9: "Bolsa"})
	require.NoError(t, err)

	file, err := xlsx.OpenBinary(out)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	sheet := file.Sheets[0]
	assert.Equal(t, sheetName, sheet.Name)
	require.Len(t, sheet.Rows, 3)

	assert.Equal(t, "Código", sheet.Rows[0].Cells[1].Value)
	assert.Equal(t, "ZP-01", sheet.Rows[1].Cells[1].Value)
	assert.Equal(t, "Zapato", sheet.Rows[1].Cells[4].Value)
	assert.Equal(t, "7.5", sheet.Rows[1].Cells[5].Value)
	assert.Equal(t, "Bolsa", sheet.Rows[2].Cells[4].Value)
}
