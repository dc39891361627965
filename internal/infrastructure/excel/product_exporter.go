// Package excel exporta el inventario a una hoja de cálculo .xlsx.
package excel

import (
	"bytes"
	"context"
	"fmt"

	"github.com/tealeg/xlsx"

	"github.com/crucitafashion/crucita-api/internal/application/usecase"
	"github.com/crucitafashion/crucita-api/internal/domain/entity"
)

var _ usecase.ProductExporter = (*ProductExporter)(nil)

const (
	sheetName  = "Inventario"
	dateLayout = "2006-01-02 15:04:05"
)

var headers = []string{"ID", "Código", "Cantidad", "Costo", "Categoría", "Talla", "Creado", "Actualizado"}

// ProductExporter implementa usecase.ProductExporter con tealeg/xlsx.
type ProductExporter struct{}

// NewProductExporter construye el exportador.
func NewProductExporter() *ProductExporter { return &ProductExporter{} }

// ExportProducts genera un .xlsx con una fila por producto. categories traduce category_id a nombre.
func (e *ProductExporter) ExportProducts(_ context.Context, products []*entity.Product, categories map[int64]string) ([]byte, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range headers {
		cell := header.AddCell()
		cell.SetString(h)
		cell.GetStyle().Font.Bold = true
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetInt64(p.ID)
		row.AddCell().SetString(p.Code)
		row.AddCell().SetInt64(p.Quantity)
		cost, _ := p.Cost.Float64()
		row.AddCell().SetFloatWithFormat(cost, "#,##0.00")
		row.AddCell().SetString(categories[p.CategoryID])
		size := ""
		if p.Size != nil {
			size = *p.Size
		}
		row.AddCell().SetString(size)
		row.AddCell().SetString(p.CreatedAt.Format(dateLayout))
		row.AddCell().SetString(p.UpdatedAt.Format(dateLayout))
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: escribir archivo: %w", err)
	}
	return buf.Bytes(), nil
}
