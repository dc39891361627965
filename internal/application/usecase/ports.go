package usecase

import (
	"context"

	"github.com/crucitafashion/crucita-api/internal/domain/entity"
)

// ReceiptGenerator genera el comprobante imprimible de una venta.
type ReceiptGenerator interface {
	SaleReceipt(ctx context.Context, sale *entity.Sale, products []*entity.Product) ([]byte, error)
}

// ProductExporter serializa el inventario a una hoja de cálculo.
// categories mapea id de categoría a su nombre.
type ProductExporter interface {
	ExportProducts(ctx context.Context, products []*entity.Product, categories map[int64]string) ([]byte, error)
}
