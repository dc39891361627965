package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crucitafashion/crucita-api/internal/application/dto"
	"github.com/crucitafashion/crucita-api/internal/domain"
	"github.com/crucitafashion/crucita-api/internal/domain/entity"
	"github.com/crucitafashion/crucita-api/internal/domain/permission"
	"github.com/crucitafashion/crucita-api/internal/domain/repository"
	"github.com/crucitafashion/crucita-api/internal/domain/validation"
)

// SaleUseCase casos de uso de ventas.
type SaleUseCase struct {
	repo     repository.SaleRepository
	products repository.ProductRepository
	receipts ReceiptGenerator
	policy   permission.Policy
}

// NewSaleUseCase construye el caso de uso. receipts puede ser nil si no se exponen comprobantes.
func NewSaleUseCase(repo repository.SaleRepository, products repository.ProductRepository, receipts ReceiptGenerator) *SaleUseCase {
	return &SaleUseCase{repo: repo, products: products, receipts: receipts, policy: permission.StaffPolicy}
}

// Create registra una venta.
func (uc *SaleUseCase) Create(ctx context.Context, actor permission.Actor, in dto.SaleRequest) (*dto.SaleResponse, error) {
	if err := uc.policy.AuthorizeView(actor); err != nil {
		return nil, err
	}
	sale, err := uc.validate(ctx, in, 0)
	if err != nil {
		return nil, err
	}
	sale.CreatedAt = time.Now()
	if err := uc.repo.Create(ctx, sale); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, codeTaken()
		}
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// GetByID obtiene una venta.
func (uc *SaleUseCase) GetByID(ctx context.Context, actor permission.Actor, id int64) (*dto.SaleResponse, error) {
	if err := uc.policy.AuthorizeView(actor); err != nil {
		return nil, err
	}
	sale, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// Update reemplaza la venta completa (PUT).
func (uc *SaleUseCase) Update(ctx context.Context, actor permission.Actor, id int64, in dto.SaleRequest) (*dto.SaleResponse, error) {
	if err := uc.policy.AuthorizeView(actor); err != nil {
		return nil, err
	}
	current, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	sale, err := uc.validate(ctx, in, id)
	if err != nil {
		return nil, err
	}
	sale.ID = current.ID
	sale.CreatedAt = current.CreatedAt
	if err := uc.repo.Update(ctx, sale); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, codeTaken()
		}
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// Delete elimina una venta. Los productos asociados no se tocan.
func (uc *SaleUseCase) Delete(ctx context.Context, actor permission.Actor, id int64) error {
	if err := uc.policy.AuthorizeView(actor); err != nil {
		return err
	}
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// Search filtra ventas por codigo y fecha.
func (uc *SaleUseCase) Search(ctx context.Context, actor permission.Actor, in dto.SearchRequest) (*dto.SaleListResponse, error) {
	if err := uc.policy.AuthorizeView(actor); err != nil {
		return nil, err
	}
	f, ok := buildFilter(saleFilters, in)
	out := &dto.SaleListResponse{Items: []dto.SaleResponse{}, Page: pageOf(f)}
	if !ok {
		return out, nil
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	for _, s := range list {
		out.Items = append(out.Items, *toSaleResponse(s))
	}
	return out, nil
}

// Receipt genera el comprobante PDF de una venta.
//
// Retorna:
//   - (pdf, filename, nil)  si todo sale bien.
//   - domain.ErrForbidden   si el actor no es personal de la tienda.
//   - domain.ErrNotFound    si la venta no existe.
func (uc *SaleUseCase) Receipt(ctx context.Context, actor permission.Actor, id int64) ([]byte, string, error) {
	if err := uc.policy.AuthorizeView(actor); err != nil {
		return nil, "", err
	}
	if uc.receipts == nil {
		return nil, "", fmt.Errorf("comprobante: generador no configurado")
	}
	sale, err := uc.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	products := make([]*entity.Product, 0, len(sale.ProductIDs))
	for _, pid := range sale.ProductIDs {
		p, err := uc.products.GetByID(ctx, pid)
		if err != nil {
			return nil, "", fmt.Errorf("comprobante: obtener producto %d: %w", pid, err)
		}
		if p != nil {
			products = append(products, p)
		}
	}
	pdf, err := uc.receipts.SaleReceipt(ctx, sale, products)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generación fallida: %w", err)
	}
	return pdf, fmt.Sprintf("venta_%s.pdf", sale.Code), nil
}

func (uc *SaleUseCase) load(ctx context.Context, id int64) (*entity.Sale, error) {
	sale, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

func (uc *SaleUseCase) validate(ctx context.Context, in dto.SaleRequest, selfID int64) (*entity.Sale, error) {
	var (
		s        entity.Sale
		infraErr error
	)
	verr := validation.Run(
		validation.Rule{Field: "productos", Check: func() error {
			existing, err := existingProducts(ctx, uc.products, in.Products)
			if err != nil {
				infraErr = err
				return nil
			}
			if err := validation.ProductRefs(in.Products, existing); err != nil {
				return err
			}
			s.ProductIDs = dedupe(in.Products)
			return nil
		}},
		validation.Rule{Field: "codigo", Check: func() (err error) {
			s.Code, err = validation.Code(in.Code)
			return err
		}},
		validation.Rule{Field: "codigo", Check: func() error {
			existing, err := uc.repo.GetByCode(ctx, s.Code)
			if err != nil {
				infraErr = err
				return nil
			}
			if existing != nil && existing.ID != selfID {
				return validation.ErrCodeTaken
			}
			return nil
		}},
		validation.Rule{Field: "costo_total", Check: func() (err error) {
			s.TotalCost, err = validation.Cost(in.TotalCost)
			return err
		}},
		validation.Rule{Field: "fecha", Check: func() (err error) {
			s.Date, err = validation.Date(in.Date)
			return err
		}},
		validation.Rule{Field: "hora", Check: func() (err error) {
			s.Time, err = validation.Timestamp(in.Time)
			return err
		}},
	)
	if infraErr != nil {
		return nil, infraErr
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return &s, nil
}

// existingProducts consulta solo si hay ids; una lista vacía la rechaza ProductRefs.
func existingProducts(ctx context.Context, repo repository.ProductRepository, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return repo.ExistingIDs(ctx, ids)
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(validation.DateLayout, s)
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:        s.ID,
		Products:  s.ProductIDs,
		Code:      s.Code,
		TotalCost: s.TotalCost,
		Date:      s.Date.Format(validation.DateLayout),
		Time:      s.Time,
	}
}
