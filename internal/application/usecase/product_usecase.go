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

// exportPageSize tamaño de lote al recorrer el inventario completo para exportarlo.
const exportPageSize = 500

// ProductUseCase casos de uso CRUD para productos del inventario.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	exporter   ProductExporter
	policy     permission.Policy
}

// NewProductUseCase construye el caso de uso. exporter puede ser nil si no se expone la exportación.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository, exporter ProductExporter) *ProductUseCase {
	return &ProductUseCase{
		repo:       repo,
		categories: categories,
		exporter:   exporter,
		policy:     permission.StaffPolicy,
	}
}

// Create valida y persiste un nuevo producto.
func (uc *ProductUseCase) Create(ctx context.Context, actor permission.Actor, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := uc.policy.AuthorizeView(actor); err != nil {
		return nil, err
	}
	product, err := uc.validate(ctx, in, 0)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	if err := uc.repo.Create(ctx, product); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, codeTaken()
		}
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, actor permission.Actor, id int64) (*dto.ProductResponse, error) {
	if err := uc.policy.AuthorizeView(actor); err != nil {
		return nil, err
	}
	product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update reemplaza todos los campos del producto (PUT).
func (uc *ProductUseCase) Update(ctx context.Context, actor permission.Actor, id int64, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := uc.policy.AuthorizeView(actor); err != nil {
		return nil, err
	}
	current, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	product, err := uc.validate(ctx, in, id)
	if err != nil {
		return nil, err
	}
	product.ID = current.ID
	product.CreatedAt = current.CreatedAt
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, codeTaken()
		}
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, actor permission.Actor, id int64) error {
	if err := uc.policy.AuthorizeView(actor); err != nil {
		return err
	}
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// Search filtra productos por igualdad sobre codigo, cantidad, costo, categoria y talla.
func (uc *ProductUseCase) Search(ctx context.Context, actor permission.Actor, in dto.SearchRequest) (*dto.ProductListResponse, error) {
	if err := uc.policy.AuthorizeView(actor); err != nil {
		return nil, err
	}
	f, ok := buildFilter(productFilters, in)
	out := &dto.ProductListResponse{Items: []dto.ProductResponse{}, Page: pageOf(f)}
	if !ok {
		return out, nil
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		out.Items = append(out.Items, *toProductResponse(p))
	}
	return out, nil
}

// Export genera la hoja de cálculo con todo el inventario.
func (uc *ProductUseCase) Export(ctx context.Context, actor permission.Actor) ([]byte, string, error) {
	if err := uc.policy.AuthorizeView(actor); err != nil {
		return nil, "", err
	}
	if uc.exporter == nil {
		return nil, "", fmt.Errorf("export: exportador no configurado")
	}
	var products []*entity.Product
	for offset := 0; ; offset += exportPageSize {
		page, err := uc.repo.List(ctx, repository.Filter{Limit: exportPageSize, Offset: offset})
		if err != nil {
			return nil, "", fmt.Errorf("export: listar productos: %w", err)
		}
		products = append(products, page...)
		if len(page) < exportPageSize {
			break
		}
	}
	cats, err := uc.categories.List(ctx, repository.Filter{})
	if err != nil {
		return nil, "", fmt.Errorf("export: listar categorías: %w", err)
	}
	names := make(map[int64]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}
	data, err := uc.exporter.ExportProducts(ctx, products, names)
	if err != nil {
		return nil, "", fmt.Errorf("export: generar archivo: %w", err)
	}
	return data, fmt.Sprintf("inventario_%s.xlsx", time.Now().Format("20060102")), nil
}

func (uc *ProductUseCase) load(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// validate aplica las reglas por campo en orden fijo y acumula todos los errores.
// selfID excluye al propio producto de la verificación de código único.
func (uc *ProductUseCase) validate(ctx context.Context, in dto.ProductRequest, selfID int64) (*entity.Product, error) {
	var (
		p          entity.Product
		category   *entity.Category
		categoryID int64
		size       *string
		infraErr   error
	)
	verr := validation.Run(
		validation.Rule{Field: "codigo", Check: func() (err error) {
			p.Code, err = validation.Code(in.Code)
			return err
		}},
		validation.Rule{Field: "codigo", Check: func() error {
			existing, err := uc.repo.GetByCode(ctx, p.Code)
			if err != nil {
				infraErr = err
				return nil
			}
			if existing != nil && existing.ID != selfID {
				return validation.ErrCodeTaken
			}
			return nil
		}},
		validation.Rule{Field: "cantidad", Check: func() (err error) {
			p.Quantity, err = validation.Quantity(in.Quantity)
			return err
		}},
		validation.Rule{Field: "costo", Check: func() (err error) {
			p.Cost, err = validation.Cost(in.Cost)
			return err
		}},
		validation.Rule{Field: "categoria", Check: func() (err error) {
			categoryID, err = validation.Reference(in.Category)
			return err
		}},
		validation.Rule{Field: "categoria", Check: func() error {
			c, err := uc.categories.GetByID(ctx, categoryID)
			if err != nil {
				infraErr = err
				return nil
			}
			if c == nil {
				return validation.ErrCategoryUnknown
			}
			category = c
			return nil
		}},
		validation.Rule{Field: "talla", Check: func() (err error) {
			size, err = validation.RawSize(in.Size)
			return err
		}},
		validation.Rule{Field: "talla", Check: func() (err error) {
			if category == nil {
				return nil
			}
			p.Size, err = validation.Size(category.Name, size)
			return err
		}},
	)
	if infraErr != nil {
		return nil, infraErr
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	p.CategoryID = category.ID
	return &p, nil
}

func codeTaken() error {
	verr := domain.NewValidationError()
	verr.AddErr("codigo", validation.ErrCodeTaken)
	return verr
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:       p.ID,
		Code:     p.Code,
		Quantity: p.Quantity,
		Cost:     p.Cost,
		Category: p.CategoryID,
		Size:     p.Size,
	}
}
