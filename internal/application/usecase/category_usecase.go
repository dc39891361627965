package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/crucitafashion/crucita-api/internal/application/dto"
	"github.com/crucitafashion/crucita-api/internal/domain"
	"github.com/crucitafashion/crucita-api/internal/domain/entity"
	"github.com/crucitafashion/crucita-api/internal/domain/permission"
	"github.com/crucitafashion/crucita-api/internal/domain/repository"
	"github.com/crucitafashion/crucita-api/internal/domain/validation"
)

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	products repository.ProductRepository
	policy   permission.Policy
}

// NewCategoryUseCase construye el caso de uso. products se consulta al renombrar,
// porque la talla de un producto depende del nombre de su categoría.
func NewCategoryUseCase(repo repository.CategoryRepository, products repository.ProductRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, products: products, policy: permission.StaffPolicy}
}

// Create crea una categoría con nombre único.
func (uc *CategoryUseCase) Create(ctx context.Context, actor permission.Actor, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := uc.policy.AuthorizeView(actor); err != nil {
		return nil, err
	}
	name, err := uc.validate(ctx, in, 0)
	if err != nil {
		return nil, err
	}
	category := &entity.Category{Name: name}
	if err := uc.repo.Create(ctx, category); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, categoryNameTaken()
		}
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetByID obtiene una categoría.
func (uc *CategoryUseCase) GetByID(ctx context.Context, actor permission.Actor, id int64) (*dto.CategoryResponse, error) {
	if err := uc.policy.AuthorizeView(actor); err != nil {
		return nil, err
	}
	category, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Update renombra una categoría.
func (uc *CategoryUseCase) Update(ctx context.Context, actor permission.Actor, id int64, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := uc.policy.AuthorizeView(actor); err != nil {
		return nil, err
	}
	category, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	name, err := uc.validate(ctx, in, id)
	if err != nil {
		return nil, err
	}
	if !validation.SameSizeRule(category.Name, name) {
		if err := uc.checkSizeRule(ctx, id); err != nil {
			return nil, err
		}
	}
	category.Name = name
	if err := uc.repo.Update(ctx, category); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, categoryNameTaken()
		}
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Delete elimina la categoría y, en cascada, sus productos.
func (uc *CategoryUseCase) Delete(ctx context.Context, actor permission.Actor, id int64) error {
	if err := uc.policy.AuthorizeView(actor); err != nil {
		return err
	}
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// Search lista categorías, opcionalmente filtradas por nombre.
func (uc *CategoryUseCase) Search(ctx context.Context, actor permission.Actor, in dto.SearchRequest) (*dto.CategoryListResponse, error) {
	if err := uc.policy.AuthorizeView(actor); err != nil {
		return nil, err
	}
	f, ok := buildFilter(categoryFilters, in)
	out := &dto.CategoryListResponse{Items: []dto.CategoryResponse{}, Page: pageOf(f)}
	if !ok {
		return out, nil
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	for _, c := range list {
		out.Items = append(out.Items, *toCategoryResponse(c))
	}
	return out, nil
}

func (uc *CategoryUseCase) load(ctx context.Context, id int64) (*entity.Category, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return category, nil
}

func (uc *CategoryUseCase) validate(ctx context.Context, in dto.CategoryRequest, selfID int64) (string, error) {
	name := strings.TrimSpace(in.Name)
	var infraErr error
	verr := validation.Run(
		validation.Rule{Field: "nombre", Check: func() error {
			if name == "" {
				return validation.ErrCategoryNameRequired
			}
			return nil
		}},
		validation.Rule{Field: "nombre", Check: func() error {
			existing, err := uc.repo.GetByName(ctx, name)
			if err != nil {
				infraErr = err
				return nil
			}
			if existing != nil && existing.ID != selfID {
				return validation.ErrCategoryNameTaken
			}
			return nil
		}},
	)
	if infraErr != nil {
		return "", infraErr
	}
	return name, verr.OrNil()
}

// checkSizeRule impide renombrar hacia o desde Ropa/Zapato mientras la categoría tenga productos:
// sus tallas dejarían de ser válidas.
func (uc *CategoryUseCase) checkSizeRule(ctx context.Context, id int64) error {
	list, err := uc.products.List(ctx, repository.Filter{Equals: map[string]any{"categoria": id}, Limit: 1})
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return nil
	}
	verr := domain.NewValidationError()
	verr.AddErr("nombre", validation.ErrCategorySizeRule)
	return verr
}

func categoryNameTaken() error {
	verr := domain.NewValidationError()
	verr.AddErr("nombre", validation.ErrCategoryNameTaken)
	return verr
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name}
}
