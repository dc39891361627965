package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/crucitafashion/crucita-api/internal/application/dto"
	"github.com/crucitafashion/crucita-api/internal/domain"
	"github.com/crucitafashion/crucita-api/internal/domain/entity"
	"github.com/crucitafashion/crucita-api/internal/domain/permission"
	"github.com/crucitafashion/crucita-api/internal/domain/repository"
	"github.com/crucitafashion/crucita-api/internal/domain/validation"
)

// LayawayUseCase casos de uso de apartados. El personal los gestiona; un cliente solo consulta los suyos.
type LayawayUseCase struct {
	repo        repository.LayawayRepository
	products    repository.ProductRepository
	users       repository.UserRepository
	writePolicy permission.Policy
	readPolicy  permission.Policy
}

// NewLayawayUseCase construye el caso de uso.
func NewLayawayUseCase(repo repository.LayawayRepository, products repository.ProductRepository, users repository.UserRepository) *LayawayUseCase {
	return &LayawayUseCase{
		repo:        repo,
		products:    products,
		users:       users,
		writePolicy: permission.StaffPolicy,
		readPolicy:  permission.LayawayReadPolicy,
	}
}

// Create registra un apartado para un usuario.
func (uc *LayawayUseCase) Create(ctx context.Context, actor permission.Actor, in dto.LayawayRequest) (*dto.LayawayResponse, error) {
	if err := uc.writePolicy.AuthorizeView(actor); err != nil {
		return nil, err
	}
	layaway, err := uc.validate(ctx, in, 0)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	layaway.CreatedAt = now
	layaway.UpdatedAt = now
	if err := uc.repo.Create(ctx, layaway); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, codeTaken()
		}
		return nil, err
	}
	return toLayawayResponse(layaway), nil
}

// GetByID obtiene un apartado; un cliente solo puede ver los propios.
func (uc *LayawayUseCase) GetByID(ctx context.Context, actor permission.Actor, id int64) (*dto.LayawayResponse, error) {
	if err := uc.readPolicy.AuthorizeView(actor); err != nil {
		return nil, err
	}
	layaway, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.readPolicy.AuthorizeObject(permission.Check{
		Actor:  actor,
		Target: permission.Subject{ID: layaway.UserID},
	}); err != nil {
		return nil, err
	}
	return toLayawayResponse(layaway), nil
}

// Update reemplaza el apartado completo (PUT).
func (uc *LayawayUseCase) Update(ctx context.Context, actor permission.Actor, id int64, in dto.LayawayRequest) (*dto.LayawayResponse, error) {
	if err := uc.writePolicy.AuthorizeView(actor); err != nil {
		return nil, err
	}
	current, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	layaway, err := uc.validate(ctx, in, id)
	if err != nil {
		return nil, err
	}
	layaway.ID = current.ID
	layaway.CreatedAt = current.CreatedAt
	layaway.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, layaway); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, codeTaken()
		}
		return nil, err
	}
	return toLayawayResponse(layaway), nil
}

// Delete elimina un apartado.
func (uc *LayawayUseCase) Delete(ctx context.Context, actor permission.Actor, id int64) error {
	if err := uc.writePolicy.AuthorizeView(actor); err != nil {
		return err
	}
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// Search filtra apartados por codigo y usuario. Para quien no es personal el filtro
// de usuario queda fijado al propio actor.
func (uc *LayawayUseCase) Search(ctx context.Context, actor permission.Actor, in dto.SearchRequest) (*dto.LayawayListResponse, error) {
	if err := uc.readPolicy.AuthorizeView(actor); err != nil {
		return nil, err
	}
	f, ok := buildFilter(layawayFilters, in)
	out := &dto.LayawayListResponse{Items: []dto.LayawayResponse{}, Page: pageOf(f)}
	if !ok {
		return out, nil
	}
	if !actor.Group.IsStaff() {
		if requested, set := f.Equals["usuario"]; set && requested.(int64) != actor.ID {
			return out, nil
		}
		f.Equals["usuario"] = actor.ID
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	for _, l := range list {
		out.Items = append(out.Items, *toLayawayResponse(l))
	}
	return out, nil
}

func (uc *LayawayUseCase) load(ctx context.Context, id int64) (*entity.Layaway, error) {
	layaway, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if layaway == nil {
		return nil, domain.ErrNotFound
	}
	return layaway, nil
}

func (uc *LayawayUseCase) validate(ctx context.Context, in dto.LayawayRequest, selfID int64) (*entity.Layaway, error) {
	var (
		l        entity.Layaway
		userID   int64
		infraErr error
	)
	verr := validation.Run(
		validation.Rule{Field: "usuario", Check: func() (err error) {
			userID, err = validation.Reference(in.User)
			return err
		}},
		validation.Rule{Field: "usuario", Check: func() error {
			u, err := uc.users.GetByID(ctx, userID)
			if err != nil {
				infraErr = err
				return nil
			}
			if u == nil {
				return validation.ErrUserUnknown
			}
			l.UserID = u.ID
			return nil
		}},
		validation.Rule{Field: "codigo", Check: func() (err error) {
			l.Code, err = validation.Code(in.Code)
			return err
		}},
		validation.Rule{Field: "codigo", Check: func() error {
			existing, err := uc.repo.GetByCode(ctx, l.Code)
			if err != nil {
				infraErr = err
				return nil
			}
			if existing != nil && existing.ID != selfID {
				return validation.ErrCodeTaken
			}
			return nil
		}},
		validation.Rule{Field: "productos", Check: func() error {
			existing, err := existingProducts(ctx, uc.products, in.Products)
			if err != nil {
				infraErr = err
				return nil
			}
			if err := validation.ProductRefs(in.Products, existing); err != nil {
				return err
			}
			l.ProductIDs = dedupe(in.Products)
			return nil
		}},
		validation.Rule{Field: "costo_total", Check: func() (err error) {
			l.TotalCost, err = validation.LayawayTotal(in.TotalCost)
			return err
		}},
	)
	if infraErr != nil {
		return nil, infraErr
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return &l, nil
}

func toLayawayResponse(l *entity.Layaway) *dto.LayawayResponse {
	return &dto.LayawayResponse{
		ID:        l.ID,
		User:      l.UserID,
		Code:      l.Code,
		Products:  l.ProductIDs,
		TotalCost: l.TotalCost,
	}
}
