package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/crucitafashion/crucita-api/internal/application/dto"
	"github.com/crucitafashion/crucita-api/internal/domain"
	"github.com/crucitafashion/crucita-api/internal/domain/entity"
	"github.com/crucitafashion/crucita-api/internal/domain/permission"
	"github.com/crucitafashion/crucita-api/internal/domain/repository"
	"github.com/crucitafashion/crucita-api/internal/domain/validation"
)

// UserOptions ajustes del caso de uso de usuarios.
type UserOptions struct {
	// StrictRegistration rechaza (400) un auto-registro que pida un grupo distinto de Cliente
	// en lugar de forzarlo a Cliente.
	StrictRegistration bool
	// BcryptCost costo del hash; 0 usa bcrypt.DefaultCost.
	BcryptCost int
}

// UserUseCase aplica reglas de negocio y de permisos para usuarios.
type UserUseCase struct {
	repo     repository.UserRepository
	layaways repository.LayawayRepository
	tx       repository.UserTxRunner
	opts     UserOptions
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, layaways repository.LayawayRepository, tx repository.UserTxRunner, opts UserOptions) *UserUseCase {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &UserUseCase{repo: repo, layaways: layaways, tx: tx, opts: opts}
}

// Register auto-registro de un visitante anónimo. El grupo resultante es siempre Cliente.
func (uc *UserUseCase) Register(ctx context.Context, actor permission.Actor, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := permission.RegisterPolicy.AuthorizeView(actor); err != nil {
		return nil, err
	}
	draft := userDraft{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  in.Username,
		Email:     in.Email,
		Password:  in.Password,
	}
	var group entity.Group
	extra := []validation.Rule{
		{Field: "repeat_password", Check: func() error {
			return validation.PasswordConfirmation(in.Password, in.RepeatPassword)
		}},
		{Field: "group", Check: func() (err error) {
			group, err = validation.RegistrationGroup(in.Group, uc.opts.StrictRegistration)
			return err
		}},
	}
	user, err := uc.validate(ctx, draft, 0, extra...)
	if err != nil {
		return nil, err
	}
	user.Group = group
	if err := uc.insert(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// CreateByAdmin creación de usuarios por SuperUsuario o Administrador con grupo explícito.
func (uc *UserUseCase) CreateByAdmin(ctx context.Context, actor permission.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	policy := permission.AdminCreateUserPolicy
	if err := policy.AuthorizeView(actor); err != nil {
		return nil, err
	}
	group, groupErr := validation.Group(in.Group)
	if groupErr == nil {
		if err := policy.AuthorizeObject(permission.Check{Actor: actor, RequestedGroup: group}); err != nil {
			return nil, err
		}
	}
	draft := userDraft{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  in.Username,
		Email:     in.Email,
		Password:  in.Password,
	}
	user, err := uc.validate(ctx, draft, 0, validation.Rule{Field: "group", Check: func() error { return groupErr }})
	if err != nil {
		return nil, err
	}
	user.Group = group
	if err := uc.insert(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// AdminGet detalle administrativo de otro usuario.
func (uc *UserUseCase) AdminGet(ctx context.Context, actor permission.Actor, id int64) (*dto.UserResponse, error) {
	user, err := uc.authorizeTarget(ctx, permission.AdminUserDetailPolicy, actor, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// AdminDelete elimina otro usuario. Falla con domain.ErrConflict si tiene apartados.
func (uc *UserUseCase) AdminDelete(ctx context.Context, actor permission.Actor, id int64) error {
	if _, err := uc.authorizeTarget(ctx, permission.AdminUserDetailPolicy, actor, id); err != nil {
		return err
	}
	n, err := uc.layaways.CountByUser(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(ctx, id)
}

// SellerGet un Vendedor consulta un Cliente.
func (uc *UserUseCase) SellerGet(ctx context.Context, actor permission.Actor, id int64) (*dto.UserResponse, error) {
	user, err := uc.authorizeTarget(ctx, permission.SellerUserDetailPolicy, actor, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// ProfileGet el propio perfil.
func (uc *UserUseCase) ProfileGet(ctx context.Context, actor permission.Actor, id int64) (*dto.UserResponse, error) {
	user, err := uc.authorizeTarget(ctx, permission.ProfilePolicy, actor, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// ProfileUpdate modifica el propio perfil. El grupo no se cambia por esta vía.
func (uc *UserUseCase) ProfileUpdate(ctx context.Context, actor permission.Actor, id int64, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	current, err := uc.authorizeTarget(ctx, permission.ProfilePolicy, actor, id)
	if err != nil {
		return nil, err
	}
	draft := userDraft{
		FirstName: current.FirstName,
		LastName:  current.LastName,
		Username:  current.Username,
		Email:     current.Email,
		keepHash:  current.PasswordHash,
	}
	if in.FirstName != nil {
		draft.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		draft.LastName = *in.LastName
	}
	if in.Username != nil {
		draft.Username = *in.Username
	}
	if in.Email != nil {
		draft.Email = *in.Email
	}
	if in.Password != nil {
		draft.Password = *in.Password
		draft.keepHash = ""
	}
	user, err := uc.validate(ctx, draft, current.ID)
	if err != nil {
		return nil, err
	}
	user.ID = current.ID
	user.Group = current.Group
	user.IsActive = current.IsActive
	user.CreatedAt = current.CreatedAt
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, uniqueAsValidation(err)
	}
	return toUserResponse(user), nil
}

// Search lista usuarios filtrando por username, email, first_name, last_name y group.
func (uc *UserUseCase) Search(ctx context.Context, actor permission.Actor, in dto.SearchRequest) (*dto.UserListResponse, error) {
	if err := permission.UserSearchPolicy.AuthorizeView(actor); err != nil {
		return nil, err
	}
	f, ok := buildFilter(userFilters, in)
	out := &dto.UserListResponse{Items: []dto.UserResponse{}, Page: pageOf(f)}
	if !ok {
		return out, nil
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	for _, u := range list {
		out.Items = append(out.Items, *toUserResponse(u))
	}
	return out, nil
}

// EnsureSuperUser crea el SuperUsuario inicial si todavía no existe ninguno.
// Devuelve false cuando ya había uno; no pasa por las políticas porque lo invoca el arranque.
func (uc *UserUseCase) EnsureSuperUser(ctx context.Context, username, password string) (bool, error) {
	n, err := uc.repo.CountByGroup(ctx, entity.GroupSuperUser)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	user, err := uc.validate(ctx, userDraft{Username: username, Password: password}, 0)
	if err != nil {
		return false, err
	}
	user.Group = entity.GroupSuperUser
	if err := uc.insert(ctx, user); err != nil {
		return false, err
	}
	return true, nil
}

// authorizeTarget vista → carga (404) → objeto (403).
func (uc *UserUseCase) authorizeTarget(ctx context.Context, policy permission.Policy, actor permission.Actor, id int64) (*entity.User, error) {
	if err := policy.AuthorizeView(actor); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := policy.AuthorizeObject(permission.Check{Actor: actor, Target: permission.SubjectOf(user)}); err != nil {
		return nil, err
	}
	return user, nil
}

// insert crea el usuario comprobando el singleton de SuperUsuario dentro de la transacción.
func (uc *UserUseCase) insert(ctx context.Context, user *entity.User) error {
	now := time.Now()
	user.IsActive = true
	user.CreatedAt = now
	user.UpdatedAt = now
	err := uc.tx.RunUsers(ctx, func(users repository.UserRepository) error {
		if user.Group == entity.GroupSuperUser {
			n, err := users.CountByGroup(ctx, entity.GroupSuperUser)
			if err != nil {
				return err
			}
			if err := validation.GroupSingleton(user.Group, n); err != nil {
				verr := domain.NewValidationError()
				verr.AddErr("group", err)
				return verr
			}
		}
		return users.Create(ctx, user)
	})
	return uniqueAsValidation(err)
}

type userDraft struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
	keepHash  string
}

func (uc *UserUseCase) validate(ctx context.Context, d userDraft, selfID int64, extra ...validation.Rule) (*entity.User, error) {
	var infraErr error
	username := strings.TrimSpace(d.Username)
	email := strings.TrimSpace(d.Email)
	rules := []validation.Rule{
		{Field: "username", Check: func() error { return validation.Required(username) }},
		{Field: "username", Check: func() error { return validation.Username(username) }},
		{Field: "username", Check: func() error {
			existing, err := uc.repo.GetByUsername(ctx, username)
			if err != nil {
				infraErr = err
				return nil
			}
			if existing != nil && existing.ID != selfID {
				return validation.ErrUsernameTaken
			}
			return nil
		}},
		{Field: "email", Check: func() error {
			if email == "" {
				return nil
			}
			return validation.Email(email)
		}},
		{Field: "email", Check: func() error {
			if email == "" {
				return nil
			}
			existing, err := uc.repo.GetByEmail(ctx, email)
			if err != nil {
				infraErr = err
				return nil
			}
			if existing != nil && existing.ID != selfID {
				return validation.ErrEmailTaken
			}
			return nil
		}},
		{Field: "password", Check: func() error {
			if d.keepHash != "" {
				return nil
			}
			return validation.Required(d.Password)
		}},
	}
	verr := validation.Run(append(rules, extra...)...)
	if infraErr != nil {
		return nil, infraErr
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	hash := d.keepHash
	if hash == "" {
		b, err := bcrypt.GenerateFromPassword([]byte(d.Password), uc.opts.BcryptCost)
		if err != nil {
			return nil, err
		}
		hash = string(b)
	}
	return &entity.User{
		Username:     username,
		Email:        email,
		FirstName:    strings.TrimSpace(d.FirstName),
		LastName:     strings.TrimSpace(d.LastName),
		PasswordHash: hash,
	}, nil
}

// uniqueAsValidation traduce una violación de unicidad que se coló entre la validación
// y el INSERT en un error de validación sobre el campo que chocó.
func uniqueAsValidation(err error) error {
	if !errors.Is(err, domain.ErrDuplicate) {
		return err
	}
	verr := domain.NewValidationError()
	var dup *domain.DuplicateError
	field := "username"
	if errors.As(err, &dup) && dup.Field != "" {
		field = dup.Field
	}
	switch field {
	case "email":
		verr.AddErr("email", validation.ErrEmailTaken)
	case "group":
		verr.AddErr("group", validation.ErrSuperUserExists)
	default:
		verr.AddErr("username", validation.ErrUsernameTaken)
	}
	return verr
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
		Group:     u.Group.String(),
	}
}
