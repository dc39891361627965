package validation

import (
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/crucitafashion/crucita-api/internal/domain/entity"
)

var (
	ErrSuperUserExists      = errors.New("no puede haber mas SuperUsuarios")
	ErrPasswordMismatch     = errors.New("las contraseñas no coinciden")
	ErrRegistrationGroup    = errors.New("el registro solo permite el grupo Cliente")
	ErrUnknownGroup         = errors.New("grupo inexistente")
	ErrEmail                = errors.New("introduzca una dirección de correo válida")
	ErrUsername             = errors.New("el nombre de usuario solo admite letras, dígitos y @/./+/-/_ (máximo 150)")
	ErrUsernameTaken        = errors.New("ya existe un usuario con este nombre de usuario")
	ErrEmailTaken           = errors.New("ya existe un usuario con este correo")
	ErrCategoryNameTaken    = errors.New("ya existe una categoría con este nombre")
	ErrCodeTaken            = errors.New("ya existe un registro con este código")
	ErrCategoryUnknown      = errors.New("la categoría no existe")
	ErrUserUnknown          = errors.New("el usuario no existe")
	ErrCategoryNameRequired = errors.New("el nombre de la categoría es requerido")
	ErrCategorySizeRule     = errors.New("no se puede cambiar el nombre: la categoría tiene productos con otra regla de tallas")
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func fieldValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// GroupSingleton falla si se intenta crear un SuperUsuario cuando ya existe uno.
func GroupSingleton(g entity.Group, currentCount int) error {
	if g == entity.GroupSuperUser && currentCount >= 1 {
		return ErrSuperUserExists
	}
	return nil
}

// PasswordConfirmation falla si la contraseña y su repetición difieren.
func PasswordConfirmation(password, repeated string) error {
	if password != repeated {
		return ErrPasswordMismatch
	}
	return nil
}

// RegistrationGroup decide el grupo de un auto-registro: siempre Cliente.
// En modo estricto, pedir explícitamente un grupo distinto de Cliente es un error.
func RegistrationGroup(requested string, strict bool) (entity.Group, error) {
	if requested == "" || requested == entity.GroupNameClient {
		return entity.GroupClient, nil
	}
	if strict {
		return entity.GroupUnknown, ErrRegistrationGroup
	}
	return entity.GroupClient, nil
}

// Group valida el grupo pedido en la creación administrativa.
func Group(name string) (entity.Group, error) {
	if name == "" {
		return entity.GroupUnknown, ErrRequired
	}
	g, err := entity.ParseGroup(name)
	if err != nil {
		return entity.GroupUnknown, ErrUnknownGroup
	}
	return g, nil
}

// Email valida el formato del correo.
func Email(email string) error {
	if email == "" {
		return ErrRequired
	}
	if err := fieldValidator().Var(email, "email,max=254"); err != nil {
		return ErrEmail
	}
	return nil
}

// Username aplica las mismas restricciones que un nombre de usuario clásico: 150 caracteres de [\w.@+-].
func Username(username string) error {
	if username == "" {
		return ErrRequired
	}
	if err := fieldValidator().Var(username, "max=150"); err != nil {
		return ErrUsername
	}
	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '@' || r == '.' || r == '+' || r == '-' || r == '_':
		default:
			return ErrUsername
		}
	}
	return nil
}

// Required falla con ErrRequired si s está vacío.
func Required(s string) error {
	if s == "" {
		return ErrRequired
	}
	return nil
}
