package domain

import (
	"errors"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// DuplicateError indica qué campo único chocó al persistir. errors.Is(err, ErrDuplicate) sigue
// siendo cierto, así que quien no necesita el campo no cambia.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return ErrDuplicate.Error() + ": " + e.Field
}

// Is permite errors.Is(err, ErrDuplicate) sobre un DuplicateError.
func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// ValidationError agrupa todos los errores por campo de una misma petición.
// Se devuelve completo (no se corta en el primer fallo) para que el cliente vea todos los campos inválidos.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError crea un conjunto de errores vacío.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add registra un mensaje para el campo indicado.
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// AddErr registra err como mensaje del campo; ignora err nil.
func (e *ValidationError) AddErr(field string, err error) {
	if err == nil {
		return
	}
	e.Add(field, err.Error())
}

// Has indica si el campo ya tiene algún error.
func (e *ValidationError) Has(field string) bool {
	return len(e.Fields[field]) > 0
}

// Empty es true cuando no se registró ningún error.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// OrNil devuelve nil si no hay errores; útil como return final de un validador.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return "validación fallida: " + strings.Join(parts, ", ")
}

// Is permite errors.Is(err, ErrInvalidInput) sobre un ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
