// Package permission decide si un actor puede ejecutar una operación.
//
// Cada ruta declara una Policy: una lista ordenada de predicados de vista (¿puede este
// rol usar la operación?) y otra de predicados de objeto (¿puede actuar sobre este
// objetivo en particular?). Ambas se evalúan de izquierda a derecha y se detienen en la
// primera negación. El actor siempre se pasa de forma explícita.
package permission

import (
	"github.com/crucitafashion/crucita-api/internal/domain"
	"github.com/crucitafashion/crucita-api/internal/domain/entity"
)

// Actor es quien hace la petición. El valor cero es un actor anónimo.
type Actor struct {
	ID            int64
	Group         entity.Group
	Authenticated bool
}

// Anonymous devuelve un actor no autenticado.
func Anonymous() Actor { return Actor{} }

// Subject es el usuario sobre el que se actúa en reglas a nivel de objeto.
type Subject struct {
	ID    int64
	Group entity.Group
}

// SubjectOf construye el Subject de un usuario persistido.
func SubjectOf(u *entity.User) Subject {
	return Subject{ID: u.ID, Group: u.Group}
}

// Check reúne lo que un predicado puede consultar.
type Check struct {
	Actor Actor
	// Target es el usuario objetivo (detalle de usuario, perfil) o el dueño del recurso (apartado).
	Target Subject
	// RequestedGroup es el grupo pedido al crear un usuario por la vía administrativa.
	RequestedGroup entity.Group
}

// Predicate es una regla de permiso independiente.
type Predicate func(Check) bool

// Policy agrupa los predicados de una ruta.
type Policy struct {
	View   []Predicate
	Object []Predicate
}

// Allows evalúa los predicados en orden y se detiene en el primero que niega.
func Allows(preds []Predicate, c Check) bool {
	for _, p := range preds {
		if !p(c) {
			return false
		}
	}
	return true
}

// AuthorizeView aplica los predicados de vista. Devuelve domain.ErrForbidden si alguno niega.
func (p Policy) AuthorizeView(a Actor) error {
	if !Allows(p.View, Check{Actor: a}) {
		return domain.ErrForbidden
	}
	return nil
}

// AuthorizeObject aplica los predicados de objeto sobre un objetivo ya cargado.
func (p Policy) AuthorizeObject(c Check) error {
	if !Allows(p.Object, c) {
		return domain.ErrForbidden
	}
	return nil
}

// Authorize aplica vista y objeto en una sola llamada (rutas sin búsqueda de objetivo).
func (p Policy) Authorize(c Check) error {
	if err := p.AuthorizeView(c.Actor); err != nil {
		return err
	}
	return p.AuthorizeObject(c)
}
