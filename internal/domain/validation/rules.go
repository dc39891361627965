// Package validation contiene las reglas de validación por campo de Crucita Fashion.
// Son funciones puras: no persisten nada y no consultan la base de datos; quien las
// llama resuelve antes los datos que necesitan (nombre de categoría, conteo de grupo).
package validation

import (
	"github.com/crucitafashion/crucita-api/internal/domain"
)

// Rule asocia un campo con su validador.
type Rule struct {
	Field string
	Check func() error
}

// Run ejecuta las reglas en el orden declarado y acumula todos los fallos por campo.
// Si un campo ya falló, sus reglas posteriores no se evalúan (evita mensajes derivados).
func Run(rules ...Rule) *domain.ValidationError {
	verr := domain.NewValidationError()
	for _, r := range rules {
		if verr.Has(r.Field) {
			continue
		}
		verr.AddErr(r.Field, r.Check())
	}
	return verr
}

// Merge copia los errores de other dentro de dst.
func Merge(dst, other *domain.ValidationError) {
	if other == nil {
		return
	}
	for field, msgs := range other.Fields {
		for _, m := range msgs {
			dst.Add(field, m)
		}
	}
}
