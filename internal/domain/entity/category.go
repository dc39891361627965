package entity

// Nombres de categoría con dominio de tallas propio.
const (
	CategoryClothing = "Ropa"
	CategoryShoes    = "Zapato"
)

// Category agrupa productos; su nombre decide qué tallas son válidas.
type Category struct {
	ID   int64
	Name string // único
}
