package entity

import "time"

// User representa un usuario del sistema Crucita Fashion.
type User struct {
	ID           int64
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Group        Group
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
