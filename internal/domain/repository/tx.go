package repository

import "context"

// UserTxRunner ejecuta fn en una transacción con un UserRepository atado a ella.
// Se usa para que el conteo de SuperUsuarios y la inserción sean atómicos.
type UserTxRunner interface {
	RunUsers(ctx context.Context, fn func(users UserRepository) error) error
}
