package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == "23505"
}

// isForeignKeyViolation verifica si un error es una violación de foreign key (23503),
// p. ej. borrar un usuario referenciado por apartados (ON DELETE RESTRICT).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == "23503"
}

// uniqueField traduce el índice único violado al campo de la API que lo originó.
func uniqueField(err error) string {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return ""
	}
	switch pgErr.ConstraintName {
	case "uq_users_email":
		return "email"
	case "uq_users_single_superuser":
		return "group"
	case "users_username_key":
		return "username"
	}
	return ""
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
