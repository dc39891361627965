package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestUniqueField(t *testing.T) {
	cases := map[string]string{
		"uq_users_email":            "email",
		"uq_users_single_superuser": "group",
		"users_username_key":        "username",
		"products_code_key":         "",
	}
	for constraint, want := range cases {
		err := fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505", ConstraintName: constraint})
		assert.True(t, isUniqueViolation(err))
		assert.Equal(t, want, uniqueField(err), constraint)
	}
	assert.Empty(t, uniqueField(errors.New("otro error")))
}
