package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crucitafashion/crucita-api/internal/domain"
	"github.com/crucitafashion/crucita-api/internal/domain/validation"
)

func TestUniqueAsValidation_CampoCorrecto(t *testing.T) {
	cases := []struct {
		err   error
		field string
		msg   error
	}{
		{&domain.DuplicateError{Field: "email"}, "email", validation.ErrEmailTaken},
		{&domain.DuplicateError{Field: "group"}, "group", validation.ErrSuperUserExists},
		{&domain.DuplicateError{Field: "username"}, "username", validation.ErrUsernameTaken},
		{&domain.DuplicateError{}, "username", validation.ErrUsernameTaken},
		{domain.ErrDuplicate, "username", validation.ErrUsernameTaken},
	}
	for _, tc := range cases {
		var verr *domain.ValidationError
		require.True(t, errors.As(uniqueAsValidation(tc.err), &verr))
		assert.Equal(t, map[string][]string{tc.field: {tc.msg.Error()}}, verr.Fields)
	}

	other := errors.New("conexión perdida")
	assert.Same(t, other, uniqueAsValidation(other))
}
