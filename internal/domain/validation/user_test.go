package validation_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crucitafashion/crucita-api/internal/domain/entity"
	"github.com/crucitafashion/crucita-api/internal/domain/validation"
)

func TestGroupSingleton(t *testing.T) {
	assert.NoError(t, validation.GroupSingleton(entity.GroupSuperUser, 0), "el primer SuperUsuario se permite")
	assert.ErrorIs(t, validation.GroupSingleton(entity.GroupSuperUser, 1), validation.ErrSuperUserExists)
	assert.ErrorIs(t, validation.GroupSingleton(entity.GroupSuperUser, 2), validation.ErrSuperUserExists)
	assert.NoError(t, validation.GroupSingleton(entity.GroupAdministrator, 5), "solo SuperUsuario es único")
}

func TestPasswordConfirmation(t *testing.T) {
	assert.NoError(t, validation.PasswordConfirmation("p1", "p1"))
	assert.ErrorIs(t, validation.PasswordConfirmation("p1", "p2"), validation.ErrPasswordMismatch)
}

func TestRegistrationGroup_SiempreCliente(t *testing.T) {
	for _, requested := range []string{"", "Cliente", "Administrador", "SuperUsuario", "Vendedor", "otro"} {
		g, err := validation.RegistrationGroup(requested, false)
		require.NoError(t, err, requested)
		assert.Equal(t, entity.GroupClient, g, requested)
	}
}

func TestRegistrationGroup_Estricto(t *testing.T) {
	g, err := validation.RegistrationGroup("Cliente", true)
	require.NoError(t, err)
	assert.Equal(t, entity.GroupClient, g)

	_, err = validation.RegistrationGroup("Administrador", true)
	assert.ErrorIs(t, err, validation.ErrRegistrationGroup)
}

func TestGroup(t *testing.T) {
	g, err := validation.Group("Vendedor")
	require.NoError(t, err)
	assert.Equal(t, entity.GroupSeller, g)

	_, err = validation.Group("Gerente")
	assert.ErrorIs(t, err, validation.ErrUnknownGroup)

	_, err = validation.Group("")
	assert.ErrorIs(t, err, validation.ErrRequired)
}

func TestEmail(t *testing.T) {
	assert.NoError(t, validation.Email("crucita@gmail.com"))
	assert.ErrorIs(t, validation.Email("crucita"), validation.ErrEmail)
	assert.ErrorIs(t, validation.Email(""), validation.ErrRequired)
}

func TestUsername(t *testing.T) {
	assert.NoError(t, validation.Username("danielrs"))
	assert.NoError(t, validation.Username("d.r+s@x_1-2"))
	assert.ErrorIs(t, validation.Username("con espacio"), validation.ErrUsername)
	assert.ErrorIs(t, validation.Username(""), validation.ErrRequired)
}

func TestDateAndTimestamp(t *testing.T) {
	d, err := validation.Date(json.RawMessage(`"2018-01-01"`))
	require.NoError(t, err)
	assert.Equal(t, 2018, d.Year())

	_, err = validation.Date(json.RawMessage(`"1 1 2018"`))
	assert.ErrorIs(t, err, validation.ErrDate)

	_, err = validation.Date(json.RawMessage(`20180101`))
	assert.ErrorIs(t, err, validation.ErrDate)

	_, err = validation.Timestamp(json.RawMessage(`"2018-01-01T10:10:10Z"`))
	require.NoError(t, err)

	_, err = validation.Timestamp(json.RawMessage(`"1 1 2018 10 10 10"`))
	assert.ErrorIs(t, err, validation.ErrTimestamp)
}

func TestLayawayTotal(t *testing.T) {
	_, err := validation.LayawayTotal(json.RawMessage(`0`))
	assert.NoError(t, err, "un apartado puede iniciar en cero")

	_, err = validation.LayawayTotal(json.RawMessage(`-3`))
	assert.ErrorIs(t, err, validation.ErrNegativeTotal)

	_, err = validation.LayawayTotal(json.RawMessage(`"3"`))
	assert.ErrorIs(t, err, validation.ErrCostIsString)

	_, err = validation.LayawayTotal(json.RawMessage(`0.125`))
	assert.ErrorIs(t, err, validation.ErrCostPrecision)

	_, err = validation.LayawayTotal(json.RawMessage(`10000000000`))
	assert.ErrorIs(t, err, validation.ErrCostTooLarge)
}

func TestProductRefs(t *testing.T) {
	assert.NoError(t, validation.ProductRefs([]int64{1, 2}, []int64{1, 2, 3}))
	assert.ErrorIs(t, validation.ProductRefs(nil, nil), validation.ErrProductsMissing)
	assert.ErrorIs(t, validation.ProductRefs([]int64{1, 9}, []int64{1}), validation.ErrProductUnknown)
}
