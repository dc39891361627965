package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGroup_RoundTrip(t *testing.T) {
	for _, g := range Groups {
		parsed, err := ParseGroup(g.String())
		require.NoError(t, err)
		assert.Equal(t, g, parsed)
		assert.True(t, g.Valid())
	}
	_, err := ParseGroup("cliente")
	assert.Error(t, err, "los nombres distinguen mayúsculas")
	assert.False(t, GroupUnknown.Valid())
}

func TestGroup_Classification(t *testing.T) {
	assert.True(t, GroupSeller.IsStaff())
	assert.False(t, GroupClient.IsStaff())
	assert.True(t, GroupAdministrator.IsElevated())
	assert.False(t, GroupSeller.IsElevated())
}

func TestGroup_JSON(t *testing.T) {
	b, err := json.Marshal(struct{ G Group }{GroupSeller})
	require.NoError(t, err)
	assert.JSONEq(t, `{"G":"Vendedor"}`, string(b))

	var out struct{ G Group }
	assert.Error(t, json.Unmarshal([]byte(`{"G":"Jefe"}`), &out))
}
