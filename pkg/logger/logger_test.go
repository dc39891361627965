package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		out = append(out, entry)
	}
	return out
}

func TestNew_ProductionEscribeJSONConServicio(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Service: "crucita", Output: &buf})

	l.Info().Msg("hola")
	l.Debug().Msg("no se escribe")

	entries := lines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "hola", entries[0]["message"])
	assert.Equal(t, "crucita", entries[0]["service"])
	assert.Equal(t, "info", entries[0]["level"])
	assert.Contains(t, entries[0], "time")
}

func TestComponentYRequest(t *testing.T) {
	var buf bytes.Buffer
	root := New(Config{Level: "debug", Output: &buf})

	root.Component("http").Request("abc").Debug().Msg("petición")
	root.Request("").Warn().Msg("sin id")

	entries := lines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "http", entries[0]["component"])
	assert.Equal(t, "abc", entries[0]["request_id"])
	assert.NotContains(t, entries[1], "component", "el hijo no modifica al padre")
	assert.NotContains(t, entries[1], "request_id")
	assert.NotContains(t, entries[1], "service")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("desconocido"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
}
