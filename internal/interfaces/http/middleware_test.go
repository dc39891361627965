package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crucitafashion/crucita-api/internal/domain/entity"
	"github.com/crucitafashion/crucita-api/internal/domain/permission"
	"github.com/crucitafashion/crucita-api/internal/infrastructure/memory"
	"github.com/crucitafashion/crucita-api/pkg/jwt"
	"github.com/crucitafashion/crucita-api/pkg/logger"
)

const testSecret = "test-secret-key-for-unit-tests"

func actorApp(users *memory.UserRepo) *fiber.App {
	app := fiber.New()
	app.Use(AuthMiddleware(testSecret, users))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		a := GetActor(c)
		return c.JSON(fiber.Map{"id": a.ID, "group": a.Group.String(), "auth": a.Authenticated})
	})
	return app
}

// storedUser guarda un usuario y devuelve el store para el middleware.
func storedUser(t *testing.T, group entity.Group, active bool) (*memory.UserRepo, *entity.User) {
	t.Helper()
	users := memory.NewStore().Users()
	u := &entity.User{Username: "u" + group.String(), PasswordHash: "x", Group: group, IsActive: active}
	require.NoError(t, users.Create(context.Background(), u))
	return users, u
}

func whoami(t *testing.T, app *fiber.App, header string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", header)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestAuthMiddleware_Anonymous(t *testing.T) {
	app := actorApp(memory.NewStore().Users())
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"id":0,"group":"","auth":false}`, string(body))
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	users, u := storedUser(t, entity.GroupSeller, true)
	tok, err := jwt.Generate(testSecret, u.ID, entity.GroupNameSeller, "test", 5)
	require.NoError(t, err)
	status, body := whoami(t, actorApp(users), "Bearer "+tok)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"group":"Vendedor","auth":true}`, u.ID), body)
}

func TestAuthMiddleware_GroupFromStoredUser(t *testing.T) {
	users, u := storedUser(t, entity.GroupClient, true)
	tok, err := jwt.Generate(testSecret, u.ID, entity.GroupNameAdministrator, "test", 5)
	require.NoError(t, err)
	status, body := whoami(t, actorApp(users), "Bearer "+tok)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"group":"Cliente","auth":true}`, u.ID), body)
}

func TestAuthMiddleware_UserGoneOrInactive(t *testing.T) {
	users, inactive := storedUser(t, entity.GroupSeller, false)
	tok, err := jwt.Generate(testSecret, inactive.ID, entity.GroupNameSeller, "test", 5)
	require.NoError(t, err)
	app := actorApp(users)

	status, _ := whoami(t, app, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, status, "usuario inactivo")

	missing, err := jwt.Generate(testSecret, inactive.ID+100, entity.GroupNameSeller, "test", 5)
	require.NoError(t, err)
	status, body := whoami(t, app, "Bearer "+missing)
	assert.Equal(t, http.StatusUnauthorized, status, "usuario inexistente")
	assert.Contains(t, body, "INVALID_TOKEN")
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	wrongSecret, err := jwt.Generate("otro-secreto", 7, entity.GroupNameSeller, "test", 5)
	require.NoError(t, err)
	noGroup, err := jwt.Generate(testSecret, 7, "Gerente", "test", 5)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"sin bearer", "Token abc"},
		{"token vacío", "Bearer   "},
		{"firma inválida", "Bearer " + wrongSecret},
		{"grupo desconocido", "Bearer " + noGroup},
	}
	users, _ := storedUser(t, entity.GroupSeller, true)
	app := actorApp(users)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			req.Header.Set("Authorization", tc.header)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestGetActor_DefaultsToAnonymous(t *testing.T) {
	app := fiber.New()
	var got permission.Actor
	app.Get("/", func(c *fiber.Ctx) error {
		got = GetActor(c)
		return c.SendStatus(fiber.StatusNoContent)
	})
	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.False(t, got.Authenticated)
}

func TestLoggingMiddleware_TagsRequest(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "info", Output: &buf}).Component("http")
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(RequestIDMiddleware())
	app.Use(LoggingMiddleware(log))
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("falla") })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(HeaderRequestID, "req-1")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "http", entry["component"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, float64(500), entry["status"])
}

func TestMetrics_ExposesRequestCounter(t *testing.T) {
	m := NewMetrics("crucita")
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/metrics", m.Handler())
	app.Get("/items/:id", func(c *fiber.Ctx) error { return c.SendString("ok") })

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/items/42", nil), -1)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `crucita_http_requests_total{method="GET",route="/items/:id",status="200"} 1`)
	assert.NotContains(t, string(body), "/items/42")
}

func TestRateLimiter_CleanupDropsIdle(t *testing.T) {
	rl := NewRateLimiter(1)
	assert.True(t, rl.allow("1.1.1.1"))
	assert.False(t, rl.allow("1.1.1.1"))
	assert.True(t, rl.allow("2.2.2.2"))

	rl.Cleanup(-time.Second)
	assert.Empty(t, rl.limiters)
	assert.True(t, rl.allow("1.1.1.1"))
}

func TestPathID(t *testing.T) {
	app := fiber.New()
	app.Get("/x/:id", func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"id": id})
	})
	for path, want := range map[string]int{"/x/5": 200, "/x/abc": 404, "/x/0": 404, "/x/-3": 404} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, path)
	}
}
