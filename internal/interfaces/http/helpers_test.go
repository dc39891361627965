package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/crucitafashion/crucita-api/internal/application/auth"
	"github.com/crucitafashion/crucita-api/internal/application/usecase"
	"github.com/crucitafashion/crucita-api/internal/domain/entity"
	"github.com/crucitafashion/crucita-api/internal/infrastructure/excel"
	"github.com/crucitafashion/crucita-api/internal/infrastructure/memory"
	"github.com/crucitafashion/crucita-api/internal/infrastructure/pdf"
	apphttp "github.com/crucitafashion/crucita-api/internal/interfaces/http"
	pkgjwt "github.com/crucitafashion/crucita-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "crucita-api-test"
	testPassword  = "p1"
)

// testEnv una app Fiber completa sobre el store en memoria.
type testEnv struct {
	t     *testing.T
	app   *fiber.App
	store *memory.Store
}

type envOption func(*apphttp.RouterDeps, *usecase.UserOptions)

func withStrictRegistration() envOption {
	return func(_ *apphttp.RouterDeps, o *usecase.UserOptions) { o.StrictRegistration = true }
}

func withLoginLimit(perMinute int) envOption {
	return func(d *apphttp.RouterDeps, _ *usecase.UserOptions) { d.LoginLimiter = apphttp.NewRateLimiter(perMinute) }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	store := memory.NewStore()
	userOpts := usecase.UserOptions{BcryptCost: bcrypt.MinCost}
	deps := apphttp.RouterDeps{JWTSecret: testJWTSecret, Users: store.Users()}
	for _, o := range opts {
		o(&deps, &userOpts)
	}
	deps.ProductUC = usecase.NewProductUseCase(store.Products(), store.Categories(), excel.NewProductExporter())
	deps.CategoryUC = usecase.NewCategoryUseCase(store.Categories(), store.Products())
	deps.SaleUC = usecase.NewSaleUseCase(store.Sales(), store.Products(), pdf.NewReceiptGenerator(""))
	deps.LayawayUC = usecase.NewLayawayUseCase(store.Layaways(), store.Products(), store.Users())
	deps.UserUC = usecase.NewUserUseCase(store.Users(), store.Layaways(), store, userOpts)
	deps.AuthUC = auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer})

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(apphttp.RequestIDMiddleware())
	apphttp.Router(app, deps)
	return &testEnv{t: t, app: app, store: store}
}

// seedUser crea un usuario directamente en el store y devuelve el header Authorization.
func (e *testEnv) seedUser(username string, group entity.Group) (*entity.User, string) {
	e.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(e.t, err)
	u := &entity.User{
		Username:     username,
		PasswordHash: string(hash),
		Group:        group,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(e.t, e.store.Users().Create(context.Background(), u))
	tok, err := pkgjwt.Generate(testJWTSecret, u.ID, group.String(), testIssuer, 60)
	require.NoError(e.t, err)
	return u, "Bearer " + tok
}

func (e *testEnv) categoryID(name string) int64 {
	e.t.Helper()
	c, err := e.store.Categories().GetByName(context.Background(), name)
	require.NoError(e.t, err)
	require.NotNil(e.t, c)
	return c.ID
}

// do lanza una petición; body puede ser nil, un string JSON literal o cualquier valor serializable.
func (e *testEnv) do(method, path, authHeader string, body any) *http.Response {
	e.t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(e.t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// fieldErrors extrae fields de un ErrorResponse.
func fieldErrors(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok, "la respuesta debe incluir fields: %v", body)
	return fields
}
