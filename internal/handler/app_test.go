package handler_test

// Shared harness for the handler tests: a full echo app wired through the
// real router with the fake stores behind it, plus small helpers for
// issuing requests and decoding JSON bodies.

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/service-connect/internal/config"
	"github.com/iliyamo/service-connect/internal/handler"
	"github.com/iliyamo/service-connect/internal/model"
	"github.com/iliyamo/service-connect/internal/repository"
	"github.com/iliyamo/service-connect/internal/router"
	"github.com/iliyamo/service-connect/internal/utils"
)

const testSecret = "test-secret"

func newTestApp(store *fakeStore) *echo.Echo {
	cfg := config.Config{
		Env:            "test",
		JWTSecret:      testSecret,
		AccessTTLMin:   60,
		RefreshTTLDays: 7,
		BcryptCost:     bcrypt.MinCost,
	}
	authH := handler.NewAuthHandler(cfg, store, store, store)
	provH := handler.NewProviderHandler(store, store)
	rateH := handler.NewRatingHandler(store, store, nil)

	noCache := func(next echo.HandlerFunc) echo.HandlerFunc { return next }

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterProviders(e, provH, rateH, cfg.JWTSecret, noCache)
	return e
}

func doJSON(e *echo.Echo, method, path, body, bearer string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// seedProvider creates a provider account directly in the fake store.
func seedProvider(t *testing.T, store *fakeStore, name, email, serviceType, location, phone string) uint64 {
	t.Helper()
	id, err := store.Create(nil, repository.NewAccount{
		Name:        name,
		Email:       email,
		Password:    "password123",
		Role:        model.RoleProvider,
		ServiceType: &serviceType,
		Location:    &location,
		Phone:       &phone,
	}, bcrypt.MinCost)
	require.NoError(t, err)
	return id
}

// seedClient creates a client account directly in the fake store.
func seedClient(t *testing.T, store *fakeStore, name, email string) uint64 {
	t.Helper()
	id, err := store.Create(nil, repository.NewAccount{
		Name:     name,
		Email:    email,
		Password: "password123",
		Role:     model.RoleClient,
	}, bcrypt.MinCost)
	require.NoError(t, err)
	return id
}

// bearerFor mints a valid access token for an existing account.
func bearerFor(t *testing.T, id uint64, role string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, id, role, 60)
	require.NoError(t, err)
	return tok.Token
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "unexpected status, body: %s", rec.Body.String())
}
