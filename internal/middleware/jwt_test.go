package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/service-connect/internal/utils"
)

const testSecret = "test-secret"

// protectedApp wires JWTAuth in front of a handler that echoes back the
// identity the middleware injected into the context.
func protectedApp(secret string) *echo.Echo {
	e := echo.New()
	g := e.Group("/private")
	g.Use(JWTAuth(secret))
	g.GET("/whoami", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id": c.Get("user_id"),
			"role":    c.Get("role"),
		})
	})
	return e
}

func get(e *echo.Echo, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthMissingHeader(t *testing.T) {
	e := protectedApp(testSecret)
	rec := get(e, "/private/whoami", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthGarbageToken(t *testing.T) {
	e := protectedApp(testSecret)
	rec := get(e, "/private/whoami", "not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", 7, "client", 60)
	require.NoError(t, err)

	e := protectedApp(testSecret)
	rec := get(e, "/private/whoami", tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	// A negative TTL produces a token that expired in the past.
	tok, err := utils.NewAccessToken(testSecret, 7, "client", -1)
	require.NoError(t, err)

	e := protectedApp(testSecret)
	rec := get(e, "/private/whoami", tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthValidTokenInjectsClaims(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 7, "provider", 60)
	require.NoError(t, err)

	e := protectedApp(testSecret)
	rec := get(e, "/private/whoami", tok.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":7,"role":"provider"}`, rec.Body.String())
}
