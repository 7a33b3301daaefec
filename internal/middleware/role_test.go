package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// roleApp sets the given role in the context before RequireRole runs,
// standing in for JWTAuth.
func roleApp(ctxRole any, allowed ...string) *echo.Echo {
	e := echo.New()
	g := e.Group("/r")
	g.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ctxRole != nil {
				c.Set("role", ctxRole)
			}
			return next(c)
		}
	})
	g.Use(RequireRole(allowed...))
	g.GET("/ok", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	return e
}

func hit(e *echo.Echo) int {
	req := httptest.NewRequest(http.MethodGet, "/r/ok", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestRequireRoleAllowsListedRoles(t *testing.T) {
	assert.Equal(t, http.StatusOK, hit(roleApp("client", "client", "provider")))
	assert.Equal(t, http.StatusOK, hit(roleApp("provider", "client", "provider")))
}

func TestRequireRoleRejectsUnknownRole(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, hit(roleApp("admin", "client", "provider")))
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, hit(roleApp(nil, "client", "provider")))
}

func TestRequireRoleRejectsNonStringRole(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, hit(roleApp(42, "client", "provider")))
}
