package middleware

// identity.go defines helpers shared across middleware files for pulling
// the caller's identity out of the Echo context. The rate limiter uses
// this to scope buckets per account when a request is authenticated and
// to fall back to a shared "anon" bucket otherwise.

import (
    "fmt"

    "github.com/labstack/echo/v4"
)

// currentUserID renders the authenticated account id stored by JWTAuth as
// a string. JWT numeric claims decode as float64, so any non-empty value
// is formatted rather than type-asserted. Returns "anon" when the request
// carries no identity.
func currentUserID(c echo.Context) string {
    v := c.Get("user_id")
    if v == nil {
        return "anon"
    }
    switch t := v.(type) {
    case string:
        if t != "" {
            return t
        }
    case float64:
        return fmt.Sprintf("%.0f", t)
    case uint64:
        return fmt.Sprintf("%d", t)
    }
    return "anon"
}
