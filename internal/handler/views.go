package handler

// views.go builds the public JSON representation of accounts.  The password
// hash never leaves the repository layer; a client account exposes only its
// identity fields, while a provider account additionally carries its service
// details, the aggregate rating and (where requested) the review list.

import (
    "context"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/service-connect/internal/model"
    "github.com/iliyamo/service-connect/internal/repository"
)

// baseView returns the fields every account exposes publicly.
func baseView(a model.Account) echo.Map {
    return echo.Map{
        "id":    a.ID,
        "name":  a.Name,
        "email": a.Email,
        "role":  a.Role,
    }
}

// providerView extends baseView with the provider-only fields.  reviews may
// be nil when the caller does not want the full list serialized; rating is
// always present for providers, defaulting to 0 with no ratings.
func providerView(a model.Account, rating float64, reviews []repository.RatingView) echo.Map {
    v := baseView(a)
    v["service_type"] = a.ServiceType
    v["location"] = a.Location
    v["phone"] = a.Phone
    v["rating"] = rating
    if reviews != nil {
        v["reviews"] = reviews
    }
    return v
}

// accountView renders an account with live rating data for providers.  It
// is used wherever a full public view is returned (register, login, me).
func accountView(ctx context.Context, ratings RatingStore, a model.Account) (echo.Map, error) {
    if a.Role != model.RoleProvider {
        return baseView(a), nil
    }
    avg, err := ratings.AverageForProvider(ctx, a.ID)
    if err != nil {
        return nil, err
    }
    reviews, err := ratings.ListByProvider(ctx, a.ID)
    if err != nil {
        return nil, err
    }
    return providerView(a, avg, reviews), nil
}

// callerID extracts the authenticated account id that JWTAuth stored in the
// echo context.  JWT numeric claims decode as float64; string subjects are
// parsed for robustness.  The boolean is false when the request carries no
// usable identity.
func callerID(c echo.Context) (uint64, bool) {
    switch v := c.Get("user_id").(type) {
    case float64:
        if v > 0 {
            return uint64(v), true
        }
    case uint64:
        if v > 0 {
            return v, true
        }
    case string:
        if n, err := strconv.ParseUint(v, 10, 64); err == nil && n > 0 {
            return n, true
        }
    }
    return 0, false
}
