package handler

import (
    "context"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/service-connect/internal/repository"
)

// ProviderHandler serves the unauthenticated provider browse endpoints.
type ProviderHandler struct {
    Accounts AccountStore
    Ratings  RatingStore
}

func NewProviderHandler(a AccountStore, r RatingStore) *ProviderHandler {
    return &ProviderHandler{Accounts: a, Ratings: r}
}

// List returns all provider accounts matching the optional service_type and
// location query parameters.  Both filters are case-insensitive substring
// matches; the aggregate rating on each row is computed by the query
// itself, so the listing always reflects the ratings table as of this read.
func (h *ProviderHandler) List(c echo.Context) error {
    q := repository.ProviderQuery{
        ServiceType: c.QueryParam("service_type"),
        Location:    c.QueryParam("location"),
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    rows, err := h.Accounts.SearchProviders(ctx, q)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, rows)
}

// Get returns a single provider's public view including every review it has
// received.  Requests for ids that do not exist, or that belong to client
// accounts, both answer 404.
func (h *ProviderHandler) Get(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "provider not found"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    a, err := h.Accounts.GetProvider(ctx, id)
    if err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "provider not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }

    view, err := accountView(ctx, h.Ratings, a)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, view)
}
