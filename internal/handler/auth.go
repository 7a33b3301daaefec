package handler

import (
    "context"      // provides context with cancellation for DB calls
    "database/sql" // SQL database interactions
    "net/http"     // HTTP status codes and primitives
    "strings"      // string manipulation utilities
    "time"         // timeouts for DB calls

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/iliyamo/service-connect/internal/config"     // app configuration
    "github.com/iliyamo/service-connect/internal/model"      // domain types
    "github.com/iliyamo/service-connect/internal/repository" // DB repositories
    "github.com/iliyamo/service-connect/internal/utils"      // helper functions (hashing, token issuing)
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
    Cfg      config.Config
    Accounts AccountStore
    Tokens   TokenStore
    Ratings  RatingStore
}

func NewAuthHandler(cfg config.Config, a AccountStore, t TokenStore, r RatingStore) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Accounts: a, Tokens: t, Ratings: r}
}

// ----- DTOs -----

type registerReq struct {
    Name        string `json:"name"`
    Email       string `json:"email"`
    Password    string `json:"password"`
    Role        string `json:"role"` // client | provider
    ServiceType string `json:"service_type"`
    Location    string `json:"location"`
    Phone       string `json:"phone"`
}
type loginReq struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}
type refreshReq struct {
    RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
    Token   string    `json:"token"`
    Expires time.Time `json:"expires"`
}

// validateRegister applies the registration policy and returns a
// client-facing message when the input is rejected.  Phone numbers are
// mandatory for providers: a listing nobody can call is useless.
func validateRegister(req *registerReq) string {
    req.Name = strings.TrimSpace(req.Name)
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    req.Role = strings.ToLower(strings.TrimSpace(req.Role))
    if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
        return "name, email, password and role are required"
    }
    if req.Role != model.RoleClient && req.Role != model.RoleProvider {
        return "role must be either 'client' or 'provider'"
    }
    if !strings.Contains(req.Email, "@") {
        return "invalid email format"
    }
    if len(req.Password) < 6 {
        return "password must be at least 6 characters"
    }
    if req.Role == model.RoleProvider && len(strings.TrimSpace(req.Phone)) < 9 {
        return "service providers must have a valid phone number"
    }
    return ""
}

// optional maps an empty string to a NULL column value.
func optional(s string) *string {
    s = strings.TrimSpace(s)
    if s == "" {
        return nil
    }
    return &s
}

// Register: create an account and return its public view.
func (h *AuthHandler) Register(c echo.Context) error {
    var req registerReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if msg := validateRegister(&req); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    in := repository.NewAccount{
        Name:     req.Name,
        Email:    req.Email,
        Password: req.Password,
        Role:     req.Role,
    }
    if req.Role == model.RoleProvider {
        in.ServiceType = optional(req.ServiceType)
        in.Location = optional(req.Location)
        in.Phone = optional(req.Phone)
    }

    id, err := h.Accounts.Create(ctx, in, h.Cfg.BcryptCost)
    if err != nil {
        if err == repository.ErrEmailExists {
            return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create account failed"})
    }

    a, err := h.Accounts.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load account failed"})
    }
    view, err := accountView(ctx, h.Ratings, a)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load account failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "message": "account created successfully",
        "user":    view,
    })
}

// Login: verify credentials and return a token pair.  Unknown email and
// wrong password produce the same response so the endpoint cannot be used
// to probe which addresses are registered.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.Email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    a, err := h.Accounts.GetByEmail(ctx, req.Email)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if !utils.VerifyPassword(a.PasswordHash, req.Password) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
    }

    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, a.ID, a.Role, h.Cfg.AccessTTLMin)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
    }
    refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
    }
    if err := h.Tokens.StoreRefresh(ctx, a.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
    }

    view, err := accountView(ctx, h.Ratings, a)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load account failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "user":    view,
        "access":  tokenPart{Token: access.Token, Expires: access.Exp},
        "refresh": tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
    })
}

// Refresh: validate by hash, revoke old, issue new pair (rotation).
func (h *AuthHandler) Refresh(c echo.Context) error {
    var req refreshReq
    if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
    }
    hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    accountID, err := h.Tokens.ValidateRefresh(ctx, hash)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
    }
    _ = h.Tokens.RevokeByHash(ctx, hash)

    a, err := h.Accounts.GetByID(ctx, accountID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load account failed"})
    }

    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, accountID, a.Role, h.Cfg.AccessTTLMin)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
    }
    newRef, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
    }
    if err := h.Tokens.StoreRefresh(ctx, accountID, utils.HashRefreshRaw(newRef.Raw), newRef.Exp); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
    }

    return c.JSON(http.StatusOK, echo.Map{
        "user":    baseView(a),
        "access":  tokenPart{Token: access.Token, Expires: access.Exp},
        "refresh": tokenPart{Token: newRef.Raw, Expires: newRef.Exp},
    })
}

// Logout revokes refresh tokens.  With a refresh_token in the body only
// that session ends; with just a valid bearer token every session of the
// account is revoked.
func (h *AuthHandler) Logout(c echo.Context) error {
    var req refreshReq
    _ = c.Bind(&req)
    refreshToken := strings.TrimSpace(req.RefreshToken)

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if refreshToken != "" {
        hash := utils.HashRefreshRaw(refreshToken)
        if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
        }
        if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
        }
        return c.NoContent(http.StatusNoContent)
    }

    // No refresh token supplied: fall back to the bearer identity placed in
    // the context by JWTAuth and revoke everything the account owns.
    if uid, ok := callerID(c); ok {
        if err := h.Tokens.RevokeAllForAccount(ctx, uid); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
        }
        return c.NoContent(http.StatusNoContent)
    }
    return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
}

// Me resolves the bearer token to the live account row and returns its
// public view.  The account may have disappeared since the token was
// issued, which yields a 404 rather than a stale identity.
func (h *AuthHandler) Me(c echo.Context) error {
    uid, ok := callerID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    a, err := h.Accounts.GetByID(ctx, uid)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    view, err := accountView(ctx, h.Ratings, a)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load account failed"})
    }
    return c.JSON(http.StatusOK, view)
}
