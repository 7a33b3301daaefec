package handler

// Store interfaces consumed by the handlers.  The concrete implementations
// live in internal/repository; handlers depend on these narrow interfaces
// so unit tests can substitute in-memory fakes without a database.

import (
    "context"
    "time"

    "github.com/iliyamo/service-connect/internal/model"
    "github.com/iliyamo/service-connect/internal/repository"
)

// AccountStore is the slice of AccountRepo the handlers need.
type AccountStore interface {
    Create(ctx context.Context, in repository.NewAccount, cost int) (uint64, error)
    GetByEmail(ctx context.Context, email string) (model.Account, error)
    GetByID(ctx context.Context, id uint64) (model.Account, error)
    GetProvider(ctx context.Context, id uint64) (model.Account, error)
    SearchProviders(ctx context.Context, q repository.ProviderQuery) ([]repository.ProviderRow, error)
}

// TokenStore persists refresh token hashes.
type TokenStore interface {
    StoreRefresh(ctx context.Context, accountID uint64, tokenHash string, exp time.Time) error
    ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error)
    RevokeByHash(ctx context.Context, tokenHash string) error
    RevokeAllForAccount(ctx context.Context, accountID uint64) error
}

// RatingStore owns rating rows and the derived provider aggregate.
type RatingStore interface {
    Upsert(ctx context.Context, providerID, raterID uint64, score int, comment string) (float64, error)
    ListByProvider(ctx context.Context, providerID uint64) ([]repository.RatingView, error)
    AverageForProvider(ctx context.Context, providerID uint64) (float64, error)
}
