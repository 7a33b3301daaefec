package model

import "time"

// Account roles.  The role column discriminates between people looking for
// a service and people offering one; the provider-only columns below are
// NULL for clients.
const (
    RoleClient   = "client"
    RoleProvider = "provider"
)

// Account represents a row of the `accounts` table.  Each field corresponds
// to a column in the database.  The json tags are omitted here because these
// structs are used internally by the repository layer; handlers define
// separate response types with appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier of the account.
//  Name         – display name shown next to reviews and listings.
//  Email        – unique email address, stored lowercase.
//  PasswordHash – bcrypt hashed password.
//  Role         – "client" or "provider".
//  ServiceType  – provider-only: what the provider does (nullable).
//  Location     – provider-only: free-text service area (nullable).
//  Phone        – provider-only: contact number (nullable).
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Account struct {
    ID           uint64     // accounts.id
    Name         string     // accounts.name
    Email        string     // accounts.email
    PasswordHash string     // accounts.password_hash
    Role         string     // accounts.role
    ServiceType  *string    // accounts.service_type (nullable)
    Location     *string    // accounts.location (nullable)
    Phone        *string    // accounts.phone (nullable)
    CreatedAt    time.Time  // accounts.created_at
    UpdatedAt    time.Time  // accounts.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each refresh
// token belongs to an account and carries metadata for expiry and
// revocation.  The plain token is never stored; only its SHA‑256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  AccountID – owner of the token.
//  TokenHash – SHA‑256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    AccountID uint64     // refresh_tokens.account_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}
