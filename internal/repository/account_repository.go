package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/service-connect/internal/model"
	"github.com/iliyamo/service-connect/internal/utils"
)

// AccountRepo provides CRUD operations over the 'accounts' table.
type AccountRepo struct{ DB *sql.DB }

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{DB: db} }

// NewAccount carries the fields needed to insert an account.  The
// provider-only pointers stay nil for clients so the columns remain NULL.
type NewAccount struct {
	Name        string
	Email       string
	Password    string
	Role        string
	ServiceType *string
	Location    *string
	Phone       *string
}

// Create hashes the password, inserts the account and returns its ID.  The
// email is normalized to lowercase before insertion, which together with
// the unique index makes duplicate detection case-insensitive.
func (r *AccountRepo) Create(ctx context.Context, in NewAccount, cost int) (uint64, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	hash, err := utils.HashPassword(in.Password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO accounts (name, email, password_hash, role, service_type, location, phone) VALUES (?,?,?,?,?,?,?)",
		strings.TrimSpace(in.Name), email, hash, in.Role, in.ServiceType, in.Location, in.Phone)
	if err != nil {
		// The only unique key on accounts besides the PK is email.
		if isDuplicateKey(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

const accountColumns = "id,name,email,password_hash,role,service_type,location,phone,created_at,updated_at"

func scanAccount(row *sql.Row) (model.Account, error) {
	var a model.Account
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role,
		&a.ServiceType, &a.Location, &a.Phone, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// GetByEmail fetches an account by normalized email.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanAccount(r.DB.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE email=? LIMIT 1", email))
}

// GetByID fetches an account by id.
func (r *AccountRepo) GetByID(ctx context.Context, id uint64) (model.Account, error) {
	return scanAccount(r.DB.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE id=? LIMIT 1", id))
}

// GetProvider fetches an account by id, requiring the provider role.  It
// returns ErrNotFound both when no row exists and when the row belongs to a
// client, so callers cannot tell the two cases apart.
func (r *AccountRepo) GetProvider(ctx context.Context, id uint64) (model.Account, error) {
	a, err := scanAccount(r.DB.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE id=? AND role=? LIMIT 1",
		id, model.RoleProvider))
	if err == sql.ErrNoRows {
		return model.Account{}, ErrNotFound
	}
	return a, err
}
