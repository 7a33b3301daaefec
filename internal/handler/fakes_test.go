package handler_test

// In-memory store fakes backing the handler tests.  One struct implements
// AccountStore, TokenStore and RatingStore with the same semantics the SQL
// repositories provide: lowercase-unique emails, one rating row per
// (provider, rater) pair, and aggregates recomputed from current rows and
// rounded to one decimal.

import (
	"context"
	"database/sql"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/iliyamo/service-connect/internal/model"
	"github.com/iliyamo/service-connect/internal/repository"
	"github.com/iliyamo/service-connect/internal/utils"
)

type ratingKey struct {
	provider uint64
	rater    uint64
}

type fakeTokenRow struct {
	accountID uint64
	expiresAt time.Time
	revoked   bool
}

type fakeStore struct {
	nextAccountID uint64
	nextRatingID  uint64
	accounts      map[uint64]model.Account
	ratings       map[ratingKey]*model.Rating
	tokens        map[string]*fakeTokenRow
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts: map[uint64]model.Account{},
		ratings:  map[ratingKey]*model.Rating{},
		tokens:   map[string]*fakeTokenRow{},
	}
}

// ----- AccountStore -----

func (s *fakeStore) Create(_ context.Context, in repository.NewAccount, cost int) (uint64, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	for _, a := range s.accounts {
		if a.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	hash, err := utils.HashPassword(in.Password, cost)
	if err != nil {
		return 0, err
	}
	s.nextAccountID++
	a := model.Account{
		ID:           s.nextAccountID,
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         in.Role,
		ServiceType:  in.ServiceType,
		Location:     in.Location,
		Phone:        in.Phone,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	s.accounts[a.ID] = a
	return a.ID, nil
}

func (s *fakeStore) GetByEmail(_ context.Context, email string) (model.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range s.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return model.Account{}, sql.ErrNoRows
}

func (s *fakeStore) GetByID(_ context.Context, id uint64) (model.Account, error) {
	a, ok := s.accounts[id]
	if !ok {
		return model.Account{}, sql.ErrNoRows
	}
	return a, nil
}

func (s *fakeStore) GetProvider(_ context.Context, id uint64) (model.Account, error) {
	a, ok := s.accounts[id]
	if !ok || a.Role != model.RoleProvider {
		return model.Account{}, repository.ErrNotFound
	}
	return a, nil
}

func containsFold(field *string, needle string) bool {
	if needle == "" {
		return true
	}
	if field == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*field), strings.ToLower(needle))
}

func (s *fakeStore) SearchProviders(ctx context.Context, q repository.ProviderQuery) ([]repository.ProviderRow, error) {
	out := make([]repository.ProviderRow, 0)
	for _, a := range s.accounts {
		if a.Role != model.RoleProvider {
			continue
		}
		if !containsFold(a.ServiceType, q.ServiceType) || !containsFold(a.Location, q.Location) {
			continue
		}
		avg, _ := s.AverageForProvider(ctx, a.ID)
		var count int64
		for k := range s.ratings {
			if k.provider == a.ID {
				count++
			}
		}
		out = append(out, repository.ProviderRow{
			ID:          a.ID,
			Name:        a.Name,
			Email:       a.Email,
			Role:        a.Role,
			ServiceType: a.ServiceType,
			Location:    a.Location,
			Phone:       a.Phone,
			Rating:      avg,
			Reviews:     count,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ----- TokenStore -----

func (s *fakeStore) StoreRefresh(_ context.Context, accountID uint64, tokenHash string, exp time.Time) error {
	s.tokens[tokenHash] = &fakeTokenRow{accountID: accountID, expiresAt: exp}
	return nil
}

func (s *fakeStore) ValidateRefresh(_ context.Context, tokenHash string) (uint64, error) {
	row, ok := s.tokens[tokenHash]
	if !ok || row.revoked || time.Now().UTC().After(row.expiresAt) {
		return 0, sql.ErrNoRows
	}
	return row.accountID, nil
}

func (s *fakeStore) RevokeByHash(_ context.Context, tokenHash string) error {
	if row, ok := s.tokens[tokenHash]; ok {
		row.revoked = true
	}
	return nil
}

func (s *fakeStore) RevokeAllForAccount(_ context.Context, accountID uint64) error {
	for _, row := range s.tokens {
		if row.accountID == accountID {
			row.revoked = true
		}
	}
	return nil
}

// ----- RatingStore -----

func (s *fakeStore) Upsert(ctx context.Context, providerID, raterID uint64, score int, comment string) (float64, error) {
	key := ratingKey{provider: providerID, rater: raterID}
	if r, ok := s.ratings[key]; ok {
		r.Score = score
		r.Comment = comment
		r.UpdatedAt = time.Now().UTC()
	} else {
		s.nextRatingID++
		s.ratings[key] = &model.Rating{
			ID:         s.nextRatingID,
			ProviderID: providerID,
			RaterID:    raterID,
			Score:      score,
			Comment:    comment,
			CreatedAt:  time.Now().UTC(),
			UpdatedAt:  time.Now().UTC(),
		}
	}
	return s.AverageForProvider(ctx, providerID)
}

func (s *fakeStore) ListByProvider(_ context.Context, providerID uint64) ([]repository.RatingView, error) {
	out := make([]repository.RatingView, 0)
	for k, r := range s.ratings {
		if k.provider != providerID {
			continue
		}
		name := ""
		if a, ok := s.accounts[r.RaterID]; ok {
			name = a.Name
		}
		out = append(out, repository.RatingView{
			ID:         r.ID,
			ProviderID: r.ProviderID,
			RaterID:    r.RaterID,
			RaterName:  name,
			Score:      r.Score,
			Comment:    r.Comment,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *fakeStore) AverageForProvider(_ context.Context, providerID uint64) (float64, error) {
	var sum, n int
	for k, r := range s.ratings {
		if k.provider == providerID {
			sum += r.Score
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return math.Round(float64(sum)/float64(n)*10) / 10, nil
}
