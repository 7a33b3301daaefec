package repository

import (
	"context"
	"strings"
)

// ProviderQuery defines the optional filters for listing providers.  Empty
// fields are no-ops; set fields match case-insensitively as substrings.
type ProviderQuery struct {
	ServiceType string
	Location    string
}

// ProviderRow is one provider in a public listing, including the aggregate
// rating computed read-time from the current rating rows.
type ProviderRow struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	ServiceType *string `json:"service_type"`
	Location    *string `json:"location"`
	Phone       *string `json:"phone"`
	Rating      float64 `json:"rating"`
	Reviews     int64   `json:"review_count"`
}

// SearchProviders returns all accounts with the provider role matching the
// given filters.  The aggregate rating is computed in the same query via a
// LEFT JOIN so the listing can never go stale relative to the ratings
// table: COALESCE(ROUND(AVG(score),1),0) yields the mean rounded to one
// decimal, or 0 for providers nobody has rated yet.
func (r *AccountRepo) SearchProviders(ctx context.Context, q ProviderQuery) ([]ProviderRow, error) {
	where := []string{"a.role = 'provider'"}
	args := []any{}

	if q.ServiceType != "" {
		where = append(where, "LOWER(a.service_type) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.ServiceType)+"%")
	}
	if q.Location != "" {
		where = append(where, "LOWER(a.location) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Location)+"%")
	}

	query := `SELECT
			a.id,
			a.name,
			a.email,
			a.role,
			a.service_type,
			a.location,
			a.phone,
			COALESCE(ROUND(AVG(rt.score),1),0) AS rating,
			COUNT(rt.id) AS review_count
		FROM accounts a
		LEFT JOIN ratings rt ON rt.provider_id = a.id
		WHERE ` + strings.Join(where, " AND ") + `
		GROUP BY a.id, a.name, a.email, a.role, a.service_type, a.location, a.phone
		ORDER BY a.id ASC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ProviderRow, 0)
	for rows.Next() {
		var p ProviderRow
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Email,
			&p.Role,
			&p.ServiceType,
			&p.Location,
			&p.Phone,
			&p.Rating,
			&p.Reviews,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
