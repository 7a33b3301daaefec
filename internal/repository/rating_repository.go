package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/service-connect/internal/model"
)

// RatingRepo owns the 'ratings' table.  One row exists per
// (provider_id, rater_id) pair; repeat submissions overwrite score and
// comment in place.  All timestamp columns are stored in UTC.
type RatingRepo struct {
    db *sql.DB
}

// NewRatingRepo returns a new RatingRepo bound to the given database.
func NewRatingRepo(db *sql.DB) *RatingRepo { return &RatingRepo{db: db} }

// RatingView is a rating row joined with the rater's display name, as
// embedded in provider detail responses.
type RatingView struct {
    ID         uint64 `json:"id"`
    ProviderID uint64 `json:"provider_id"`
    RaterID    uint64 `json:"user_id"`
    RaterName  string `json:"user"`
    Score      int    `json:"score"`
    Comment    string `json:"comment"`
}

// Upsert writes the rating for (providerID, raterID) and returns the
// provider's recomputed aggregate. The row lock taken by SELECT ... FOR
// UPDATE serializes concurrent submissions from the same rater, and
// computing the average inside the same transaction guarantees the
// returned aggregate reflects exactly the committed rating set, never a
// partial interleaving with another writer.
func (r *RatingRepo) Upsert(ctx context.Context, providerID, raterID uint64, score int, comment string) (float64, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return 0, err
    }
    defer func() { _ = tx.Rollback() }()

    var existing model.Rating
    err = tx.QueryRowContext(ctx,
        "SELECT id, provider_id, rater_id, score, comment FROM ratings WHERE provider_id=? AND rater_id=? FOR UPDATE",
        providerID, raterID).Scan(&existing.ID, &existing.ProviderID, &existing.RaterID, &existing.Score, &existing.Comment)
    switch err {
    case nil:
        if _, err := tx.ExecContext(ctx,
            "UPDATE ratings SET score=?, comment=? WHERE id=?",
            score, comment, existing.ID); err != nil {
            return 0, err
        }
    case sql.ErrNoRows:
        _, err := tx.ExecContext(ctx,
            "INSERT INTO ratings (provider_id, rater_id, score, comment) VALUES (?,?,?,?)",
            providerID, raterID, score, comment)
        if isDuplicateKey(err) {
            // Lost a first-submission race against another transaction for
            // the same (provider, rater) pair; the unique key rejected our
            // row, so apply the submission as the overwrite it now is.
            _, err = tx.ExecContext(ctx,
                "UPDATE ratings SET score=?, comment=? WHERE provider_id=? AND rater_id=?",
                score, comment, providerID, raterID)
        }
        if err != nil {
            return 0, err
        }
    default:
        return 0, err
    }

    var avg float64
    if err := tx.QueryRowContext(ctx,
        "SELECT COALESCE(ROUND(AVG(score),1),0) FROM ratings WHERE provider_id=?",
        providerID).Scan(&avg); err != nil {
        return 0, err
    }

    if err := tx.Commit(); err != nil {
        return 0, err
    }
    return avg, nil
}

// ListByProvider returns every rating received by a provider together with
// the rater's display name, newest first.
func (r *RatingRepo) ListByProvider(ctx context.Context, providerID uint64) ([]RatingView, error) {
    rows, err := r.db.QueryContext(ctx, `
        SELECT rt.id, rt.provider_id, rt.rater_id, a.name, rt.score, rt.comment
        FROM ratings rt
        JOIN accounts a ON a.id = rt.rater_id
        WHERE rt.provider_id = ?
        ORDER BY rt.updated_at DESC, rt.id DESC`,
        providerID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make([]RatingView, 0)
    for rows.Next() {
        var v RatingView
        if err := rows.Scan(&v.ID, &v.ProviderID, &v.RaterID, &v.RaterName, &v.Score, &v.Comment); err != nil {
            return nil, err
        }
        out = append(out, v)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// AverageForProvider recomputes a provider's aggregate from the current
// rating rows: the mean score rounded to one decimal, 0 when the provider
// has no ratings yet.
func (r *RatingRepo) AverageForProvider(ctx context.Context, providerID uint64) (float64, error) {
    var avg float64
    err := r.db.QueryRowContext(ctx,
        "SELECT COALESCE(ROUND(AVG(score),1),0) FROM ratings WHERE provider_id=?",
        providerID).Scan(&avg)
    return avg, err
}
