package model

import "time"

// Rating represents one rater's evaluation of one provider, mirroring the
// `ratings` table.  At most one row exists per (ProviderID, RaterID) pair;
// a repeat submission overwrites Score and Comment in place.  Both foreign
// keys are immutable once the row exists.
//
// Fields:
//  ID         – primary key identifier.
//  ProviderID – account being rated (role must be "provider").
//  RaterID    – account that submitted the rating.
//  Score      – integer score between 1 and 5 inclusive.
//  Comment    – optional free-text comment.
//  CreatedAt  – timestamp of first submission.
//  UpdatedAt  – timestamp of last overwrite.
type Rating struct {
    ID         uint64    // ratings.id
    ProviderID uint64    // ratings.provider_id
    RaterID    uint64    // ratings.rater_id
    Score      int       // ratings.score
    Comment    string    // ratings.comment
    CreatedAt  time.Time // ratings.created_at
    UpdatedAt  time.Time // ratings.updated_at
}
