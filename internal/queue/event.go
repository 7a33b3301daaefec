// Package queue defines message payloads exchanged over the message broker.
package queue

// RatingSubmittedEvent is published after a rating write commits.  It
// carries enough information for downstream consumers to log, notify the
// provider, or feed analytics without querying the primary database.
type RatingSubmittedEvent struct {
    ProviderID   uint64  `json:"provider_id"`
    ProviderName string  `json:"provider_name"`
    RaterID      uint64  `json:"rater_id"`
    Score        int     `json:"score"`
    Comment      string  `json:"comment"`
    Aggregate    float64 `json:"aggregate"`
    SubmittedAt  string  `json:"submitted_at"`
}
