package handler

import (
    "context"
    "encoding/json"
    "log"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/service-connect/internal/queue"
    "github.com/iliyamo/service-connect/internal/repository"
)

// RatingHandler serves rating submission.  Publish is optional; when set it
// is invoked after a successful write with the rating.submitted event, and
// its errors are logged rather than surfaced because event delivery must
// never fail the request that already committed.
type RatingHandler struct {
    Accounts AccountStore
    Ratings  RatingStore
    Publish  func(ctx context.Context, ev queue.RatingSubmittedEvent) error
}

func NewRatingHandler(a AccountStore, r RatingStore,
    publish func(ctx context.Context, ev queue.RatingSubmittedEvent) error) *RatingHandler {
    return &RatingHandler{Accounts: a, Ratings: r, Publish: publish}
}

// submitRatingReq binds the rating payload.  Score is a json.Number so the
// handler can tell an integer from 3.5 or "abc" and reject both with a
// proper validation message instead of a generic bind failure.
type submitRatingReq struct {
    Score   json.Number `json:"score"`
    Comment string      `json:"comment"`
}

// parseScore validates the submitted score: it must be present, an integer,
// and within [1,5].  Returns the score and an empty message on success.
func parseScore(n json.Number) (int, string) {
    raw := strings.TrimSpace(n.String())
    if raw == "" {
        return 0, "score is required"
    }
    v, err := n.Int64()
    if err != nil {
        return 0, "score must be an integer"
    }
    if v < 1 || v > 5 {
        return 0, "score must be between 1 and 5"
    }
    return int(v), ""
}

// Submit records the caller's rating of a provider.  The rater identity
// comes exclusively from the bearer token; the (provider, rater) pair is
// upserted, so a repeat submission replaces the previous score and comment
// rather than adding a second row.  Responds 201 with the provider's fresh
// aggregate.
func (h *RatingHandler) Submit(c echo.Context) error {
    providerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || providerID == 0 {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "provider not found"})
    }

    raterID, ok := callerID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    var req submitRatingReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    score, msg := parseScore(req.Score)
    if msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    provider, err := h.Accounts.GetProvider(ctx, providerID)
    if err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "provider not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }

    aggregate, err := h.Ratings.Upsert(ctx, providerID, raterID, score, req.Comment)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save rating failed"})
    }

    if h.Publish != nil {
        ev := queue.RatingSubmittedEvent{
            ProviderID:   providerID,
            ProviderName: provider.Name,
            RaterID:      raterID,
            Score:        score,
            Comment:      req.Comment,
            Aggregate:    aggregate,
            SubmittedAt:  time.Now().UTC().Format(time.RFC3339),
        }
        // Detached context: the event outlives the request.
        go func() {
            pctx, pcancel := context.WithTimeout(context.Background(), 10*time.Second)
            defer pcancel()
            if err := h.Publish(pctx, ev); err != nil {
                log.Printf("rating event publish failed: %v", err)
            }
        }()
    }

    return c.JSON(http.StatusCreated, echo.Map{
        "message": "rating submitted",
        "rating":  aggregate,
    })
}
