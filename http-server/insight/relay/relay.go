package relay

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"nexalis-roi/internal/narrative"
	"nexalis-roi/internal/roi"
)

const (
	msgMissingData     = "Missing required data"
	msgGenerateFailure = "Failed to generate insight"
)

type Composer interface {
	Compose(ctx context.Context, in roi.Inputs, res roi.Result) (narrative.RelayReply, error)
}

// RelayInsight is the same-origin endpoint the narrative requester calls.
// The model credential stays on this side.
func RelayInsight(log *slog.Logger, composer Composer, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.insight.RelayInsight"

		var req narrative.RelayRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Inputs == nil || req.Results == nil {
			fail(w, r, http.StatusBadRequest, narrative.RelayError{Error: msgMissingData})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		reply, err := composer.Compose(ctx, *req.Inputs, *req.Results)
		if errors.Is(err, narrative.ErrNoAPIKey) {
			log.Error("relay called without API key", slog.String("op", op))
			fail(w, r, http.StatusInternalServerError, narrative.RelayError{Error: narrative.ErrNoAPIKey.Error()})
			return
		}
		if err != nil {
			log.Error("failed to generate insight", slog.String("op", op), slog.String("error", err.Error()))
			fail(w, r, http.StatusInternalServerError, narrative.RelayError{Error: msgGenerateFailure, Details: err.Error()})
			return
		}

		render.JSON(w, r, reply)
	}
}

func fail(w http.ResponseWriter, r *http.Request, status int, body narrative.RelayError) {
	render.Status(r, status)
	render.JSON(w, r, body)
}
