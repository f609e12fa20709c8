package get

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"nexalis-roi/internal/report"
	"nexalis-roi/internal/service/session"
)

type SubmissionGetter interface {
	Current(sessionID string) (session.Submission, error)
}

type Resp struct {
	SessionID  string        `json:"sessionId"`
	Submission report.Bundle `json:"submission"`
}

// GetReport returns the current bundle of a session. The browser polls it
// until the narrative status leaves "generating".
func GetReport(log *slog.Logger, getter SubmissionGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GetReport"

		sessionID := chi.URLParam(r, "sessionID")

		sub, ok := current(w, log, op, getter, sessionID)
		if !ok {
			return
		}

		render.JSON(w, r, Resp{
			SessionID:  sessionID,
			Submission: sub.Bundle(),
		})
	}
}

// GetSummary returns the plain-text summary used by the "copy" button.
func GetSummary(log *slog.Logger, getter SubmissionGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GetSummary"

		sub, ok := current(w, log, op, getter, chi.URLParam(r, "sessionID"))
		if !ok {
			return
		}

		text, err := report.Text(report.BuildDocument(sub.Bundle(), time.Now()))
		if err != nil {
			log.Error("failed to render summary", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.PlainText(w, r, text)
	}
}

func current(w http.ResponseWriter, log *slog.Logger, op string, getter SubmissionGetter, sessionID string) (session.Submission, bool) {
	if sessionID == "" {
		http.Error(w, "session id is required", http.StatusBadRequest)
		return session.Submission{}, false
	}

	sub, err := getter.Current(sessionID)
	if errors.Is(err, session.ErrNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return session.Submission{}, false
	}
	if err != nil {
		log.Error("failed to load session", slog.String("op", op), slog.String("error", err.Error()))
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return session.Submission{}, false
	}

	return sub, true
}
