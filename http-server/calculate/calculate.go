package calculate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"nexalis-roi/internal/report"
	"nexalis-roi/internal/roi"
	"nexalis-roi/internal/service/session"
)

type Submitter interface {
	Submit(ctx context.Context, sessionID string, in roi.Inputs) (string, session.Submission, error)
}

// Request carries the form values. Pointers tell a missing field from
// a zero one.
type Request struct {
	SessionID       string       `json:"sessionId,omitempty"`
	Employees       *int         `json:"employees"`
	HourlyWage      *float64     `json:"hourlyWage"`
	HoursRepetitive *float64     `json:"hoursRepetitive"`
	Industry        roi.Industry `json:"industry"`
}

type Resp struct {
	SessionID  string        `json:"sessionId"`
	Submission report.Bundle `json:"submission"`
}

func (r Request) inputs() (roi.Inputs, error) {
	if r.Employees == nil || r.HourlyWage == nil || r.HoursRepetitive == nil || r.Industry == "" {
		return roi.Inputs{}, errMissingField
	}
	in := roi.Inputs{
		Employees:       *r.Employees,
		HourlyWage:      *r.HourlyWage,
		HoursRepetitive: *r.HoursRepetitive,
		Industry:        r.Industry,
	}
	return in, in.Validate()
}

var errMissingField = errors.New("employees, hourlyWage, hoursRepetitive and industry are required")

func CalculateROI(log *slog.Logger, sub Submitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.calculate.CalculateROI"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		in, err := req.inputs()
		if err != nil {
			log.Debug("rejected inputs", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		sessionID, s, err := sub.Submit(ctx, req.SessionID, in)
		if errors.Is(err, session.ErrInvalidSessionID) {
			http.Error(w, "invalid session id", http.StatusBadRequest)
			return
		}
		if err != nil {
			log.Error("failed to submit calculation", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		log.Info("calculation submitted",
			slog.String("op", op),
			slog.String("session", sessionID),
			slog.Uint64("submission", s.ID),
			slog.String("industry", string(in.Industry)),
		)

		render.JSON(w, r, Resp{
			SessionID:  sessionID,
			Submission: s.Bundle(),
		})
	}
}
