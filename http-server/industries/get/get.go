package get

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"nexalis-roi/internal/roi"
)

type Resp struct {
	Industries []roi.Industry `json:"industries"`
	Limits     roi.FormLimits `json:"limits"`
	Defaults   roi.Inputs     `json:"defaults"`
}

// GetIndustries serves what the calculator form needs to render.
func GetIndustries(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.industries.GetIndustries"

		log.Debug("form metadata requested", slog.String("op", op))

		render.JSON(w, r, Resp{
			Industries: roi.Industries,
			Limits:     roi.Limits,
			Defaults:   roi.DefaultInputs,
		})
	}
}
