package generate_excel

import (
	"context"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	genexcel "nexalis-roi/internal/service/generate-excel"
	"nexalis-roi/internal/service/session"
)

type ExcelGenerator interface {
	GenerateExcel(ctx context.Context, sessionID string) (genexcel.Export, error)
}

func GenerateReportExcel(log *slog.Logger, gen ExcelGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateReportExcel"

		sessionID := chi.URLParam(r, "sessionID")
		if sessionID == "" {
			http.Error(w, "session id is required", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		exp, err := gen.GenerateExcel(ctx, sessionID)
		if errors.Is(err, session.ErrNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("failed to generate excel", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", genexcel.ContentType)
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": exp.FileName}))
		w.Header().Set("Content-Length", strconv.Itoa(len(exp.Data)))
		if _, err := w.Write(exp.Data); err != nil {
			log.Warn("failed to write excel", slog.String("op", op), slog.String("error", err.Error()))
		}
	}
}
