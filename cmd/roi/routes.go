package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"nexalis-roi/http-server/calculate"
	generate_excel "nexalis-roi/http-server/generate-report/generate-excel"
	getindustries "nexalis-roi/http-server/industries/get"
	"nexalis-roi/http-server/insight/relay"
	getreport "nexalis-roi/http-server/report/get"
	"nexalis-roi/internal/config"
	"nexalis-roi/internal/middleware/auth"
	genexcel "nexalis-roi/internal/service/generate-excel"
	"nexalis-roi/internal/service/session"
)

func routes(cfg config.Config, log *slog.Logger, sessions *session.Service, composer relay.Composer, excel *genexcel.GenerateExcelService) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/api/industries", getindustries.GetIndustries(log))
	router.Post("/api/calculate", calculate.CalculateROI(log, sessions))

	router.Route("/api/sessions/{sessionID}", func(r chi.Router) {
		r.Get("/report", getreport.GetReport(log, sessions))
		r.Get("/summary", getreport.GetSummary(log, sessions))
		r.Get("/export", generate_excel.GenerateReportExcel(log, excel))
	})

	router.Post("/api/gemini", relay.RelayInsight(log, composer, cfg.Narrative.Timeout))

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(log, cfg.AdminLogin, cfg.AdminPass))
	adminRouter.Handle("/metrics", promhttp.Handler())
	router.Mount("/api/admin", adminRouter)

	mountFrontend(router, log, cfg.FrontendDir)

	return router
}

// mountFrontend serves the built SPA with an index.html fallback. The API
// keeps working without it.
func mountFrontend(router chi.Router, log *slog.Logger, frontendDir string) {
	if info, err := os.Stat(frontendDir); err != nil || !info.IsDir() {
		log.Warn("frontend directory not found, serving API only", slog.String("path", frontendDir))
		return
	}

	index := filepath.Join(frontendDir, "index.html")

	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, index)
	})
}
