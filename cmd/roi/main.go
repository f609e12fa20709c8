package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"nexalis-roi/internal/config"
	"nexalis-roi/internal/narrative"
	genexcel "nexalis-roi/internal/service/generate-excel"
	"nexalis-roi/internal/service/session"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustConfig()

	log, closeLog := setupLogger(cfg.Env, cfg.Log)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	composer := narrative.NewComposer(newGenerator(ctx, log, cfg.Gemini), cfg.Narrative.Structured)
	requester := narrative.NewRequester(log, cfg.Narrative.RelayURL, cfg.Narrative.Timeout)
	sessions := session.NewService(log, requester, cfg.Session.MaxSessions)
	excel := genexcel.NewGenerateService(sessions)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, sessions, composer, excel),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.Narrative.Timeout + cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server started", slog.String("address", cfg.Address), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return sessions.Sweep(gctx, cfg.Session.SweepInterval, cfg.Session.TTL)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		sessions.Close()
		return err
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped", slog.String("error", err.Error()))
		closeLog()
		os.Exit(1)
	}

	log.Info("server stopped")
}

// newGenerator returns nil when no key is configured; the relay then
// answers "API key not configured".
func newGenerator(ctx context.Context, log *slog.Logger, cfg config.Gemini) narrative.Generator {
	gen, err := narrative.NewGeminiGenerator(ctx, cfg.APIKey, cfg.Model, cfg.Temperature)
	if err != nil {
		log.Warn("insight generation disabled", slog.String("error", err.Error()))
		return nil
	}
	return gen
}
