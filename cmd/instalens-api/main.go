package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"instalens/internal/platform/config"
	"instalens/internal/platform/logger"
	phttp "instalens/internal/platform/net/http"
	"instalens/internal/platform/net/middleware"
	"instalens/internal/services/analyze"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	logger.Init(logger.FromEnv())
	l := logger.Get()

	root := config.New()
	apiCfg := root.Prefix("INSTALENS_")

	svc := analyze.New(analyze.Config{})

	srv := phttp.NewServer(apiCfg, func(m *chi.Mux) {
		m.Use(chimw.RequestID)
		m.Use(middleware.AccessLogZerolog(middleware.AccessLogOptions{
			Slow: apiCfg.MayDuration("SLOW_REQUEST", 2*time.Second),
		}))
		m.Use(middleware.RecoverJSON)
		m.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{apiCfg.MayString("CORS_ORIGIN", "*")},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		svc.MountRoutes(m)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(ctx) }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			l.Error().Err(err).Msg("shutdown failed")
		}
	case err := <-errCh:
		if err != nil {
			l.Panic().Err(err).Msg("http server stopped")
		}
	}
}
