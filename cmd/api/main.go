package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"newsbrief/internal/app"
	"newsbrief/internal/config"
	"newsbrief/internal/handler"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	service, err := app.NewService(ctx, cfg)
	if err != nil {
		log.Fatalf("error configuring briefing pipeline: %v", err)
	}

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.Env.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.Env.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r := handler.NewRouter(service, handler.RouterConfig{
		AllowedOrigins: allowedOrigins,
		MediaDir:       cfg.Settings.MediaDir,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Env.Port,
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("error shutting down server", "error", err)
		}
	}()

	slog.Info("listening", "addr", srv.Addr)

	err = srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("error starting server: %v", err)
	}
}
