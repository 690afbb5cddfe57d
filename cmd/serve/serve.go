// Package serve implements the HTTP API server command.
package serve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/mhalden/closet/internal/config"
	"github.com/mhalden/closet/internal/handler"
	"github.com/mhalden/closet/internal/metrics"
	"github.com/mhalden/closet/internal/repository/sqlite"
	"github.com/mhalden/closet/internal/service"
	"github.com/mhalden/closet/internal/storage"
	"github.com/spf13/cobra"
)

// Command creates the serve command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the catalogue HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if cfg.PasswordHash != "" && len(cfg.JWTSecret) < 32 {
		return errors.New("CLOSET_JWT_SECRET must be at least 32 characters when CLOSET_PASSWORD_HASH is set")
	}

	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("database ready", "path", cfg.DBPath)

	imageFiles, err := storage.NewDiskStore(cfg.ImagesDir)
	if err != nil {
		return fmt.Errorf("open image store: %w", err)
	}
	outfitFiles, err := storage.NewDiskStore(cfg.OutfitsDir)
	if err != nil {
		return fmt.Errorf("open outfit store: %w", err)
	}

	catalog := service.NewCatalogService(db.Images(), db.Categories(), db.Tags(), db.Outfits())
	auth := service.NewAuthService(cfg.PasswordHash, cfg.JWTSecret)
	if !auth.Enabled() {
		slog.Warn("no access password configured, API is open")
	}

	loginLimiter := service.NewTokenBucket(0.5, 5)
	defer loginLimiter.Close()

	m := metrics.New()

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, catalog, auth, imageFiles, outfitFiles, loginLimiter, cfg.ImagesDir, cfg.OutfitsDir)
	mux.Handle("GET /metrics", m.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.Chain(m, auth, mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
