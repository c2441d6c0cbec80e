package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/AdoDeveloper/sistema-demoras-sub003/internal/collector"
	"github.com/AdoDeveloper/sistema-demoras-sub003/internal/config"
	"github.com/AdoDeveloper/sistema-demoras-sub003/internal/draft"
	httpapi "github.com/AdoDeveloper/sistema-demoras-sub003/internal/http"
	"github.com/AdoDeveloper/sistema-demoras-sub003/internal/storage"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "demoras-server",
		Short: "Operations-tracking service for the ALMAPAC facility",
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./config.yaml)")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg)
		},
	}

	root.AddCommand(serve)
	return root
}

func openRepository(cfg *config.Config) (storage.Repository, error) {
	switch cfg.Storage.Driver {
	case "sqlite":
		return storage.NewSQLiteRepository(cfg.Storage.Path)
	case "postgres":
		return storage.NewPostgresRepository(cfg.Storage.DSN)
	case "memory":
		return storage.NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func runServer(ctx context.Context, cfg *config.Config) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	repo, err := openRepository(cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	col := collector.NewClient(cfg.Collector.URL, cfg.Collector.Timeout)
	store := draft.NewStore(repo, col, logger)
	handler := httpapi.NewHandler(store, repo, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(httpapi.ExtractUserMiddleware(logger))
	r.Mount("/api", handler.Routes())

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
