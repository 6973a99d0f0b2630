package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"codedoc/app/config"
	"codedoc/internal/infrastructure/logging"
	"codedoc/internal/infrastructure/metrics"
	"codedoc/internal/infrastructure/tracing"
	"codedoc/internal/infrastructure/transport"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the documentation gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

func runServe(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	logger := logging.New(cfg.Logging)
	logger.Info("config loaded",
		"addr", cfg.Addr(),
		"source_mode", cfg.Source.Mode,
		"llm_base_url", cfg.LLM.BaseURL,
		"api_key", cfg.LLM.APIKey,
	)

	shutdownTracing, err := initTracing(ctx, cfg.Tracing, cfg.Logging.Service, logger)
	if err != nil {
		return err
	}

	docsService, err := buildDocsService(cfg, logger)
	if err != nil {
		return errors.Join(err, shutdown(nil, shutdownTracing, logger))
	}

	handler := transport.NewDocsHandler(docsService, logger, prometheus.DefaultRegisterer)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           transport.NewRouter(handler, cfg.Logging.Service, logger),
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	servers := []*http.Server{srv}
	if cfg.Server.MetricsAddr != "" {
		servers = append(servers, metrics.NewMetricsServer(cfg.Server.MetricsAddr))
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		s := s
		g.Go(func() error {
			logger.Info("starting HTTP server", "addr", s.Addr)
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("listen %s: %w", s.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received")
		return shutdown(servers, shutdownTracing, logger)
	})

	err = g.Wait()
	logger.Info("service stopped")
	return err
}

func shutdown(servers []*http.Server, shutdownTracing tracing.ShutdownFunc, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	for _, s := range servers {
		logger.Info("shutting down http server", "addr", s.Addr)
		if err := s.Shutdown(ctx); err != nil {
			logger.Error("http server shutdown error", "addr", s.Addr, "err", err)
			errs = append(errs, err)
		}
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Error("tracer shutdown error", "err", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
