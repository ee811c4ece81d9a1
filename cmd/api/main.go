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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/zhouzirui/emotion-detector/internal/config"
	"github.com/zhouzirui/emotion-detector/internal/handler"
	"github.com/zhouzirui/emotion-detector/internal/logger"
	"github.com/zhouzirui/emotion-detector/internal/metrics"
	emotionservice "github.com/zhouzirui/emotion-detector/internal/service/emotion"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "emotion detector: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, continuing with system environment variables only\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer log.Sync()
	zap.ReplaceGlobals(log.Desugar())

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.MustNew(registry)

	provider, err := emotionservice.NewProviderFromConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize emotion provider: %w", err)
	}
	log.Infow("startup", "provider", provider.Name(), "timeout", cfg.Provider.Timeout)

	svc := emotionservice.NewService(provider, emotionservice.Config{Timeout: cfg.Provider.Timeout}, log, m)
	router := handler.NewRouter(svc, provider.Name(), registry, log)

	return startServer(ctx, cfg.Server, router, log)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, log *zap.SugaredLogger) error {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Infow("Emotion detector listening", "addr", serverCfg.Addr)
	return runServer(ctx, srv)
}

func runServer(ctx context.Context, srv *http.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
