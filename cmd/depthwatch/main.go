package main

import (
	"context"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"depthwatch/internal/compare"
	"depthwatch/internal/config"
	"depthwatch/internal/exchange/coinbase"
	"depthwatch/internal/exchange/common"
	"depthwatch/internal/exchange/gemini"
	"depthwatch/internal/infra/health"
	"depthwatch/internal/infra/http/middleware"
	"depthwatch/internal/infra/log"
	"depthwatch/internal/infra/metrics"
	"depthwatch/internal/infra/netutil"
	"depthwatch/internal/infra/runner"
	"depthwatch/internal/infra/version"
	"depthwatch/internal/replay"
	"depthwatch/internal/report"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()
	logger := log.NewLogger(cfg)

	// Offline replay mode: evaluate a CSV book and exit
	if os.Getenv("DEPTHWATCH_REPLAY_CSV") != "" {
		if err := replay.RunSimpleCSV(cfg.Cycle.Quantity); err != nil {
			logger.Error().Err(err).Msg("replay failed")
			os.Exit(1)
		}
		return
	}

	// Init metrics and start HTTP endpoint
	registry := metrics.Init(logger)
	mux := http.NewServeMux()
	// admin endpoints (metrics, pprof) behind IP allowlist gate
	adminCIDRs := netutil.MustParseCIDRs(cfg.Server.AdminAllowCIDRs)
	mux.Handle("/metrics", middleware.AdminGate(adminCIDRs, metrics.Handler(registry)))
	mux.HandleFunc("/healthz", health.Healthz)
	mux.HandleFunc("/readyz", health.Readyz)
	mux.HandleFunc("/version", version.Handler)
	if cfg.Server.Pprof {
		mux.Handle("/debug/pprof/", middleware.AdminGate(adminCIDRs, http.HandlerFunc(pprof.Index)))
		mux.Handle("/debug/pprof/cmdline", middleware.AdminGate(adminCIDRs, http.HandlerFunc(pprof.Cmdline)))
		mux.Handle("/debug/pprof/profile", middleware.AdminGate(adminCIDRs, http.HandlerFunc(pprof.Profile)))
		mux.Handle("/debug/pprof/symbol", middleware.AdminGate(adminCIDRs, http.HandlerFunc(pprof.Symbol)))
		mux.Handle("/debug/pprof/trace", middleware.AdminGate(adminCIDRs, http.HandlerFunc(pprof.Trace)))
	}

	// wrap mux with middlewares (request id and logging)
	handler := middleware.RequestID(middleware.Logger(logger)(mux))

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:       time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	logger.Info().
		Str("addr", cfg.Server.Addr).
		Float64("quantity", cfg.Cycle.Quantity).
		Int("poll_interval_s", cfg.Cycle.PollIntervalSeconds).
		Msg("depthwatch started")

	// watcher worker: poll both venues, walk the books, report
	g := &runner.Group{}
	workerErrCh := g.Go(ctx, func(ctx context.Context) error {
		adapters := []common.Adapter{coinbase.New(cfg), gemini.New(cfg)}
		eng := compare.New(cfg, adapters, logger, report.NewRenderer(os.Stdout))
		return eng.Run(ctx)
	})

	// mark ready after initialization completes
	health.SetReady(true)

	// Wait for termination signals or worker error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-ctx.Done():
	case s := <-sigCh:
		logger.Info().Str("signal", s.String()).Msg("shutdown signal received")
	case err := <-workerErrCh:
		if err != nil {
			logger.Error().Err(err).Msg("worker error")
			health.SetReady(false)
		}
	}

	// mark not ready before shutdown
	health.SetReady(false)
	cancel()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	g.Wait()
	logger.Info().Msg("shutdown complete")
}
