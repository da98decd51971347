package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"match-service/internal/config"
	"match-service/internal/fetch"
	matchHnd "match-service/internal/match/handler"
	"match-service/internal/match/service"
	"match-service/internal/metrics"
	"match-service/internal/reference"
	serverhttp "match-service/server/http"
)

func main() {
	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	kw, err := reference.LoadKeywords(cfg.KeywordDir)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.KeywordDir).Msg("keywords")
	}

	store, closeStore, err := reference.OpenStore(reference.StoreOptions{
		Backend:     cfg.ReferenceBackend,
		Dir:         cfg.ReferenceDir,
		RedisAddr:   cfg.RedisAddr,
		RedisPrefix: cfg.RedisPrefix,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("reference store")
	}
	defer closeStore()

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.FetchTimeout)
	refs, err := reference.Load(loadCtx, store, kw)
	cancelLoad()
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.ReferenceBackend).Msg("load reference data")
	}
	logger.Info().
		Int("brands", refs.BrandNames.Len()).
		Int("aliases", refs.BrandAliases.Len()).
		Int("parts", refs.PartNumbers.Len()).
		Msg("reference data loaded")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	h := &matchHnd.Handler{
		Engine:      service.New(refs, logger),
		Fetcher:     fetch.NewClient(cfg.DocumentURL, cfg.FetchTimeout),
		Metrics:     metrics.New(reg),
		MaxUploadMB: cfg.MaxUploadMB,
		Log:         logger,
	}
	r := serverhttp.NewRouter(cfg, logger, h, metrics.Handler(reg))

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}
	logger.Info().Str("addr", cfg.Addr()).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info().Msg("bye")
}
