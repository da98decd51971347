package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"match-service/internal/config"
	"match-service/internal/reference"
)

func main() {
	if err := newRootCmd(config.Load()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config) *cobra.Command {
	var (
		opt      = reference.StoreOptions{}
		brandURL string
		partURL  string
		rps      float64
		maxPages int
	)

	cmd := &cobra.Command{
		Use:           "refresh",
		Short:         "Download brand and part catalogs and store them for match-service",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if brandURL == "" || partURL == "" {
				return fmt.Errorf("both --brand-url and --part-url are required")
			}
			logger := config.SetupLogger(cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st, closeStore, err := reference.OpenStore(opt)
			if err != nil {
				return err
			}
			defer closeStore()

			c := reference.NewCrawler(brandURL, partURL, rps, logger)
			c.MaxPages = maxPages
			return refresh(ctx, c, st)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opt.Backend, "backend", cfg.ReferenceBackend, "reference store: file or redis")
	f.StringVar(&opt.Dir, "dir", cfg.ReferenceDir, "directory for the file store")
	f.StringVar(&opt.RedisAddr, "redis-addr", cfg.RedisAddr, "redis address")
	f.StringVar(&opt.RedisPrefix, "redis-prefix", cfg.RedisPrefix, "redis key prefix")
	f.StringVar(&brandURL, "brand-url", cfg.BrandCatalogURL, "brand catalog url template with {page}")
	f.StringVar(&partURL, "part-url", cfg.PartCatalogURL, "part catalog url template with {page}")
	f.Float64Var(&rps, "rps", cfg.CrawlRPS, "requests per second, 0 for no limit")
	f.IntVar(&maxPages, "max-pages", 0, "stop after this many pages per catalog, 0 for all")
	return cmd
}

// crawler: то, что умеет reference.Crawler; в тестах подменяется.
type crawler interface {
	Crawl(ctx context.Context) (reference.Snapshot, error)
}

func refresh(ctx context.Context, c crawler, st reference.Store) error {
	snap, err := c.Crawl(ctx)
	if err != nil {
		return fmt.Errorf("crawl: %w", err)
	}
	if err := st.Save(ctx, snap); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}
