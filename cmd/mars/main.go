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

	"github.com/mindsgn-studio/mission-to-mars/database"
	"github.com/mindsgn-studio/mission-to-mars/fetch"
	"github.com/mindsgn-studio/mission-to-mars/internal/config"
	"github.com/mindsgn-studio/mission-to-mars/internal/model"
	"github.com/mindsgn-studio/mission-to-mars/internal/service"
	"github.com/mindsgn-studio/mission-to-mars/scraper"
	"github.com/mindsgn-studio/mission-to-mars/web"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var debug bool

	root := &cobra.Command{
		Use:           "mars",
		Short:         "Scrape Mars news, images and facts and serve them as one page",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), debug)
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging (also DEBUG=true)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the snapshot page and the /scrape trigger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), debug)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "scrape",
		Short: "Scrape once, store the snapshot and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScrape(cmd.Context(), debug)
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "mars:", err)
		os.Exit(1)
	}
}

type app struct {
	cfg     model.Config
	logger  *zap.Logger
	service *service.Service
}

func setup(ctx context.Context, debug bool) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.Debug = cfg.Debug || debug

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	sel, err := scraper.LoadSelectors(cfg.SelectorsFile)
	if err != nil {
		return nil, err
	}

	store, err := database.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	s := scraper.New(
		fetch.NewFetcher(cfg.UserAgent, cfg.HTTPTimeout, logger.Named("fetch")),
		fetch.NewBrowser(cfg.Browser, logger.Named("browser")),
		sel,
		logger.Named("scraper"),
	)

	return &app{
		cfg:     cfg,
		logger:  logger,
		service: service.New(s, store, logger.Named("service")),
	}, nil
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.service.Close(ctx); err != nil {
		a.logger.Error("error closing store", zap.Error(err))
	}
	_ = a.logger.Sync()
}

func runServe(ctx context.Context, debug bool) error {
	a, err := setup(ctx, debug)
	if err != nil {
		return err
	}
	defer a.close()

	srv := &http.Server{
		Addr:              a.cfg.ListenAddr,
		Handler:           web.NewServer(a.service, a.logger.Named("web")),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runScrape(ctx context.Context, debug bool) error {
	a, err := setup(ctx, debug)
	if err != nil {
		return err
	}
	defer a.close()

	snap, err := a.service.Refresh(ctx)
	if err != nil {
		return err
	}
	if snap == nil {
		return errors.New("snapshot missing after refresh")
	}
	a.logger.Info("scraper finished",
		zap.String("news", snap.LatestNews.Title),
		zap.Int("facts", len(snap.Facts)),
		zap.Int("hemispheres", len(snap.Hemispheres)))
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
