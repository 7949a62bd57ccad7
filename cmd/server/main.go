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

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/gift-exchange/internal/config"
	"github.com/DoyleJ11/gift-exchange/internal/exchange"
	"github.com/DoyleJ11/gift-exchange/internal/httpapi"
	"github.com/DoyleJ11/gift-exchange/internal/i18n"
	"github.com/DoyleJ11/gift-exchange/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := cfg.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	bundle, err := i18n.Load()
	if err != nil {
		return fmt.Errorf("failed to load translations: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The store outlives the signal so in-flight requests can finish during Shutdown.
	store := session.NewStore(context.Background(), cfg.SessionTTL, cfg.SweepInterval)

	// Build the router *with* the store injected
	handler := httpapi.SetupRoutes(&httpapi.API{
		Log:             log,
		Engine:          exchange.NewEngine(cfg.MaxAttempts),
		Store:           store,
		Bundle:          bundle,
		BaseURL:         cfg.BaseURL,
		MaxParticipants: cfg.MaxParticipants,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", srv.Addr), zap.String("base_url", cfg.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		store.Inbox() <- session.ShutdownStore{}
		return err
	})

	return g.Wait()
}
