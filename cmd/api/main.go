package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/slot_swapper/internal/app"
	"github.com/Freeeeeet/slot_swapper/internal/auth"
	"github.com/Freeeeeet/slot_swapper/internal/config"
	"github.com/Freeeeeet/slot_swapper/internal/controller/http/handler"
	"github.com/Freeeeeet/slot_swapper/internal/controller/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateAPI(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogLevel)
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("API stopped with error", zap.Error(err))
	}
	logger.Info("API stopped")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting slot swapper API",
		zap.String("environment", cfg.Environment),
		zap.String("storage", cfg.Database.Driver),
		zap.String("addr", cfg.HTTP.Addr))

	storage, err := app.OpenStorage(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer storage.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// nil *pgxpool.Pool в интерфейсе не равен nil, поэтому присваиваем только живой пул
	var db handler.Pinger
	if storage.DB != nil {
		db = storage.DB
	}

	engine := router.New(router.Deps{
		Slots:    storage.Slots,
		Exchange: storage.Exchange,
		DB:       db,
		Tokens:   auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL),
		Logger:   logger,
	})

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: engine,
	}

	scheduler := app.NewScheduler(storage.Exchange, cfg.LockAuditInterval, logger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		scheduler.Start(gctx)
		<-gctx.Done()
		scheduler.Stop()
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
