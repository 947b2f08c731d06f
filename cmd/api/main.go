package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"educk/internal/auth"
	"educk/internal/config"
	"educk/internal/coupon"
	"educk/internal/database"
	"educk/internal/handler"
	"educk/internal/payment"
	"educk/internal/repository"
	"educk/internal/router"
	"educk/internal/service"

	"github.com/shopspring/decimal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Money is rendered as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting educk API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool, logger)
	courseRepo := repository.NewCourseRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Coupon table: S3 first when enabled, then the local file, then built-ins
	var s3Loader coupon.Loader
	if cfg.S3.Enabled {
		s3Loader, err = coupon.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		}
	} else {
		logger.Info().Msg("using local file system for coupon files (S3 disabled)")
	}
	couponLoader := coupon.NewFallbackLoader(s3Loader, coupon.NewFileLoader(logger), cfg.S3.Prefix, cfg.S3.Enabled, logger)

	coupons, err := coupon.NewRegistry(ctx, cfg.Coupon.File, couponLoader, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize coupon registry: %w", err)
	}

	payments := payment.NewSimulatedProcessor(logger)

	// Initialize services
	cartService := service.NewCartService(cartRepo, courseRepo, userRepo, coupons, logger)
	orderService := service.NewOrderService(orderRepo, cartRepo, courseRepo, userRepo, coupons, payments, logger)
	courseService := service.NewCourseService(courseRepo, userRepo, logger)

	mux := router.New(
		handler.NewCartHandler(cartService, orderService, logger),
		handler.NewOrderHandler(orderService, logger),
		handler.NewCourseHandler(courseService, logger),
		auth.NewManager(cfg.Auth),
		logger,
	)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
