package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bharath-kadali/expenseTracker/internal/application/service"
	"github.com/bharath-kadali/expenseTracker/internal/infrastructure/api"
	"github.com/bharath-kadali/expenseTracker/internal/infrastructure/cache"
	"github.com/bharath-kadali/expenseTracker/internal/infrastructure/config"
	"github.com/bharath-kadali/expenseTracker/internal/infrastructure/db"
	"github.com/bharath-kadali/expenseTracker/internal/infrastructure/handler"
	"github.com/bharath-kadali/expenseTracker/internal/infrastructure/logger"
	"github.com/bharath-kadali/expenseTracker/internal/infrastructure/metrics"
	"github.com/bharath-kadali/expenseTracker/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Invalid configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log := logger.NewJSONLogger(os.Stdout, logger.ParseLevel(cfg.LogLevel))
	logger.SetDefaultLogger(log)

	log.Info("Starting expense tracker", map[string]interface{}{
		"port":             cfg.Port,
		"data_dir":         cfg.DataDir,
		"default_currency": cfg.DefaultCurrency,
		"rates_freshness":  cfg.RatesFreshness.String(),
	})

	if cfg.RatesAppID == "" {
		log.Warn("RATES_APP_ID is not set; conversions will pass amounts through unchanged", nil)
	}

	// Setup BadgerDB
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatal("Failed to create database directory", map[string]interface{}{
			"error": err.Error(),
		})
	}

	badgerDB, err := db.OpenBadger(cfg.DataDir)
	if err != nil {
		log.Fatal("Failed to open database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	defer func() {
		if err := badgerDB.Close(); err != nil {
			log.Error("Error closing BadgerDB", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	// Initialize repositories
	expenseRepo := db.NewBadgerExpenseRepository(badgerDB)
	preferenceRepo := db.NewBadgerPreferenceRepository(badgerDB)
	snapshotRepo := db.NewBadgerRateSnapshotRepository(badgerDB)

	// Initialize the rate provider and cache
	provider := api.NewOpenExchangeRatesClient(api.ClientConfig{
		BaseURL:     cfg.RatesAPIURL,
		AppID:       cfg.RatesAppID,
		Timeout:     cfg.RatesHTTPTimeout,
		MaxRetries:  cfg.RatesMaxRetries,
		BackoffUnit: cfg.RatesRetryBackoff,
	}, nil, log.WithField("component", "rates_api"))
	rateCache := cache.NewRateCache(snapshotRepo, provider, cfg.RatesFreshness, log)

	// Initialize services
	conversionService := service.NewConversionService(rateCache, log)
	expenseService := service.NewExpenseService(expenseRepo, preferenceRepo, conversionService, cfg.DefaultCurrency, log)
	summaryService := service.NewSummaryService(expenseService)

	// Initialize handlers
	expenseHandler := handler.NewExpenseHandler(expenseService, log)
	conversionHandler := handler.NewConversionHandler(conversionService, summaryService, rateCache, log)

	// Setup router
	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.MetricsMiddleware)

	expenseHandler.RegisterRoutes(router)
	conversionHandler.RegisterRoutes(router)
	handler.RegisterHealthRoute(router, log)
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("Server listening", map[string]interface{}{
			"addr": server.Addr,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", map[string]interface{}{
				"error": err.Error(),
			})
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log.Info("Server stopped", nil)
}
