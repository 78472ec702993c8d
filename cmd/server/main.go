package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/greenstep-az/ecorewards-backend/internal/config"
	"github.com/greenstep-az/ecorewards-backend/internal/db"
	httpHandlers "github.com/greenstep-az/ecorewards-backend/internal/http/handlers"
	httpRouter "github.com/greenstep-az/ecorewards-backend/internal/http/router"
	"github.com/greenstep-az/ecorewards-backend/internal/logger"
	"github.com/greenstep-az/ecorewards-backend/internal/ocr"
	"github.com/greenstep-az/ecorewards-backend/internal/repository"
	"github.com/greenstep-az/ecorewards-backend/internal/service"
	"github.com/greenstep-az/ecorewards-backend/internal/storage"
	"github.com/greenstep-az/ecorewards-backend/internal/ws"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: config load failed: %v", err)
	}

	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}

	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: database connection failed: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: migrations failed: %v", err)
	}

	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)

	receiptStorage, err := storage.NewReceiptStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: media storage setup failed: %v", err)
	}

	// Repositories.
	receiptRepo := repository.NewReceiptRepository(dbConn)
	withdrawalRepo := repository.NewWithdrawalRepository(dbConn)
	vendorRepo := repository.NewVendorRepository(dbConn)
	donationRepo := repository.NewDonationRepository(dbConn)
	fundRepo := repository.NewFundRepository(dbConn)
	adminRepo := repository.NewAdminRepository(dbConn)

	// Services.
	receiptService := service.NewReceiptService(receiptRepo, cfg.EnforceForwardOnlyTransitions)
	rewardsService := service.NewRewardsService(receiptRepo, withdrawalRepo, cfg.MinWithdrawalPoints, cfg.EnforceForwardOnlyTransitions)
	authService := service.NewAuthService(adminRepo, tokenManager)
	seedService := service.NewSeedService(vendorRepo, receiptRepo, donationRepo, fundRepo)

	var analyzer *ocr.Analyzer
	if cfg.OpenAIAPIKey != "" {
		analyzer = ocr.NewAnalyzer(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	}

	// Live admin feed.
	hub := ws.NewHub()
	go hub.Run()
	receiptService.SetHub(hub)
	rewardsService.SetHub(hub)

	// HTTP handlers.
	receiptHandler := httpHandlers.NewReceiptHandler(receiptService, vendorRepo, analyzer)
	rewardsHandler := httpHandlers.NewRewardsHandler(rewardsService)
	withdrawalHandler := httpHandlers.NewWithdrawalHandler(rewardsService)
	vendorHandler := httpHandlers.NewVendorHandler(vendorRepo)
	donationHandler := httpHandlers.NewDonationHandler(donationRepo)
	fundHandler := httpHandlers.NewFundHandler(donationRepo, fundRepo)
	authHandler := httpHandlers.NewAuthHandler(authService, adminRepo)
	adminHandler := httpHandlers.NewAdminHandler(receiptService, rewardsService, vendorRepo, fundRepo)
	mediaHandler := httpHandlers.NewMediaHandler(receiptStorage)
	wsHandler := httpHandlers.NewWSHandler(hub, tokenManager)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)
	seedHandler := httpHandlers.NewSeedHandler(seedService)

	engine := httpRouter.SetupRouter(
		cfg,
		receiptHandler,
		rewardsHandler,
		withdrawalHandler,
		vendorHandler,
		donationHandler,
		fundHandler,
		authHandler,
		adminHandler,
		mediaHandler,
		wsHandler,
		healthHandler,
		seedHandler,
		tokenManager,
	)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: http server shutdown error: %v", err)
		}
	}()

	log.Printf("main: HTTP server listening on port %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: server exited with error: %v", err)
	}
}

func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: database close error: %v", err)
	}
}
