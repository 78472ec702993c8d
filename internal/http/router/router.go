package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenstep-az/ecorewards-backend/internal/config"
	"github.com/greenstep-az/ecorewards-backend/internal/http/handlers"
	"github.com/greenstep-az/ecorewards-backend/internal/http/middleware"
	"github.com/greenstep-az/ecorewards-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	receiptHandler *handlers.ReceiptHandler,
	rewardsHandler *handlers.RewardsHandler,
	withdrawalHandler *handlers.WithdrawalHandler,
	vendorHandler *handlers.VendorHandler,
	donationHandler *handlers.DonationHandler,
	fundHandler *handlers.FundHandler,
	authHandler *handlers.AuthHandler,
	adminHandler *handlers.AdminHandler,
	mediaHandler *handlers.MediaHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	seedHandler *handlers.SeedHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)
	r.StaticFS("/media", http.Dir(cfg.MediaStoragePath))

	api := r.Group("/api")
	api.Use(middleware.VisitorIdentity(cfg.Env == "production"))

	if seedHandler != nil && cfg.Env == "development" {
		api.POST("/seed", seedHandler.Seed)
		api.GET("/seed", seedHandler.Seed)
	}

	// Visitor routes. Identity comes from the cookie, no login involved.
	submitRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)

	api.POST("/receipts", submitRateLimit, receiptHandler.Submit)
	api.GET("/receipts/my", receiptHandler.ListMine)
	api.POST("/receipts/ocr", submitRateLimit, receiptHandler.AnalyzeOCR)

	api.GET("/rewards", rewardsHandler.GetRewards)

	api.POST("/withdrawals", submitRateLimit, withdrawalHandler.Create)
	api.GET("/withdrawals", withdrawalHandler.ListMine)

	api.GET("/vendors", vendorHandler.ListApproved)
	api.POST("/vendors", submitRateLimit, vendorHandler.Register)

	api.POST("/donations", submitRateLimit, donationHandler.Create)
	api.GET("/donations/recent", donationHandler.ListRecent)

	api.GET("/fund/stats", fundHandler.GetStats)
	api.GET("/fund/allocations", fundHandler.ListAllocations)

	api.POST("/media/receipts", mediaHandler.UploadReceiptImage)

	// Admin authentication, rate limited against brute force.
	authRateLimit := middleware.RateLimitMiddleware(5, cfg.RateLimitPeriod)
	adminAuth := api.Group("/admin/auth")
	adminAuth.Use(authRateLimit)
	{
		adminAuth.POST("/login", authHandler.Login)
		adminAuth.POST("/setup", authHandler.Setup)
	}

	// The live feed authenticates via query token inside the handler.
	api.GET("/admin/ws", wsHandler.Handle)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(tokenManager))
	{
		admin.GET("/auth/session", authHandler.Session)

		admin.GET("/receipts", adminHandler.ListReceipts)
		admin.PATCH("/receipts/:id/status", middleware.UUIDValidator("id"), adminHandler.UpdateReceiptStatus)

		admin.GET("/withdrawals", adminHandler.ListWithdrawals)
		admin.PATCH("/withdrawals/:id/status", middleware.UUIDValidator("id"), adminHandler.UpdateWithdrawalStatus)

		admin.GET("/vendors", adminHandler.ListVendors)
		admin.PATCH("/vendors/:id/status", middleware.UUIDValidator("id"), adminHandler.UpdateVendorStatus)

		admin.POST("/fund/allocations", adminHandler.CreateAllocation)
	}

	return r
}
