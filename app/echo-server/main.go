package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"policyAdvisor/app/echo-server/router"
	"policyAdvisor/business/cart"
	"policyAdvisor/business/customer"
	"policyAdvisor/business/dashboard"
	"policyAdvisor/business/policy"
	"policyAdvisor/business/promotion"
	"policyAdvisor/business/recommend"
	"policyAdvisor/business/tracking"
	"policyAdvisor/internal/middleware"
	"policyAdvisor/internal/repository/notification"
	psqlRepo "policyAdvisor/internal/repository/postgres"
	redisRepo "policyAdvisor/internal/repository/redis"
	"policyAdvisor/internal/rest"
	"policyAdvisor/internal/scorer"
	"policyAdvisor/pkg/config"
	"policyAdvisor/pkg/database"
	redisdb "policyAdvisor/pkg/database/redis"
	"policyAdvisor/pkg/logger"
	"policyAdvisor/pkg/metrics"
	"policyAdvisor/pkg/utils"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting PolicyAdvisor", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}
	defer redisdb.CloseRedisClient(redisClient)

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init repo
	policyRepo := psqlRepo.NewPolicyRepository(db)
	customerRepo := psqlRepo.NewCustomerRepository(db)
	interactionRepo := psqlRepo.NewInteractionRepository(db)
	promotionRepo := psqlRepo.NewPromotionRepository(db)
	trackingRepo := psqlRepo.NewTrackingRepository(db)
	cartRepo := redisRepo.NewCartRepository(redisClient)

	// Init scorer
	relevanceScorer, err := buildScorer(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize scorer", "error", err)
	}

	// Init service
	promotionService := promotion.NewService(promotionRepo, policyRepo)
	corpusLoader := recommend.NewRepositoryCorpusLoader(customerRepo, policyRepo, interactionRepo)
	recommendService := recommend.NewService(
		customerRepo,
		interactionRepo,
		promotionService,
		corpusLoader,
		relevanceScorer,
		trackingRepo,
	)
	policyService := policy.NewService(policyRepo)
	customerService := customer.NewService(customerRepo)
	trackingService := tracking.NewService(trackingRepo)
	cartService := cart.NewService(cartRepo, policyRepo, customerRepo, interactionRepo, mailjetEmail, cfg.App.FrontendURL)
	dashboardService := dashboard.NewService(policyRepo, customerRepo, interactionRepo)

	// Fit transforms against the full corpus before serving anything
	warmupCtx, warmupCancel := context.WithTimeout(context.Background(), 60*time.Second)
	if err := recommendService.Warmup(warmupCtx); err != nil {
		warmupCancel()
		logger.Fatal("Failed to warm up recommendation snapshot", "error", err)
	}
	warmupCancel()

	// The local artifact must match the fitted transform widths; failing
	// here beats serving garbage scores later.
	if artifactScorer, ok := relevanceScorer.(*scorer.ArtifactScorer); ok {
		snap := recommendService.CurrentSnapshot()
		err := artifactScorer.ValidateDims(
			snap.Transforms.Customer.Dim(),
			snap.Transforms.Interaction.Dim(),
			snap.Transforms.Policy.Dim(),
		)
		if err != nil {
			logger.Fatal("Model artifact does not match fitted transforms", "error", err)
		}
	}

	// Init handler
	authHandler := rest.NewAuthHandler(cfg.JWT.AdminUsername, cfg.JWT.AdminPasswordHash)
	recommendationHandler := rest.NewRecommendationHandler(recommendService)
	policyHandler := rest.NewPolicyHandler(policyService)
	customerHandler := rest.NewCustomerHandler(customerService)
	promotionHandler := rest.NewPromotionHandler(promotionService)
	trackingHandler := rest.NewTrackingHandler(trackingService)
	cartHandler := rest.NewCartHandler(cartService)
	dashboardHandler := rest.NewDashboardHandler(dashboardService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceMiddleware())
	e.Use(metrics.Middleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{cfg.App.FrontendURL, "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddleware()
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupAuthRoutes(api, authHandler)
	router.SetupRecommendationRoutes(api, recommendationHandler)
	router.SetupPolicyRoutes(api, policyHandler, authRequired, adminOnly)
	router.SetupCustomerRoutes(api, customerHandler, authRequired, adminOnly)
	router.SetupPromotionRoutes(api, promotionHandler, authRequired, adminOnly)
	router.SetupTrackingRoutes(api, trackingHandler, authRequired, adminOnly)
	router.SetupCartRoutes(api, cartHandler)
	router.SetupDashboardRoutes(api, dashboardHandler)

	// Abandoned cart sweep
	reminderCtx, reminderCancel := context.WithCancel(context.Background())
	defer reminderCancel()
	go cartService.RunReminderLoop(reminderCtx, cfg.Cart.CheckInterval, cfg.Cart.AbandonedAfter)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	reminderCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}

func buildScorer(cfg *config.Config) (recommend.Scorer, error) {
	switch cfg.Scorer.Mode {
	case "remote":
		logger.Info("Using remote scorer", "url", cfg.Scorer.RemoteURL)
		return scorer.NewRemoteScorer(scorer.RemoteConfig{
			BaseURL: cfg.Scorer.RemoteURL,
			Timeout: cfg.Scorer.Timeout,
		}), nil
	default:
		logger.Info("Using artifact scorer", "path", cfg.Scorer.ArtifactPath)
		return scorer.NewArtifactScorer(cfg.Scorer.ArtifactPath)
	}
}
