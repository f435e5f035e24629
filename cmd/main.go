package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gutly/database"
	"gutly/docs"
	"gutly/internal/analysis"
	"gutly/internal/auth"
	"gutly/internal/cache"
	"gutly/internal/config"
	"gutly/internal/controllers"
	"gutly/internal/logging"
	"gutly/internal/middleware"
	"gutly/internal/openai"
	"gutly/internal/repository"
	"gutly/internal/services"
	"gutly/internal/storage"
	"gutly/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	docs.SwaggerInfo.Title = "Gutly API"
	docs.SwaggerInfo.Description = "Meal photo gut/mind wellness scoring for Whop apps."
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The database is optional: without it the API still analyzes photos and
	// reports an empty history.
	db, err := database.Connect(cfg.Database, cfg.Server.Environment, logger)
	switch {
	case errors.Is(err, database.ErrNotConfigured):
		logger.Warn("database not configured, meal history is disabled")
	case err != nil:
		logger.Fatal("failed to connect to database", zap.Error(err))
	default:
		if err := database.Migrate(ctx, db, logger); err != nil {
			logger.Fatal("failed to run database migrations", zap.Error(err))
		}
		database.MonitorConnections(ctx, db, 30*time.Second, logger)
	}

	var insightsCache *cache.InsightsCache
	if cfg.Redis.URL != "" {
		insightsCache, err = cache.NewInsightsCache(ctx, cfg.Redis.URL, cfg.Redis.InsightsTTL)
		if err != nil {
			logger.Warn("redis unavailable, insights will not be cached", zap.Error(err))
			insightsCache = nil
		}
		defer insightsCache.Close()
	}

	var images storage.ImageStore
	if store, err := storage.NewS3ImageStore(ctx, cfg.Storage); err != nil {
		logger.Warn("image storage unavailable, storing data URIs", zap.Error(err))
	} else if store != nil {
		images = store
	}

	verifier, err := auth.NewWhopVerifier(cfg.Whop, cfg.Server.Environment, logger)
	if err != nil {
		logger.Fatal("failed to configure whop auth", zap.Error(err))
	}

	openaiClient := openai.NewClient(cfg.OpenAI, analysis.SystemPrompt(), analysis.UserPrompt())
	debug := cfg.ShowErrorDetails()

	c := buildControllers(db, insightsCache, images, openaiClient, cfg, logger, debug)
	router := routes.NewRouter(middleware.AuthMiddleware(verifier, logger), c, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// scoring calls can take a while
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("environment", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
}

func buildControllers(
	db *gorm.DB,
	insightsCache *cache.InsightsCache,
	images storage.ImageStore,
	openaiClient *openai.Client,
	cfg *config.Config,
	logger *zap.Logger,
	debug bool,
) routes.Controllers {
	c := routes.Controllers{
		Analyze:  controllers.NewAnalyzeController(openaiClient, analysis.NewNormalizer(logger), logger, debug),
		Auth:     controllers.NewAuthController(auth.NewUsersClient(cfg.Whop), logger),
		Health:   controllers.NewHealthController(db, insightsCache, version),
		Insights: controllers.NewInsightsController(nil),
	}

	if db == nil {
		c.Meal = controllers.NewMealController(nil, nil, logger, debug)
		c.Dashboard = controllers.NewDashboardController(nil, cfg.Location(), logger, debug)
		c.Preferences = controllers.NewPreferencesController(nil, logger, debug)
		return c
	}

	mealRepo := repository.NewMealRepository(db)
	writer := services.NewMealWriter(mealRepo, images, insightsCache, logger)
	insights := services.NewInsightsService(mealRepo, openaiClient, insightsCache, logger)

	c.Meal = controllers.NewMealController(mealRepo, writer, logger, debug)
	c.Dashboard = controllers.NewDashboardController(mealRepo, cfg.Location(), logger, debug)
	c.Preferences = controllers.NewPreferencesController(repository.NewUserPreferencesRepository(db), logger, debug)
	c.Insights = controllers.NewInsightsController(insights)
	return c
}
