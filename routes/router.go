package routes

import (
	"gutly/internal/controllers"
	"gutly/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Controllers struct {
	Analyze     *controllers.AnalyzeController
	Meal        *controllers.MealController
	Insights    *controllers.InsightsController
	Dashboard   *controllers.DashboardController
	Auth        *controllers.AuthController
	Preferences *controllers.PreferencesController
	Health      *controllers.HealthController
}

// NewRouter registers every route. auth guards everything except the health
// check and the API docs.
func NewRouter(auth gin.HandlerFunc, c Controllers, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger))

	RegisterHealthRoutes(router, auth, c.Health)
	RegisterSwaggerRoutes(router)
	RegisterAnalyzeRoutes(router, auth, c.Analyze)
	RegisterMealRoutes(router, auth, c.Meal)
	RegisterInsightsRoutes(router, auth, c.Insights, c.Dashboard)
	RegisterUserRoutes(router, auth, c.Auth, c.Preferences)

	return router
}
