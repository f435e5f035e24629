package routes

import (
	"gutly/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterInsightsRoutes(router *gin.Engine, auth gin.HandlerFunc, insightsController *controllers.InsightsController, dashboardController *controllers.DashboardController) {
	router.POST("/insights", auth, insightsController.GenerateInsights)
	router.GET("/dashboard", auth, dashboardController.GetDashboard)
}
