package routes

import (
	"gutly/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterAnalyzeRoutes(router *gin.Engine, auth gin.HandlerFunc, analyzeController *controllers.AnalyzeController) {
	router.POST("/analyze", auth, analyzeController.Analyze)
}
