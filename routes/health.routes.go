package routes

import (
	"gutly/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterHealthRoutes(router *gin.Engine, auth gin.HandlerFunc, healthController *controllers.HealthController) {
	router.GET("/", healthController.Root)
	router.GET("/debug/database", auth, healthController.DebugDatabase)
}
