package routes

import (
	"gutly/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(router *gin.Engine, auth gin.HandlerFunc, authController *controllers.AuthController, preferencesController *controllers.PreferencesController) {
	router.GET("/auth/me", auth, authController.Me)

	prefRoutes := router.Group("/preferences", auth)
	{
		prefRoutes.GET("", preferencesController.GetPreferences)
		prefRoutes.PUT("", preferencesController.UpdatePreferences)
	}
}
