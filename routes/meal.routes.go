package routes

import (
	"gutly/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterMealRoutes(router *gin.Engine, auth gin.HandlerFunc, mealController *controllers.MealController) {
	mealRoutes := router.Group("/meals", auth)
	{
		mealRoutes.GET("", mealController.GetMeals)
		mealRoutes.POST("/save", mealController.SaveMeal)
		mealRoutes.GET("/:id", mealController.GetMeal)
		mealRoutes.DELETE("", mealController.DeleteMeal)
	}
}
