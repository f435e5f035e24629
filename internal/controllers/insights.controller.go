package controllers

import (
	"context"
	"net/http"

	"gutly/internal/middleware"
	"gutly/internal/models"
	"gutly/internal/services"

	"github.com/gin-gonic/gin"
)

type InsightsGenerator interface {
	Generate(ctx context.Context, userID string) []models.Insight
}

// InsightsController always answers 200; generation failures degrade to the
// fallback card. service is nil when no database is configured.
type InsightsController struct {
	service InsightsGenerator
}

func NewInsightsController(service InsightsGenerator) *InsightsController {
	return &InsightsController{service: service}
}

// GenerateInsights godoc
// @Summary Personalized insights
// @Description 2-3 short insight cards generated from the caller's last 50 meals
// @Tags insights
// @Produce json
// @Security WhopUserToken
// @Success 200 {object} map[string]interface{} "insights"
// @Failure 401 {object} map[string]interface{} "Authentication required"
// @Router /insights [post]
func (ic *InsightsController) GenerateInsights(c *gin.Context) {
	if ic.service == nil {
		c.JSON(http.StatusOK, gin.H{"insights": services.FallbackInsights()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"insights": ic.service.Generate(c.Request.Context(), middleware.UserID(c))})
}
