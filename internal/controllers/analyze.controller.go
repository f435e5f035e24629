package controllers

import (
	"errors"
	"net/http"

	"gutly/internal/analysis"
	"gutly/internal/middleware"
	"gutly/internal/openai"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AnalyzeRequest struct {
	Image string `json:"image" example:"data:image/jpeg;base64,/9j/4AAQ..."`
}

type AnalyzeController struct {
	scorer     openai.MealScorer
	normalizer *analysis.Normalizer
	logger     *zap.Logger
	debug      bool
}

func NewAnalyzeController(scorer openai.MealScorer, normalizer *analysis.Normalizer, logger *zap.Logger, debug bool) *AnalyzeController {
	return &AnalyzeController{scorer: scorer, normalizer: normalizer, logger: logger, debug: debug}
}

// Analyze godoc
// @Summary Score a meal photo
// @Description Send a meal image to the vision model and return the normalized gut/mind analysis. Nothing is stored.
// @Tags analyze
// @Accept json
// @Produce json
// @Security WhopUserToken
// @Param request body AnalyzeRequest true "Meal image as a data URI"
// @Success 200 {object} models.MealAnalysis
// @Failure 400 {object} map[string]interface{} "No image provided"
// @Failure 401 {object} map[string]interface{} "Authentication required"
// @Failure 502 {object} map[string]interface{} "Model returned unusable output"
// @Failure 500 {object} map[string]interface{} "Analysis failed"
// @Router /analyze [post]
func (ac *AnalyzeController) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Image == "" {
		respondError(c, http.StatusBadRequest, "No image provided", err, ac.debug)
		return
	}

	raw, err := ac.scorer.ScoreMeal(c.Request.Context(), req.Image)
	if err != nil {
		ac.logger.Error("meal scoring failed", zap.String("user_id", middleware.UserID(c)), zap.Error(err))
		if errors.Is(err, openai.ErrMissingAPIKey) {
			respondError(c, http.StatusInternalServerError,
				"OpenAI API key is missing. Please add OPENAI_API_KEY to your environment.", err, ac.debug)
			return
		}
		respondUpstreamError(c, http.StatusInternalServerError, "Failed to analyze image", err)
		return
	}

	result, err := ac.normalizer.Normalize(raw)
	switch {
	case errors.Is(err, analysis.ErrInvalidModelOutput):
		respondError(c, http.StatusBadGateway, "The AI returned an invalid JSON response. Please try again.", err, ac.debug)
		return
	case errors.Is(err, analysis.ErrIncompleteModelOutput):
		respondError(c, http.StatusBadGateway, "The AI response is missing required fields. Please try again.", err, ac.debug)
		return
	case err != nil:
		respondError(c, http.StatusInternalServerError, "Failed to analyze image", err, ac.debug)
		return
	}

	c.JSON(http.StatusOK, result)
}
