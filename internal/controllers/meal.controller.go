package controllers

import (
	"errors"
	"net/http"

	"gutly/internal/middleware"
	"gutly/internal/repository"
	"gutly/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	databaseNotConfiguredMessage = "Database not configured. Please set DATABASE_URL (or DB_HOST, DB_USER, DB_PASSWORD, DB_NAME) and restart the server."
	// historyLimit of zero returns the whole history.
	historyLimit = 0
)

// MealController serves meal history. repo and writer are nil when no
// database is configured.
type MealController struct {
	repo   repository.MealRepository
	writer *services.MealWriter
	logger *zap.Logger
	debug  bool
}

func NewMealController(repo repository.MealRepository, writer *services.MealWriter, logger *zap.Logger, debug bool) *MealController {
	return &MealController{repo: repo, writer: writer, logger: logger, debug: debug}
}

// SaveMeal godoc
// @Summary Save an analyzed meal
// @Description Store an analysis the user chose to keep. A second save of the same title within 5 minutes returns the existing meal id with 409.
// @Tags meals
// @Accept json
// @Produce json
// @Security WhopUserToken
// @Param meal body services.SaveMealRequest true "Analysis fields plus image_url"
// @Success 200 {object} map[string]interface{} "success, meal, id and an optional warning"
// @Failure 400 {object} map[string]interface{} "Title and image are required"
// @Failure 401 {object} map[string]interface{} "Authentication required"
// @Failure 409 {object} map[string]interface{} "Meal already saved recently"
// @Failure 500 {object} map[string]interface{} "Failed to save meal"
// @Router /meals/save [post]
func (mc *MealController) SaveMeal(c *gin.Context) {
	var req services.SaveMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request data", err, mc.debug)
		return
	}
	if mc.writer == nil {
		respondError(c, http.StatusInternalServerError, "Database not configured", nil, mc.debug)
		return
	}

	userID := middleware.UserID(c)
	res, err := mc.writer.Save(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			respondError(c, http.StatusBadRequest, "Title and image are required", err, mc.debug)
			return
		}
		mc.logger.Error("failed to save meal", zap.String("user_id", userID), zap.Error(err))
		respondUpstreamError(c, http.StatusInternalServerError, "Failed to save meal", err)
		return
	}

	if res.Outcome == services.OutcomeDuplicate {
		c.JSON(http.StatusConflict, gin.H{
			"status": "error",
			"error":  "This meal was already saved recently",
			"id":     res.Meal.ID,
		})
		return
	}

	body := gin.H{
		"success": true,
		"meal":    res.Meal,
		"id":      res.Meal.ID,
	}
	if res.Warning != "" {
		body["warning"] = res.Warning
	}
	c.JSON(http.StatusOK, body)
}

// GetMeals godoc
// @Summary List meals
// @Description All of the caller's meals, newest first
// @Tags meals
// @Produce json
// @Security WhopUserToken
// @Success 200 {object} map[string]interface{} "meals, plus a message when no database is configured"
// @Failure 401 {object} map[string]interface{} "Authentication required"
// @Failure 500 {object} map[string]interface{} "Failed to fetch meals"
// @Router /meals [get]
func (mc *MealController) GetMeals(c *gin.Context) {
	if mc.repo == nil {
		mc.logger.Warn("database not configured, returning empty meals array")
		c.JSON(http.StatusOK, gin.H{
			"meals":   []any{},
			"message": databaseNotConfiguredMessage,
		})
		return
	}

	meals, err := mc.repo.FindByUser(c.Request.Context(), middleware.UserID(c), historyLimit)
	if err != nil {
		mc.logger.Error("failed to fetch meals", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch meals", err, mc.debug)
		return
	}

	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// GetMeal godoc
// @Summary Get a meal
// @Tags meals
// @Produce json
// @Security WhopUserToken
// @Param id path string true "Meal ID (uuid)"
// @Success 200 {object} map[string]interface{} "meal"
// @Failure 400 {object} map[string]interface{} "Invalid meal ID"
// @Failure 404 {object} map[string]interface{} "Meal not found"
// @Router /meals/{id} [get]
func (mc *MealController) GetMeal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid meal ID", err, mc.debug)
		return
	}
	if mc.repo == nil {
		respondError(c, http.StatusNotFound, "Meal not found", nil, mc.debug)
		return
	}

	meal, err := mc.repo.FindByID(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		if errors.Is(err, repository.ErrMealNotFound) {
			respondError(c, http.StatusNotFound, "Meal not found", nil, mc.debug)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to fetch meal", err, mc.debug)
		return
	}

	c.JSON(http.StatusOK, gin.H{"meal": meal})
}

// DeleteMeal godoc
// @Summary Delete a meal
// @Description Owner-scoped delete. Unknown ids succeed without effect.
// @Tags meals
// @Produce json
// @Security WhopUserToken
// @Param id query string true "Meal ID (uuid)"
// @Success 200 {object} map[string]interface{} "success"
// @Failure 400 {object} map[string]interface{} "Meal ID is required"
// @Failure 500 {object} map[string]interface{} "Failed to delete meal"
// @Router /meals [delete]
func (mc *MealController) DeleteMeal(c *gin.Context) {
	raw := c.Query("id")
	if raw == "" {
		respondError(c, http.StatusBadRequest, "Meal ID is required", nil, mc.debug)
		return
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid meal ID", err, mc.debug)
		return
	}
	if mc.writer == nil {
		respondError(c, http.StatusInternalServerError, "Database not configured", nil, mc.debug)
		return
	}

	if err := mc.writer.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		mc.logger.Error("failed to delete meal", zap.String("meal_id", raw), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to delete meal", err, mc.debug)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
