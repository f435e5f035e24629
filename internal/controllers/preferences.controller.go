package controllers

import (
	"net/http"

	"gutly/internal/middleware"
	"gutly/internal/models"
	"gutly/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// UpdatePreferencesRequest changes only the fields that are present.
type UpdatePreferencesRequest struct {
	OnboardingCompleted *bool                     `json:"onboarding_completed,omitempty"`
	OnboardingAnswers   *models.OnboardingAnswers `json:"onboarding_answers,omitempty"`
	DismissTips         []string                  `json:"dismiss_tips,omitempty" example:"gut_mind_balance_info_seen"`
}

type PreferencesController struct {
	repo   repository.UserPreferencesRepository
	logger *zap.Logger
	debug  bool
}

func NewPreferencesController(repo repository.UserPreferencesRepository, logger *zap.Logger, debug bool) *PreferencesController {
	return &PreferencesController{repo: repo, logger: logger, debug: debug}
}

// GetPreferences godoc
// @Summary Get user preferences
// @Description Onboarding state and dismissed tips. Users without a stored row get defaults.
// @Tags preferences
// @Produce json
// @Security WhopUserToken
// @Success 200 {object} models.UserPreferences
// @Failure 500 {object} map[string]interface{} "Failed to fetch preferences"
// @Router /preferences [get]
func (pc *PreferencesController) GetPreferences(c *gin.Context) {
	prefs, err := pc.load(c)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch preferences", err, pc.debug)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences godoc
// @Summary Update user preferences
// @Tags preferences
// @Accept json
// @Produce json
// @Security WhopUserToken
// @Param preferences body UpdatePreferencesRequest true "Fields to change"
// @Success 200 {object} models.UserPreferences
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 500 {object} map[string]interface{} "Failed to update preferences"
// @Router /preferences [put]
func (pc *PreferencesController) UpdatePreferences(c *gin.Context) {
	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request data", err, pc.debug)
		return
	}
	if pc.repo == nil {
		respondError(c, http.StatusInternalServerError, "Database not configured", nil, pc.debug)
		return
	}

	prefs, err := pc.load(c)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to update preferences", err, pc.debug)
		return
	}

	if req.OnboardingCompleted != nil {
		prefs.OnboardingCompleted = *req.OnboardingCompleted
	}
	if req.OnboardingAnswers != nil {
		prefs.OnboardingAnswers = datatypes.NewJSONType(*req.OnboardingAnswers)
	}
	for _, tip := range req.DismissTips {
		if !prefs.HasDismissed(tip) {
			prefs.DismissedTips = append(prefs.DismissedTips, tip)
		}
	}

	if err := pc.repo.Upsert(c.Request.Context(), prefs); err != nil {
		pc.logger.Error("failed to save preferences", zap.String("user_id", prefs.WhopUserID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to update preferences", err, pc.debug)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (pc *PreferencesController) load(c *gin.Context) (*models.UserPreferences, error) {
	userID := middleware.UserID(c)
	if pc.repo == nil {
		return models.DefaultPreferences(userID), nil
	}
	prefs, err := pc.repo.FindByUser(c.Request.Context(), userID)
	if err != nil {
		return nil, err
	}
	if prefs == nil {
		return models.DefaultPreferences(userID), nil
	}
	return prefs, nil
}
