package controllers

import (
	"net/http"
	"time"

	"gutly/internal/metrics"
	"gutly/internal/middleware"
	"gutly/internal/models"
	"gutly/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type DashboardController struct {
	repo       repository.MealRepository
	defaultLoc *time.Location
	logger     *zap.Logger
	debug      bool
	now        func() time.Time
}

func NewDashboardController(repo repository.MealRepository, defaultLoc *time.Location, logger *zap.Logger, debug bool) *DashboardController {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &DashboardController{repo: repo, defaultLoc: defaultLoc, logger: logger, debug: debug, now: time.Now}
}

// GetDashboard godoc
// @Summary Daily dashboard
// @Description Per-day score averages with day-over-day trend, the current streak and the day's meals. Computed on every request.
// @Tags dashboard
// @Produce json
// @Security WhopUserToken
// @Param date query string false "Day to show (YYYY-MM-DD), defaults to today"
// @Param tz query string false "IANA time zone used to bucket meals into days"
// @Success 200 {object} map[string]interface{} "date, metrics, streak, meals"
// @Failure 400 {object} map[string]interface{} "Invalid date or time zone"
// @Failure 500 {object} map[string]interface{} "Failed to fetch meals"
// @Router /dashboard [get]
func (dc *DashboardController) GetDashboard(c *gin.Context) {
	loc := dc.defaultLoc
	if tz := c.Query("tz"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid time zone", err, dc.debug)
			return
		}
		loc = l
	}

	today := dc.now().In(loc)
	day := today
	if raw := c.Query("date"); raw != "" {
		d, err := time.ParseInLocation(dateLayout, raw, loc)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", err, dc.debug)
			return
		}
		day = d.Add(12 * time.Hour)
	}

	meals := []models.Meal{}
	if dc.repo != nil {
		var err error
		meals, err = dc.repo.FindByUser(c.Request.Context(), middleware.UserID(c), 0)
		if err != nil {
			dc.logger.Error("failed to fetch meals for dashboard", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "Failed to fetch meals", err, dc.debug)
			return
		}
	}

	dayMeals := metrics.MealsOn(meals, day, loc)
	if dayMeals == nil {
		dayMeals = []models.Meal{}
	}

	c.JSON(http.StatusOK, gin.H{
		"date":    metrics.DayKey(day, loc),
		"metrics": metrics.ComputeDaily(meals, day, loc),
		"streak":  metrics.Streak(meals, today, loc),
		"meals":   dayMeals,
	})
}
