package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CacheStatus interface {
	Status(ctx context.Context) map[string]any
}

type HealthController struct {
	db      *gorm.DB
	cache   CacheStatus
	version string
}

// NewHealthController accepts a nil db when no database is configured.
func NewHealthController(db *gorm.DB, cache CacheStatus, version string) *HealthController {
	return &HealthController{db: db, cache: cache, version: version}
}

// Root godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (hc *HealthController) Root(c *gin.Context) {
	database := "not configured"
	if hc.db != nil {
		database = "PostgreSQL"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Gutly API is running",
		"version":  hc.version,
		"status":   "healthy",
		"database": database,
	})
}

// DebugDatabase godoc
// @Summary Database and cache connectivity
// @Tags health
// @Produce json
// @Security WhopUserToken
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /debug/database [get]
func (hc *HealthController) DebugDatabase(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	body := gin.H{"database": gin.H{"configured": hc.db != nil}}
	if hc.cache != nil {
		body["cache"] = hc.cache.Status(ctx)
	}
	if hc.db == nil {
		c.JSON(http.StatusOK, body)
		return
	}

	sqlDB, err := hc.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		body["database"] = gin.H{"configured": true, "connected": false, "error": err.Error()}
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}

	stats := sqlDB.Stats()
	body["database"] = gin.H{
		"configured":       true,
		"connected":        true,
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
	}
	c.JSON(http.StatusOK, body)
}
