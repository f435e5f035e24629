package controllers

import (
	"net/http"

	"gutly/internal/auth"
	"gutly/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthController struct {
	users  auth.UserLookup
	logger *zap.Logger
}

// NewAuthController takes the profile lookup used by Me. A nil lookup makes
// every Me call fail as unauthenticated.
func NewAuthController(users auth.UserLookup, logger *zap.Logger) *AuthController {
	return &AuthController{users: users, logger: logger}
}

// Me godoc
// @Summary Current user
// @Description Verified caller's Whop profile
// @Tags auth
// @Produce json
// @Security WhopUserToken
// @Success 200 {object} map[string]interface{} "authenticated, user {id, email, name, username}"
// @Failure 401 {object} map[string]interface{} "authenticated false, user null"
// @Router /auth/me [get]
func (ac *AuthController) Me(c *gin.Context) {
	userID := middleware.UserID(c)
	if ac.users == nil {
		ac.logger.Warn("whop user lookup not configured", zap.String("user_id", userID))
		c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false, "user": nil})
		return
	}

	user, err := ac.users.GetUser(c.Request.Context(), userID)
	if err != nil {
		ac.logger.Error("failed to get user", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false, "user": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user":          user,
	})
}
