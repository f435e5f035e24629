package controllers

import (
	"github.com/gin-gonic/gin"
)

// respondError writes the shared error shape. details carries the raw error
// only when debug is on.
func respondError(c *gin.Context, status int, message string, err error, debug bool) {
	body := gin.H{
		"status": "error",
		"error":  message,
	}
	if debug && err != nil {
		body["details"] = err.Error()
	}
	c.JSON(status, body)
}

// respondUpstreamError is for failures whose message the caller is meant to
// read, such as a provider rejection or a store error. details is always set.
func respondUpstreamError(c *gin.Context, status int, message string, err error) {
	respondError(c, status, message, err, true)
}
