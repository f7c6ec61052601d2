package server

import (
	"bidexpert/services/bidding/helpers"
	"bidexpert/utils"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

var errMissingTenant = errors.New("missing " + helpers.TenantHeader + " header")

// RequestIDMiddleware propagates the caller's request ID or assigns a new one
func RequestIDMiddleware(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(utils.RequestIDKey, id)
	c.Header(requestIDHeader, id)
	c.Next()
}

// TenantMiddleware rejects requests that do not name a tenant
func TenantMiddleware(c *gin.Context) {
	tenantID := c.GetHeader(helpers.TenantHeader)
	if tenantID == "" {
		utils.JSONError(c, http.StatusBadRequest, errMissingTenant, "tenant is required")
		c.Abort()
		return
	}
	c.Set(helpers.TenantKey, tenantID)
	c.Next()
}

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     c.Writer.Status(),
		"latency":    time.Since(start).String(),
		"tenant_id":  c.GetString(helpers.TenantKey),
		"request_id": c.GetString(utils.RequestIDKey),
	})
}
