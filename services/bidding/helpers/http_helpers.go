package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"bidexpert/internal/biddingerrors"
	"bidexpert/utils"

	"github.com/gin-gonic/gin"
)

const (
	// TenantHeader carries the tenant on every request
	TenantHeader = "X-Tenant-ID"
	// TenantKey is where the tenant middleware stores it on the gin context
	TenantKey = "tenant_id"

	retryAfterSeconds = "1"
)

// TenantFromRequest returns the tenant resolved by the middleware, falling back to the header
func TenantFromRequest(c *gin.Context) string {
	if v := c.GetString(TenantKey); v != "" {
		return v
	}
	return c.GetHeader(TenantHeader)
}

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, biddingerrors.ErrLotNotFound):
		return http.StatusNotFound, "lot not found"
	case errors.Is(err, biddingerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, biddingerrors.ErrNoBids):
		return http.StatusNotFound, "no bids found for lot"
	case errors.Is(err, biddingerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, biddingerrors.ErrNotHabilitated):
		return http.StatusForbidden, "user is not habilitated for this auction"
	case errors.Is(err, biddingerrors.ErrLotNotOpen):
		return http.StatusConflict, "lot is not open for bids"
	case errors.Is(err, biddingerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, biddingerrors.ErrInvalidFinalizationState):
		return http.StatusConflict, "lot cannot be finalized from its current state"
	case errors.Is(err, biddingerrors.ErrInvalidTransition):
		return http.StatusConflict, "invalid lot status transition"
	case errors.Is(err, biddingerrors.ErrConcurrencyConflict):
		return http.StatusConflict, "lot is busy, please retry"
	case errors.Is(err, biddingerrors.ErrPersistenceUnavailable):
		return http.StatusServiceUnavailable, "storage temporarily unavailable"
	case errors.Is(err, biddingerrors.ErrIncrementNotConfigured):
		return http.StatusInternalServerError, "bid increment not configured"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// RespondError writes err with its mapped status and logs it at warn level
func RespondError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, message := MapErrorToHTTP(err)
	if biddingerrors.IsRetryable(err) {
		c.Header("Retry-After", retryAfterSeconds)
	}
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)

	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["tenant_id"] = TenantFromRequest(c)
	fields["status"] = status
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": request failed", fields)
		return
	}
	utils.Warn(handlerName+": request failed", fields)
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
