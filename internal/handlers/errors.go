package handlers

import (
	"errors"
	"net/http"

	"cnc_simulator/internal/service"
	"cnc_simulator/internal/simulation"

	"github.com/gin-gonic/gin"
)

const (
	errInvalidBodyPref = "invalid body: "
	errNotReady        = "simulation engine not initialized"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, simulation.ErrNotInitialized):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// logAndJSONError logs err under logKey and writes {"error": userMsg}.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		if httpCode >= http.StatusInternalServerError {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondServiceError picks the status for err. Client errors carry the
// service message; server errors get the generic fallback.
func (h *Handler) respondServiceError(c *gin.Context, err error, fallback, logKey string, kv ...interface{}) {
	code := statusFor(err)
	msg := fallback
	switch code {
	case http.StatusBadRequest, http.StatusUnauthorized:
		msg = err.Error()
	case http.StatusServiceUnavailable:
		msg = errNotReady
	}
	h.logAndJSONError(c, code, msg, logKey, err, kv...)
}
