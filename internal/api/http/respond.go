package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devbridge-hq/devbridge-backend/internal/backends/domain"
)

// RespondError maps a backend error kind to an HTTP status and writes
// the failure body. Unclassified errors are reported as 500.
func RespondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrUpstream), errors.Is(err, domain.ErrInvalidResponse):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

// RespondBadRequest rejects invalid client input before any backend
// call is made.
func RespondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": message})
}
