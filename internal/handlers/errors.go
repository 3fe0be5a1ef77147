package handlers

import (
	"errors"
	"log"
	"net/http"

	"golang-storefront/internal/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrOrderNotCancellable):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		log.Printf("Error handling %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
