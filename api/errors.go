package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"skyjourney/internal/domain"
)

// respondError maps domain errors to HTTP statuses. Anything unrecognized is
// reported as a generic 500 without leaking the underlying error.
func respondError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid data", "errors": ve.Fields})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
	case errors.Is(err, domain.ErrInsufficientSeats):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Not enough seats available"})
	case errors.Is(err, domain.ErrAlreadyCancelled):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Booking is already cancelled"})
	case errors.Is(err, domain.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username already taken"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
	default:
		slog.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
