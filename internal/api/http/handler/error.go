package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/xcard-server/internal/model"
)

const (
	msgUserNotFound   = "User not found"
	msgInternal       = "Internal server error"
	msgInvalidRequest = "Invalid request body"
)

// writeError maps service errors to HTTP status codes with an {error} body.
func writeError(c *gin.Context, err error) {
	var verr *model.ValidationError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, model.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": model.ErrInvalidToken.Error()})
	case errors.Is(err, model.ErrImageTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": model.ErrImageTooLarge.Error()})
	case errors.Is(err, model.ErrInvalidImage):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": model.ErrInvalidImage.Error()})
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgUserNotFound})
	case errors.Is(err, model.ErrSourceUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": model.ErrSourceUnavailable.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
	}
}
