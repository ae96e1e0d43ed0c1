package handler

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/xcard-server/internal/logger"
)

// CardImageService stores rendered card images per username.
type CardImageService interface {
	Upload(ctx context.Context, token, username string, r io.Reader) error
	Download(ctx context.Context, username string) (io.ReadCloser, error)
	Delete(ctx context.Context, token, username string) error
}

type CardImage struct {
	cardImageService CardImageService
	logger           *logger.Logger
}

func NewCardImage(cardImageService CardImageService, logger *logger.Logger) *CardImage {
	return &CardImage{
		cardImageService: cardImageService,
		logger:           logger,
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(c *gin.Context) (string, bool) {
	scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}

// Upload handles PUT /api/cards/:username/image with a raw PNG body.
func (h *CardImage) Upload(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Card token is required"})
		return
	}
	username := c.Param("username")

	if err := h.cardImageService.Upload(c.Request.Context(), token, username, c.Request.Body); err != nil {
		h.logger.Warn("Card image handler: upload failed", "username", username, "error", err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CardImage) Download(c *gin.Context) {
	username := c.Param("username")

	rc, err := h.cardImageService.Download(c.Request.Context(), username)
	if err != nil {
		writeError(c, err)
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, -1, "image/png", rc, nil)
}

func (h *CardImage) Delete(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Card token is required"})
		return
	}
	username := c.Param("username")

	if err := h.cardImageService.Delete(c.Request.Context(), token, username); err != nil {
		h.logger.Warn("Card image handler: delete failed", "username", username, "error", err)
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
