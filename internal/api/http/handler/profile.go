package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/xcard-server/internal/logger"
	"github.com/dtroode/xcard-server/internal/model"
)

// ProfileService resolves display profiles from upstream sources.
type ProfileService interface {
	Resolve(ctx context.Context, username string) (model.ResolvedProfile, error)
	CredentialsConfigured() bool
}

type Profile struct {
	profileService ProfileService
	logger         *logger.Logger
}

func NewProfile(profileService ProfileService, logger *logger.Logger) *Profile {
	return &Profile{
		profileService: profileService,
		logger:         logger,
	}
}

func sourceMessage(source string) string {
	switch source {
	case "twitter":
		return "Profile fetched from Twitter"
	case "mock":
		return "Profile generated with mock data (OAuth configuration pending)"
	default:
		return "Profile resolved from " + source
	}
}

// Resolve handles POST /api/profile.
func (h *Profile) Resolve(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return
	}

	resolved, err := h.profileService.Resolve(c.Request.Context(), req.Username)
	if err != nil {
		h.logger.Warn("Profile handler: resolve failed", "username", req.Username, "error", err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": newProfileResponse(resolved.Profile),
		"source":  resolved.Source,
		"message": sourceMessage(resolved.Source),
	})
}

// OAuthStatus handles GET /api/oauth-status.
func (h *Profile) OAuthStatus(c *gin.Context) {
	configured := h.profileService.CredentialsConfigured()

	message := "Twitter OAuth is not configured"
	if configured {
		message = "Twitter OAuth is configured"
	}

	c.JSON(http.StatusOK, gin.H{
		"hasTwitterCredentials": configured,
		"message":               message,
	})
}
