package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/xcard-server/internal/logger"
	"github.com/dtroode/xcard-server/internal/model"
)

var storeTables = []string{"user_cards", "card_counter"}

// RegistryService defines the registry operations exposed over HTTP.
type RegistryService interface {
	RegisterOrUpdate(ctx context.Context, profile model.Profile) (model.Registration, error)
	Lookup(ctx context.Context, username string) (model.UserCard, error)
	Stats(ctx context.Context) (model.Stats, error)
	InitStore(ctx context.Context) (int64, error)
	Health(ctx context.Context) (int64, int64, error)
}

// Registry handles /api/users and the store maintenance endpoints.
type Registry struct {
	registryService RegistryService
	logger          *logger.Logger
}

func NewRegistry(registryService RegistryService, logger *logger.Logger) *Registry {
	return &Registry{
		registryService: registryService,
		logger:          logger,
	}
}

// Register handles POST /api/users.
func (h *Registry) Register(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return
	}
	if req.Username == "" || req.DisplayName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and displayName are required"})
		return
	}

	reg, err := h.registryService.RegisterOrUpdate(c.Request.Context(), req.toModel())
	if err != nil {
		h.logger.Error("Registry handler: register failed", "username", req.Username, "error", err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, registerResponse{
		Success:    true,
		UserNumber: reg.UserNumber,
		IsNewUser:  reg.IsNewUser,
		User:       newUserResponse(reg.Card),
		CardToken:  reg.CardToken,
	})
}

// Get handles GET /api/users?username=.
func (h *Registry) Get(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username parameter is required"})
		return
	}

	card, err := h.registryService.Lookup(c.Request.Context(), username)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    newUserResponse(card),
	})
}

func (h *Registry) Stats(c *gin.Context) {
	stats, err := h.registryService.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("Registry handler: stats failed", "error", err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   newStatsResponse(stats),
	})
}

// InitDB handles POST /api/init-db.
func (h *Registry) InitDB(c *gin.Context) {
	counter, err := h.registryService.InitStore(c.Request.Context())
	if err != nil {
		h.logger.Error("Registry handler: init failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database schema created successfully",
		"counter": counter,
	})
}

// TestDB handles GET /api/test-db.
func (h *Registry) TestDB(c *gin.Context) {
	counter, users, err := h.registryService.Health(c.Request.Context())
	if err != nil {
		h.logger.Error("Registry handler: database check failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Database connection successful",
		"counter":   counter,
		"userCount": users,
		"tables":    storeTables,
	})
}
