package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/xcard-server/internal/mocks"
	"github.com/dtroode/xcard-server/internal/model"
	"github.com/dtroode/xcard-server/internal/testutil"
)

func profileEngine(svc ProfileService) *gin.Engine {
	h := NewProfile(svc, testutil.MakeNoopLogger())
	e := gin.New()
	e.POST("/api/profile", h.Resolve)
	e.GET("/api/oauth-status", h.OAuthStatus)
	return e
}

func TestProfile_Resolve(t *testing.T) {
	t.Parallel()

	svc := mocks.NewProfileService(t)
	svc.On("Resolve", mock.Anything, "alice").Return(model.ResolvedProfile{
		Profile: testutil.MakeProfile("alice"),
		Source:  "mock",
		Attempts: []model.SourceAttempt{
			{Source: "twitter", Err: model.ErrSourceUnavailable},
		},
	}, nil)

	rec, got := serve(t, profileEngine(svc), http.MethodPost, "/api/profile", `{"username":"alice"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mock", got["source"])
	assert.Equal(t, "Profile generated with mock data (OAuth configuration pending)", got["message"])

	profile := got["profile"].(map[string]any)
	assert.Equal(t, "alice", profile["username"])
	assert.Equal(t, "Seoul, Korea", profile["location"])
	assert.Equal(t, float64(10), profile["followers"])
}

func TestProfile_Resolve_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "empty username", err: model.NewValidationError("username", "must not be empty"), wantCode: http.StatusBadRequest},
		{name: "unknown user", err: fmt.Errorf("failed: %w", errors.Join(model.ErrNotFound)), wantCode: http.StatusNotFound},
		{name: "no sources", err: fmt.Errorf("%w: no profile sources configured", model.ErrSourceUnavailable), wantCode: http.StatusServiceUnavailable},
		{name: "upstream failure", err: errors.New("twitter: status 500"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := mocks.NewProfileService(t)
			svc.On("Resolve", mock.Anything, "alice").Return(model.ResolvedProfile{}, tt.err)

			rec, got := serve(t, profileEngine(svc), http.MethodPost, "/api/profile", `{"username":"alice"}`, nil)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.NotEmpty(t, got["error"])
		})
	}
}

func TestProfile_Resolve_MalformedBody(t *testing.T) {
	t.Parallel()

	rec, got := serve(t, profileEngine(mocks.NewProfileService(t)), http.MethodPost, "/api/profile", `[]`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgInvalidRequest, got["error"])
}

func TestProfile_OAuthStatus(t *testing.T) {
	t.Parallel()

	for _, configured := range []bool{true, false} {
		t.Run(fmt.Sprintf("configured=%v", configured), func(t *testing.T) {
			t.Parallel()

			svc := mocks.NewProfileService(t)
			svc.On("CredentialsConfigured").Return(configured)

			rec, got := serve(t, profileEngine(svc), http.MethodGet, "/api/oauth-status", "", nil)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, configured, got["hasTwitterCredentials"])
			if configured {
				assert.Equal(t, "Twitter OAuth is configured", got["message"])
			} else {
				assert.Equal(t, "Twitter OAuth is not configured", got["message"])
			}
		})
	}
}

func TestSourceMessage(t *testing.T) {
	assert.Equal(t, "Profile fetched from Twitter", sourceMessage("twitter"))
	assert.Equal(t, "Profile resolved from cache", sourceMessage("cache"))
}
