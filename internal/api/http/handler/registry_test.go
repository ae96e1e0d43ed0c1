package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/xcard-server/internal/mocks"
	"github.com/dtroode/xcard-server/internal/model"
	"github.com/dtroode/xcard-server/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, e *gin.Engine, method, target, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var got map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	}
	return rec, got
}

func registryEngine(svc RegistryService) *gin.Engine {
	h := NewRegistry(svc, testutil.MakeNoopLogger())
	e := gin.New()
	e.POST("/api/users", h.Register)
	e.GET("/api/users", h.Get)
	e.GET("/api/stats", h.Stats)
	e.POST("/api/init-db", h.InitDB)
	e.GET("/api/test-db", h.TestDB)
	return e
}

func sampleCard() model.UserCard {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return model.UserCard{
		ID:          uuid.MustParse("5f0c7c9e-8a7f-4c53-9d0e-1b1f2a3c4d5e"),
		Username:    "alice",
		DisplayName: "Alice",
		UserNumber:  1,
		Followers:   testutil.Ptr(int64(42)),
		Verified:    true,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	svc := mocks.NewRegistryService(t)
	svc.On("RegisterOrUpdate", mock.Anything, model.Profile{
		Username:    "alice",
		DisplayName: "Alice",
		Followers:   testutil.Ptr(int64(42)),
		Verified:    testutil.Ptr(true),
	}).Return(model.Registration{UserNumber: 1, IsNewUser: true, Card: sampleCard(), CardToken: "tok"}, nil)

	rec, got := serve(t, registryEngine(svc), http.MethodPost, "/api/users",
		`{"username":"alice","displayName":"Alice","followers":42,"verified":true,"bio":null}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, got["success"])
	assert.Equal(t, float64(1), got["userNumber"])
	assert.Equal(t, true, got["isNewUser"])
	assert.Equal(t, "tok", got["cardToken"])

	user := got["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "5f0c7c9e-8a7f-4c53-9d0e-1b1f2a3c4d5e", user["id"])
	assert.Equal(t, float64(42), user["followers"])
	assert.Nil(t, user["bio"])
	assert.Equal(t, "2025-03-01T12:00:00Z", user["createdAt"])
}

func TestRegistry_Register_BadRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "missing display name", body: `{"username":"alice"}`, wantErr: "Username and displayName are required"},
		{name: "missing username", body: `{"displayName":"Alice"}`, wantErr: "Username and displayName are required"},
		{name: "malformed json", body: `{"username":`, wantErr: msgInvalidRequest},
		{name: "wrong type", body: `{"username":"a","displayName":"A","followers":"many"}`, wantErr: msgInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec, got := serve(t, registryEngine(mocks.NewRegistryService(t)), http.MethodPost, "/api/users", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantErr, got["error"])
		})
	}
}

func TestRegistry_Register_ServiceErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{
			name:     "validation",
			err:      model.NewValidationError("followers", "must not be negative"),
			wantCode: http.StatusBadRequest,
			wantErr:  "invalid followers: must not be negative",
		},
		{
			name:     "storage",
			err:      model.NewStorageError("create", errors.New("connection reset")),
			wantCode: http.StatusInternalServerError,
			wantErr:  msgInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := mocks.NewRegistryService(t)
			svc.On("RegisterOrUpdate", mock.Anything, mock.Anything).Return(model.Registration{}, tt.err)

			rec, got := serve(t, registryEngine(svc), http.MethodPost, "/api/users",
				`{"username":"alice","displayName":"Alice"}`, nil)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantErr, got["error"])
		})
	}
}

func TestRegistry_Get(t *testing.T) {
	t.Parallel()

	svc := mocks.NewRegistryService(t)
	svc.On("Lookup", mock.Anything, "alice").Return(sampleCard(), nil)
	svc.On("Lookup", mock.Anything, "ghost").Return(model.UserCard{}, model.ErrNotFound)
	svc.On("Lookup", mock.Anything, "broken").Return(model.UserCard{}, model.NewStorageError("lookup", errors.New("down")))
	e := registryEngine(svc)

	rec, got := serve(t, e, http.MethodGet, "/api/users?username=alice", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, got["success"])
	assert.Equal(t, float64(1), got["user"].(map[string]any)["userNumber"])

	rec, got = serve(t, e, http.MethodGet, "/api/users?username=ghost", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", got["error"])

	rec, got = serve(t, e, http.MethodGet, "/api/users?username=broken", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, msgInternal, got["error"])

	rec, got = serve(t, e, http.MethodGet, "/api/users", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username parameter is required", got["error"])
}

func TestRegistry_Stats(t *testing.T) {
	t.Parallel()

	svc := mocks.NewRegistryService(t)
	svc.On("Stats", mock.Anything).Return(model.Stats{
		TotalUsers:     2,
		CurrentCounter: 2,
		RecentUsers: []model.CardSummary{
			{Username: "bob", DisplayName: "Bob", UserNumber: 2, CreatedAt: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)},
			{Username: "alice", DisplayName: "Alice", UserNumber: 1, CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		},
	}, nil)

	rec, got := serve(t, registryEngine(svc), http.MethodGet, "/api/stats", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	stats := got["stats"].(map[string]any)
	assert.Equal(t, float64(2), stats["totalUsers"])
	assert.Equal(t, float64(2), stats["currentCounter"])
	recent := stats["recentUsers"].([]any)
	require.Len(t, recent, 2)
	assert.Equal(t, "bob", recent[0].(map[string]any)["username"])
}

func TestRegistry_Stats_EmptyRecentIsArray(t *testing.T) {
	t.Parallel()

	svc := mocks.NewRegistryService(t)
	svc.On("Stats", mock.Anything).Return(model.Stats{}, nil)

	rec, _ := serve(t, registryEngine(svc), http.MethodGet, "/api/stats", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"recentUsers":[]`)
}

func TestRegistry_InitDB(t *testing.T) {
	t.Parallel()

	svc := mocks.NewRegistryService(t)
	svc.On("InitStore", mock.Anything).Return(int64(7), nil).Once()
	svc.On("InitStore", mock.Anything).Return(int64(0), model.NewStorageError("init", errors.New("read-only"))).Once()
	e := registryEngine(svc)

	rec, got := serve(t, e, http.MethodPost, "/api/init-db", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, got["success"])
	assert.Equal(t, float64(7), got["counter"])
	assert.Equal(t, "Database schema created successfully", got["message"])

	rec, got = serve(t, e, http.MethodPost, "/api/init-db", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, false, got["success"])
	assert.Contains(t, got["error"], "read-only")
}

func TestRegistry_TestDB(t *testing.T) {
	t.Parallel()

	svc := mocks.NewRegistryService(t)
	svc.On("Health", mock.Anything).Return(int64(3), int64(3), nil).Once()
	svc.On("Health", mock.Anything).Return(int64(0), int64(0), model.NewStorageError("ping", errors.New("refused"))).Once()
	e := registryEngine(svc)

	rec, got := serve(t, e, http.MethodGet, "/api/test-db", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Database connection successful", got["message"])
	assert.Equal(t, float64(3), got["counter"])
	assert.Equal(t, float64(3), got["userCount"])
	assert.Equal(t, []any{"user_cards", "card_counter"}, got["tables"])

	rec, got = serve(t, e, http.MethodGet, "/api/test-db", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, false, got["success"])
}
