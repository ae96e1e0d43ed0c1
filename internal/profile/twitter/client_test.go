package twitter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/xcard-server/internal/model"
)

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2/users/by/username/alice", r.URL.Path)
		assert.Equal(t, userFields, r.URL.Query().Get("user.fields"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{
			"username":"alice","name":"Alice","description":"hi",
			"profile_image_url":"https://pbs.twimg.com/profile_images/1/a_normal.jpg",
			"verified":true,"location":"Seoul, Korea",
			"public_metrics":{"followers_count":42,"following_count":7}}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "tok", time.Second)
	p, err := c.Fetch(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, "Alice", p.DisplayName)
	assert.Equal(t, "hi", *p.Bio)
	assert.Equal(t, "https://pbs.twimg.com/profile_images/1/a_400x400.jpg", *p.ProfileImage)
	assert.Equal(t, int64(42), *p.Followers)
	assert.Equal(t, int64(7), *p.Following)
	assert.True(t, *p.Verified)
	assert.Equal(t, "Seoul, Korea", *p.Location)
	assert.Equal(t, "twitter", c.Name())
}

func TestClient_Fetch_NoToken(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "", time.Second)
	_, err := c.Fetch(context.Background(), "alice")
	require.ErrorIs(t, err, model.ErrSourceUnavailable)
}

func TestClient_Fetch_NotFound(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "status 404",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "missing data",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"errors":[{"title":"Not Found Error"}]}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewClient(srv.URL, "tok", time.Second).Fetch(context.Background(), "ghost")
			require.ErrorIs(t, err, model.ErrNotFound)
		})
	}
}

func TestClient_Fetch_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("rate limited"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "tok", time.Second).Fetch(context.Background(), "alice")
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrNotFound)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "rate limited")
}

func TestClient_Fetch_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "tok", time.Second).Fetch(context.Background(), "alice")
	require.Error(t, err)
}
