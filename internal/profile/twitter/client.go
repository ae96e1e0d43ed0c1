// Package twitter fetches public profiles from the Twitter/X v2 users API.
package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dtroode/xcard-server/internal/model"
)

const userFields = "description,profile_image_url,public_metrics,verified,location"

// Client is a ProfileSource backed by the Twitter/X API.
type Client struct {
	baseURL     string
	bearerToken string
	httpClient  *http.Client
}

var _ model.ProfileSource = (*Client)(nil)

func NewClient(baseURL, bearerToken string, timeout time.Duration) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		bearerToken: bearerToken,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) Name() string {
	return "twitter"
}

type userResponse struct {
	Data *struct {
		Username        string `json:"username"`
		Name            string `json:"name"`
		Description     string `json:"description"`
		ProfileImageURL string `json:"profile_image_url"`
		Verified        bool   `json:"verified"`
		Location        string `json:"location"`
		PublicMetrics   struct {
			FollowersCount int64 `json:"followers_count"`
			FollowingCount int64 `json:"following_count"`
		} `json:"public_metrics"`
	} `json:"data"`
}

// Fetch looks up username. Without a bearer token the source is unavailable.
func (c *Client) Fetch(ctx context.Context, username string) (model.Profile, error) {
	if c.bearerToken == "" {
		return model.Profile{}, fmt.Errorf("%w: twitter bearer token is not configured", model.ErrSourceUnavailable)
	}

	endpoint := fmt.Sprintf("%s/2/users/by/username/%s?user.fields=%s",
		c.baseURL, url.PathEscape(username), url.QueryEscape(userFields))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to build twitter request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.bearerToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to call twitter api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return model.Profile{}, model.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return model.Profile{}, fmt.Errorf("twitter api returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload userResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.Profile{}, fmt.Errorf("failed to decode twitter response: %w", err)
	}
	if payload.Data == nil {
		return model.Profile{}, model.ErrNotFound
	}

	d := payload.Data
	profile := model.Profile{
		Username:    d.Username,
		DisplayName: d.Name,
		Bio:         &d.Description,
		Followers:   &d.PublicMetrics.FollowersCount,
		Following:   &d.PublicMetrics.FollowingCount,
		Verified:    &d.Verified,
		Location:    &d.Location,
	}
	if profile.Username == "" {
		profile.Username = username
	}
	if d.ProfileImageURL != "" {
		image := strings.Replace(d.ProfileImageURL, "_normal", "_400x400", 1)
		profile.ProfileImage = &image
	}

	return profile, nil
}
