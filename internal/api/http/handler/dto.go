package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/xcard-server/internal/model"
)

// profileRequest is the camelCase profile body of POST /api/users.
// Omitted or null optional fields decode to nil.
type profileRequest struct {
	Username     string  `json:"username"`
	DisplayName  string  `json:"displayName"`
	ProfileImage *string `json:"profileImage"`
	Bio          *string `json:"bio"`
	Followers    *int64  `json:"followers"`
	Following    *int64  `json:"following"`
	Verified     *bool   `json:"verified"`
	Location     *string `json:"location"`
}

func (r profileRequest) toModel() model.Profile {
	return model.Profile{
		Username:     r.Username,
		DisplayName:  r.DisplayName,
		ProfileImage: r.ProfileImage,
		Bio:          r.Bio,
		Followers:    r.Followers,
		Following:    r.Following,
		Verified:     r.Verified,
		Location:     r.Location,
	}
}

type resolveRequest struct {
	Username string `json:"username"`
}

type userResponse struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"displayName"`
	UserNumber   int64     `json:"userNumber"`
	ProfileImage *string   `json:"profileImage"`
	Bio          *string   `json:"bio"`
	Followers    *int64    `json:"followers"`
	Following    *int64    `json:"following"`
	Verified     bool      `json:"verified"`
	Location     *string   `json:"location"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func newUserResponse(card model.UserCard) userResponse {
	return userResponse{
		ID:           card.ID,
		Username:     card.Username,
		DisplayName:  card.DisplayName,
		UserNumber:   card.UserNumber,
		ProfileImage: card.ProfileImage,
		Bio:          card.Bio,
		Followers:    card.Followers,
		Following:    card.Following,
		Verified:     card.Verified,
		Location:     card.Location,
		CreatedAt:    card.CreatedAt,
		UpdatedAt:    card.UpdatedAt,
	}
}

type registerResponse struct {
	Success    bool         `json:"success"`
	UserNumber int64        `json:"userNumber"`
	IsNewUser  bool         `json:"isNewUser"`
	User       userResponse `json:"user"`
	CardToken  string       `json:"cardToken,omitempty"`
}

type recentUserResponse struct {
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	UserNumber  int64     `json:"userNumber"`
	CreatedAt   time.Time `json:"createdAt"`
}

type statsResponse struct {
	TotalUsers     int64                `json:"totalUsers"`
	CurrentCounter int64                `json:"currentCounter"`
	RecentUsers    []recentUserResponse `json:"recentUsers"`
}

func newStatsResponse(stats model.Stats) statsResponse {
	recent := make([]recentUserResponse, 0, len(stats.RecentUsers))
	for _, u := range stats.RecentUsers {
		recent = append(recent, recentUserResponse{
			Username:    u.Username,
			DisplayName: u.DisplayName,
			UserNumber:  u.UserNumber,
			CreatedAt:   u.CreatedAt,
		})
	}
	return statsResponse{
		TotalUsers:     stats.TotalUsers,
		CurrentCounter: stats.CurrentCounter,
		RecentUsers:    recent,
	}
}

type profileResponse struct {
	Username     string  `json:"username"`
	DisplayName  string  `json:"displayName"`
	ProfileImage *string `json:"profileImage"`
	Bio          *string `json:"bio"`
	Followers    *int64  `json:"followers"`
	Following    *int64  `json:"following"`
	Verified     *bool   `json:"verified"`
	Location     *string `json:"location"`
}

func newProfileResponse(p model.Profile) profileResponse {
	return profileResponse{
		Username:     p.Username,
		DisplayName:  p.DisplayName,
		ProfileImage: p.ProfileImage,
		Bio:          p.Bio,
		Followers:    p.Followers,
		Following:    p.Following,
		Verified:     p.Verified,
		Location:     p.Location,
	}
}
