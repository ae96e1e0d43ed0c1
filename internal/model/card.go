package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CounterID is the fixed key of the card counter singleton row.
const CounterID = "singleton"

// RecentUsersLimit is the number of newest cards reported by stats.
const RecentUsersLimit = 10

// CardStore defines persistence operations for user cards and the card counter.
type CardStore interface {
	GetByUsername(ctx context.Context, username string) (UserCard, error)
	Update(ctx context.Context, profile Profile, now time.Time) (UserCard, error)
	CreateNumbered(ctx context.Context, card UserCard) (UserCard, error)
	EnsureCounter(ctx context.Context) (int64, error)
	Stats(ctx context.Context, recent int) (Stats, error)
	Ping(ctx context.Context) error
}

// Profile is a snapshot of display attributes for a username.
// Nil optional fields are treated as not supplied.
type Profile struct {
	Username     string
	DisplayName  string
	ProfileImage *string
	Bio          *string
	Followers    *int64
	Following    *int64
	Verified     *bool
	Location     *string
}

// UserCard represents a stored registration with its permanent display number.
type UserCard struct {
	ID           uuid.UUID
	Username     string
	DisplayName  string
	UserNumber   int64
	ProfileImage *string
	Bio          *string
	Followers    *int64
	Following    *int64
	Verified     bool
	Location     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUserCard builds an unnumbered card from a profile snapshot.
func NewUserCard(profile Profile, now time.Time) UserCard {
	card := UserCard{
		ID:           uuid.New(),
		Username:     profile.Username,
		DisplayName:  profile.DisplayName,
		ProfileImage: profile.ProfileImage,
		Bio:          profile.Bio,
		Followers:    profile.Followers,
		Following:    profile.Following,
		Location:     profile.Location,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if profile.Verified != nil {
		card.Verified = *profile.Verified
	}
	return card
}

// Registration is the result of a register-or-update call.
type Registration struct {
	UserNumber int64
	IsNewUser  bool
	Card       UserCard
	CardToken  string
}

// CardSummary is a short view of a card used by stats.
type CardSummary struct {
	Username    string
	DisplayName string
	UserNumber  int64
	CreatedAt   time.Time
}

// Stats describes registry totals.
type Stats struct {
	TotalUsers     int64
	CurrentCounter int64
	RecentUsers    []CardSummary
}
