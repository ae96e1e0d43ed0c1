package testutil

import "github.com/dtroode/xcard-server/internal/model"

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// MakeProfile returns a fully populated profile snapshot for username.
func MakeProfile(username string) model.Profile {
	return model.Profile{
		Username:     username,
		DisplayName:  username + " display",
		ProfileImage: Ptr("https://pbs.twimg.com/profile_images/" + username + "_400x400.jpg"),
		Bio:          Ptr("building things"),
		Followers:    Ptr(int64(10)),
		Following:    Ptr(int64(5)),
		Verified:     Ptr(false),
		Location:     Ptr("Seoul, Korea"),
	}
}
