package model

import "context"

// ProfileSource fetches a profile snapshot for a username from one upstream.
type ProfileSource interface {
	Name() string
	Fetch(ctx context.Context, username string) (Profile, error)
}

// SourceAttempt records a profile source that failed during resolution.
type SourceAttempt struct {
	Source string
	Err    error
}

// ResolvedProfile is the first successful result of an ordered source chain.
type ResolvedProfile struct {
	Profile
	Source   string
	Attempts []SourceAttempt
}
