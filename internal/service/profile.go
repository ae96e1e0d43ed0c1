package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/xcard-server/internal/logger"
	"github.com/dtroode/xcard-server/internal/model"
)

// ProfileResolver tries profile sources in order and returns the first hit.
type ProfileResolver struct {
	sources        []model.ProfileSource
	hasCredentials bool
	logger         *logger.Logger
}

func NewProfileResolver(hasCredentials bool, logger *logger.Logger, sources ...model.ProfileSource) *ProfileResolver {
	return &ProfileResolver{
		sources:        sources,
		hasCredentials: hasCredentials,
		logger:         logger,
	}
}

func (s *ProfileResolver) Resolve(ctx context.Context, username string) (model.ResolvedProfile, error) {
	if username == "" {
		return model.ResolvedProfile{}, model.NewValidationError("username", "must not be empty")
	}

	var (
		attempts []model.SourceAttempt
		errs     []error
	)
	for _, src := range s.sources {
		profile, err := src.Fetch(ctx, username)
		if err == nil {
			return model.ResolvedProfile{
				Profile:  profile,
				Source:   src.Name(),
				Attempts: attempts,
			}, nil
		}

		s.logger.Debug("Profile resolver: source failed",
			"source", src.Name(),
			"username", username,
			"error", err)

		attempts = append(attempts, model.SourceAttempt{Source: src.Name(), Err: err})
		errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))

		if ctx.Err() != nil {
			break
		}
	}

	if len(errs) == 0 {
		return model.ResolvedProfile{}, fmt.Errorf("%w: no profile sources configured", model.ErrSourceUnavailable)
	}

	return model.ResolvedProfile{}, fmt.Errorf("failed to resolve profile for %q: %w", username, errors.Join(errs...))
}

// CredentialsConfigured reports whether Twitter OAuth credentials are present.
func (s *ProfileResolver) CredentialsConfigured() bool {
	return s.hasCredentials
}
