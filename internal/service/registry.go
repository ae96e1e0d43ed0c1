package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/xcard-server/internal/logger"
	"github.com/dtroode/xcard-server/internal/model"
)

// Registry assigns permanent card numbers and keeps card profiles current.
type Registry struct {
	store     model.CardStore
	tokens    model.CardTokenManager
	txTimeout time.Duration
	logger    *logger.Logger
	now       func() time.Time
}

func NewRegistry(
	store model.CardStore,
	tokens model.CardTokenManager,
	txTimeout time.Duration,
	logger *logger.Logger,
) *Registry {
	return &Registry{
		store:     store,
		tokens:    tokens,
		txTimeout: txTimeout,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func validateProfile(profile model.Profile) error {
	if profile.Username == "" {
		return model.NewValidationError("username", "must not be empty")
	}
	if profile.DisplayName == "" {
		return model.NewValidationError("displayName", "must not be empty")
	}
	if profile.Followers != nil && *profile.Followers < 0 {
		return model.NewValidationError("followers", "must not be negative")
	}
	if profile.Following != nil && *profile.Following < 0 {
		return model.NewValidationError("following", "must not be negative")
	}
	return nil
}

// RegisterOrUpdate returns the card number for profile.Username, issuing the
// next number on first registration. Existing cards keep their number and get
// the new profile fields.
func (s *Registry) RegisterOrUpdate(ctx context.Context, profile model.Profile) (model.Registration, error) {
	if err := validateProfile(profile); err != nil {
		return model.Registration{}, err
	}

	_, err := s.store.GetByUsername(ctx, profile.Username)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Registration{}, model.NewStorageError("lookup", err)
	}
	found := err == nil

	// writes are detached from caller cancellation and bounded by txTimeout
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.txTimeout)
	defer cancel()

	if found {
		return s.update(wctx, profile)
	}

	card, err := s.store.CreateNumbered(wctx, model.NewUserCard(profile, s.now()))
	if errors.Is(err, model.ErrUsernameTaken) {
		s.logger.Debug("Registry: concurrent registration won by another request, updating",
			"username", profile.Username)
		return s.update(wctx, profile)
	}
	if err != nil {
		return model.Registration{}, model.NewStorageError("create", err)
	}

	s.logger.Info("Registry: new user registered",
		"username", card.Username,
		"user_number", card.UserNumber)

	return s.registration(card, true), nil
}

func (s *Registry) update(ctx context.Context, profile model.Profile) (model.Registration, error) {
	card, err := s.store.Update(ctx, profile, s.now())
	if err != nil {
		return model.Registration{}, model.NewStorageError("update", err)
	}

	s.logger.Debug("Registry: existing user updated",
		"username", card.Username,
		"user_number", card.UserNumber)

	return s.registration(card, false), nil
}

func (s *Registry) registration(card model.UserCard, isNew bool) model.Registration {
	reg := model.Registration{
		UserNumber: card.UserNumber,
		IsNewUser:  isNew,
		Card:       card,
	}

	tok, err := s.tokens.GenerateCardToken(card)
	if err != nil {
		// registration is already committed
		s.logger.Error("Registry: failed to issue card token", "username", card.Username, "error", err)
		return reg
	}
	reg.CardToken = tok

	return reg
}

// Lookup returns the stored card for an exact username.
func (s *Registry) Lookup(ctx context.Context, username string) (model.UserCard, error) {
	if username == "" {
		return model.UserCard{}, model.NewValidationError("username", "must not be empty")
	}

	card, err := s.store.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		return model.UserCard{}, err
	}
	if err != nil {
		return model.UserCard{}, model.NewStorageError("lookup", err)
	}

	return card, nil
}

func (s *Registry) Stats(ctx context.Context) (model.Stats, error) {
	stats, err := s.store.Stats(ctx, model.RecentUsersLimit)
	if err != nil {
		return model.Stats{}, model.NewStorageError("stats", err)
	}
	return stats, nil
}

// InitStore creates the counter singleton if it is missing and returns its value.
func (s *Registry) InitStore(ctx context.Context) (int64, error) {
	counter, err := s.store.EnsureCounter(ctx)
	if err != nil {
		return 0, model.NewStorageError("init", err)
	}

	s.logger.Info("Registry: store initialized", "counter", counter)

	return counter, nil
}

// Health checks connectivity and reports the current counter and user total.
func (s *Registry) Health(ctx context.Context) (int64, int64, error) {
	if err := s.store.Ping(ctx); err != nil {
		return 0, 0, model.NewStorageError("ping", err)
	}

	stats, err := s.store.Stats(ctx, 0)
	if err != nil {
		return 0, 0, model.NewStorageError("health", fmt.Errorf("failed to read stats: %w", err))
	}

	return stats.CurrentCounter, stats.TotalUsers, nil
}
