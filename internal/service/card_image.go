package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dtroode/xcard-server/internal/logger"
	"github.com/dtroode/xcard-server/internal/model"
)

const cardImageContentType = "image/png"

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func cardImageKey(userNumber int64) string {
	return fmt.Sprintf("cards/%d.png", userNumber)
}

// CardImage archives rendered card images in object storage.
type CardImage struct {
	store    model.CardStore
	tokens   model.CardTokenManager
	storage  model.Storage
	maxBytes int64
	logger   *logger.Logger
}

func NewCardImage(
	store model.CardStore,
	tokens model.CardTokenManager,
	storage model.Storage,
	maxBytes int64,
	logger *logger.Logger,
) *CardImage {
	return &CardImage{
		store:    store,
		tokens:   tokens,
		storage:  storage,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// authorize checks that token was issued for username's current card.
func (s *CardImage) authorize(ctx context.Context, token, username string) (model.UserCard, error) {
	claims, err := s.tokens.ParseCardToken(token)
	if err != nil {
		return model.UserCard{}, err
	}
	if claims.Username != username {
		return model.UserCard{}, fmt.Errorf("%w: token issued for another user", model.ErrInvalidToken)
	}

	card, err := s.lookup(ctx, username)
	if err != nil {
		return model.UserCard{}, err
	}
	if card.UserNumber != claims.UserNumber {
		return model.UserCard{}, fmt.Errorf("%w: card number mismatch", model.ErrInvalidToken)
	}

	return card, nil
}

func (s *CardImage) lookup(ctx context.Context, username string) (model.UserCard, error) {
	card, err := s.store.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		return model.UserCard{}, err
	}
	if err != nil {
		return model.UserCard{}, model.NewStorageError("lookup", err)
	}
	return card, nil
}

func (s *CardImage) Upload(ctx context.Context, token, username string, r io.Reader) error {
	card, err := s.authorize(ctx, token, username)
	if err != nil {
		return err
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return fmt.Errorf("failed to read card image: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return model.ErrImageTooLarge
	}
	if !bytes.HasPrefix(data, pngSignature) {
		return model.ErrInvalidImage
	}

	key := cardImageKey(card.UserNumber)
	if err := s.storage.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), cardImageContentType); err != nil {
		return model.NewStorageError("upload image", err)
	}

	s.logger.Info("Card image: uploaded",
		"username", username,
		"key", key,
		"size", len(data))

	return nil
}

func (s *CardImage) Download(ctx context.Context, username string) (io.ReadCloser, error) {
	card, err := s.lookup(ctx, username)
	if err != nil {
		return nil, err
	}

	key := cardImageKey(card.UserNumber)
	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		return nil, model.NewStorageError("stat image", err)
	}
	if !exists {
		return nil, model.ErrNotFound
	}

	rc, err := s.storage.Download(ctx, key)
	if err != nil {
		return nil, model.NewStorageError("download image", err)
	}

	return rc, nil
}

func (s *CardImage) Delete(ctx context.Context, token, username string) error {
	card, err := s.authorize(ctx, token, username)
	if err != nil {
		return err
	}

	key := cardImageKey(card.UserNumber)
	if err := s.storage.Delete(ctx, key); err != nil {
		return model.NewStorageError("delete image", err)
	}

	s.logger.Info("Card image: deleted", "username", username, "key", key)

	return nil
}
