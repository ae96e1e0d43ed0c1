package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/xcard-server/internal/model"
)

const (
	uniqueViolation    = "23505"
	usernameConstraint = "user_cards_username_key"
)

const cardColumns = `id, username, display_name, user_number, profile_image, bio, followers, following, verified, location, created_at, updated_at`

var _ model.CardStore = (*CardRepository)(nil)

type CardRepository struct {
	db *sql.DB
}

func NewCardRepository(db *sql.DB) *CardRepository {
	return &CardRepository{
		db: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (model.UserCard, error) {
	var card model.UserCard
	err := row.Scan(
		&card.ID, &card.Username, &card.DisplayName, &card.UserNumber,
		&card.ProfileImage, &card.Bio, &card.Followers, &card.Following,
		&card.Verified, &card.Location, &card.CreatedAt, &card.UpdatedAt,
	)
	return card, err
}

func (r *CardRepository) GetByUsername(ctx context.Context, username string) (model.UserCard, error) {
	query := `SELECT ` + cardColumns + `
			  FROM user_cards WHERE username = $1`

	card, err := scanCard(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.UserCard{}, model.ErrNotFound
		}
		return model.UserCard{}, fmt.Errorf("failed to get user card by username: %w", err)
	}

	return card, nil
}

func (r *CardRepository) Update(ctx context.Context, profile model.Profile, now time.Time) (model.UserCard, error) {
	query := `UPDATE user_cards SET
				display_name = $2,
				profile_image = COALESCE($3, profile_image),
				bio = COALESCE($4, bio),
				followers = COALESCE($5, followers),
				following = COALESCE($6, following),
				verified = COALESCE($7, verified),
				location = COALESCE($8, location),
				updated_at = $9
			  WHERE username = $1
			  RETURNING ` + cardColumns

	card, err := scanCard(r.db.QueryRowContext(ctx, query,
		profile.Username, profile.DisplayName, profile.ProfileImage, profile.Bio,
		profile.Followers, profile.Following, profile.Verified, profile.Location, now,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.UserCard{}, model.ErrNotFound
		}
		return model.UserCard{}, fmt.Errorf("failed to update user card: %w", err)
	}

	return card, nil
}

// CreateNumbered issues the next card number and inserts the card in one
// transaction. The counter row lock serialises concurrent issuers; a failed
// insert rolls the increment back.
func (r *CardRepository) CreateNumbered(ctx context.Context, card model.UserCard) (model.UserCard, error) {
	const ensureCounter = `INSERT INTO card_counter (id, counter) VALUES ($1, 0)
			  ON CONFLICT (id) DO NOTHING`
	const increment = `UPDATE card_counter SET counter = counter + 1
			  WHERE id = $1
			  RETURNING counter`
	insert := `INSERT INTO user_cards (` + cardColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING ` + cardColumns

	var saved model.UserCard
	err := withTx(ctx, r.db, nil, func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, ensureCounter, model.CounterID); err != nil {
			return fmt.Errorf("failed to ensure card counter: %w", err)
		}

		var number int64
		if err := tx.QueryRowContext(ctx, increment, model.CounterID).Scan(&number); err != nil {
			return fmt.Errorf("failed to increment card counter: %w", err)
		}

		var err error
		saved, err = scanCard(tx.QueryRowContext(ctx, insert,
			card.ID, card.Username, card.DisplayName, number,
			card.ProfileImage, card.Bio, card.Followers, card.Following,
			card.Verified, card.Location, card.CreatedAt, card.UpdatedAt,
		))
		if err != nil {
			return classifyInsertError(err)
		}
		return nil
	})
	if err != nil {
		return model.UserCard{}, err
	}

	return saved, nil
}

func classifyInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if pgErr.ConstraintName == usernameConstraint {
			return model.ErrUsernameTaken
		}
		return fmt.Errorf("card number already issued, counter out of sync: %w", err)
	}
	return fmt.Errorf("failed to insert user card: %w", err)
}

func (r *CardRepository) EnsureCounter(ctx context.Context) (int64, error) {
	const query = `INSERT INTO card_counter (id, counter) VALUES ($1, 0)
			  ON CONFLICT (id) DO UPDATE SET counter = card_counter.counter
			  RETURNING counter`

	var counter int64
	if err := r.db.QueryRowContext(ctx, query, model.CounterID).Scan(&counter); err != nil {
		return 0, fmt.Errorf("failed to ensure card counter: %w", err)
	}

	return counter, nil
}

func (r *CardRepository) Stats(ctx context.Context, recent int) (model.Stats, error) {
	const countQuery = `SELECT COUNT(*) FROM user_cards`
	const counterQuery = `SELECT counter FROM card_counter WHERE id = $1`
	const recentQuery = `SELECT username, display_name, user_number, created_at
			  FROM user_cards
			  ORDER BY created_at DESC, user_number DESC
			  LIMIT $1`

	var stats model.Stats
	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	err := withTx(ctx, r.db, opts, func(ctx context.Context, tx DBTX) error {
		if err := tx.QueryRowContext(ctx, countQuery).Scan(&stats.TotalUsers); err != nil {
			return fmt.Errorf("failed to count user cards: %w", err)
		}

		err := tx.QueryRowContext(ctx, counterQuery, model.CounterID).Scan(&stats.CurrentCounter)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to read card counter: %w", err)
		}

		rows, err := tx.QueryContext(ctx, recentQuery, recent)
		if err != nil {
			return fmt.Errorf("failed to list recent user cards: %w", err)
		}
		defer rows.Close()

		stats.RecentUsers = make([]model.CardSummary, 0, recent)
		for rows.Next() {
			var s model.CardSummary
			if err := rows.Scan(&s.Username, &s.DisplayName, &s.UserNumber, &s.CreatedAt); err != nil {
				return fmt.Errorf("failed to scan recent user card: %w", err)
			}
			stats.RecentUsers = append(stats.RecentUsers, s)
		}
		return rows.Err()
	})
	if err != nil {
		return model.Stats{}, err
	}

	return stats, nil
}

func (r *CardRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
