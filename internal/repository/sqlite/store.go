// Package sqlite provides a single-file SQLite card store for local runs and tests.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/dtroode/xcard-server/database"
	"github.com/dtroode/xcard-server/internal/model"
)

const cardColumns = `id, username, display_name, user_number, profile_image, bio, followers, following, verified, location, created_at, updated_at`

var _ model.CardStore = (*Store)(nil)

// Store persists cards in SQLite. All access goes through one connection,
// so transactions never contend for the write lock.
type Store struct {
	db *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the database file at path and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	if err := database.Migrate(ctx, db, database.DialectSQLite); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (model.UserCard, error) {
	var (
		card                 model.UserCard
		id                   string
		createdAt, updatedAt int64
	)
	err := row.Scan(
		&id, &card.Username, &card.DisplayName, &card.UserNumber,
		&card.ProfileImage, &card.Bio, &card.Followers, &card.Following,
		&card.Verified, &card.Location, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.UserCard{}, err
	}

	if err := card.ID.UnmarshalText([]byte(id)); err != nil {
		return model.UserCard{}, fmt.Errorf("failed to parse card id %q: %w", id, err)
	}
	card.CreatedAt = fromMillis(createdAt)
	card.UpdatedAt = fromMillis(updatedAt)
	return card, nil
}

func (s *Store) GetByUsername(ctx context.Context, username string) (model.UserCard, error) {
	query := `SELECT ` + cardColumns + ` FROM user_cards WHERE username = ?`

	card, err := scanCard(s.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.UserCard{}, model.ErrNotFound
		}
		return model.UserCard{}, fmt.Errorf("failed to get user card by username: %w", err)
	}

	return card, nil
}

func (s *Store) Update(ctx context.Context, profile model.Profile, now time.Time) (model.UserCard, error) {
	query := `UPDATE user_cards SET
				display_name = ?,
				profile_image = COALESCE(?, profile_image),
				bio = COALESCE(?, bio),
				followers = COALESCE(?, followers),
				following = COALESCE(?, following),
				verified = COALESCE(?, verified),
				location = COALESCE(?, location),
				updated_at = ?
			  WHERE username = ?
			  RETURNING ` + cardColumns

	card, err := scanCard(s.db.QueryRowContext(ctx, query,
		profile.DisplayName, profile.ProfileImage, profile.Bio,
		profile.Followers, profile.Following, profile.Verified, profile.Location,
		toMillis(now), profile.Username,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.UserCard{}, model.ErrNotFound
		}
		return model.UserCard{}, fmt.Errorf("failed to update user card: %w", err)
	}

	return card, nil
}

func (s *Store) CreateNumbered(ctx context.Context, card model.UserCard) (model.UserCard, error) {
	const ensureCounter = `INSERT INTO card_counter (id, counter) VALUES (?, 0) ON CONFLICT (id) DO NOTHING`
	const increment = `UPDATE card_counter SET counter = counter + 1 WHERE id = ? RETURNING counter`
	insert := `INSERT INTO user_cards (` + cardColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			  RETURNING ` + cardColumns

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.UserCard{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, ensureCounter, model.CounterID); err != nil {
		return model.UserCard{}, fmt.Errorf("failed to ensure card counter: %w", err)
	}

	var number int64
	if err := tx.QueryRowContext(ctx, increment, model.CounterID).Scan(&number); err != nil {
		return model.UserCard{}, fmt.Errorf("failed to increment card counter: %w", err)
	}

	saved, err := scanCard(tx.QueryRowContext(ctx, insert,
		card.ID.String(), card.Username, card.DisplayName, number,
		card.ProfileImage, card.Bio, card.Followers, card.Following,
		card.Verified, card.Location, toMillis(card.CreatedAt), toMillis(card.UpdatedAt),
	))
	if err != nil {
		return model.UserCard{}, classifyInsertError(err)
	}

	if err := tx.Commit(); err != nil {
		return model.UserCard{}, fmt.Errorf("failed to commit user card: %w", err)
	}

	return saved, nil
}

func classifyInsertError(err error) error {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_UNIQUE {
		if strings.Contains(err.Error(), "user_cards.username") {
			return model.ErrUsernameTaken
		}
		return fmt.Errorf("card number already issued, counter out of sync: %w", err)
	}
	return fmt.Errorf("failed to insert user card: %w", err)
}

func (s *Store) EnsureCounter(ctx context.Context) (int64, error) {
	const query = `INSERT INTO card_counter (id, counter) VALUES (?, 0)
			  ON CONFLICT (id) DO UPDATE SET counter = card_counter.counter
			  RETURNING counter`

	var counter int64
	if err := s.db.QueryRowContext(ctx, query, model.CounterID).Scan(&counter); err != nil {
		return 0, fmt.Errorf("failed to ensure card counter: %w", err)
	}

	return counter, nil
}

func (s *Store) Stats(ctx context.Context, recent int) (model.Stats, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Stats{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var stats model.Stats
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_cards`).Scan(&stats.TotalUsers); err != nil {
		return model.Stats{}, fmt.Errorf("failed to count user cards: %w", err)
	}

	err = tx.QueryRowContext(ctx, `SELECT counter FROM card_counter WHERE id = ?`, model.CounterID).Scan(&stats.CurrentCounter)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return model.Stats{}, fmt.Errorf("failed to read card counter: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `SELECT username, display_name, user_number, created_at
			  FROM user_cards
			  ORDER BY created_at DESC, user_number DESC
			  LIMIT ?`, recent)
	if err != nil {
		return model.Stats{}, fmt.Errorf("failed to list recent user cards: %w", err)
	}
	defer rows.Close()

	stats.RecentUsers = make([]model.CardSummary, 0, recent)
	for rows.Next() {
		var (
			summary   model.CardSummary
			createdAt int64
		)
		if err := rows.Scan(&summary.Username, &summary.DisplayName, &summary.UserNumber, &createdAt); err != nil {
			return model.Stats{}, fmt.Errorf("failed to scan recent user card: %w", err)
		}
		summary.CreatedAt = fromMillis(createdAt)
		stats.RecentUsers = append(stats.RecentUsers, summary)
	}
	if err := rows.Err(); err != nil {
		return model.Stats{}, fmt.Errorf("failed to list recent user cards: %w", err)
	}

	return stats, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
