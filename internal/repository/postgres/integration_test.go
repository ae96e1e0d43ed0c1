//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/xcard-server/internal/model"
	repo "github.com/dtroode/xcard-server/internal/repository/postgres"
	"github.com/dtroode/xcard-server/internal/testutil"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "xcard_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/xcard_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func resetTables(t *testing.T, conn *repo.Connection) {
	t.Helper()
	ctx := context.Background()
	_, err := conn.DB.ExecContext(ctx, `TRUNCATE user_cards`)
	require.NoError(t, err)
	_, err = conn.DB.ExecContext(ctx, `UPDATE card_counter SET counter = 0`)
	require.NoError(t, err)
}

func TestCardRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	resetTables(t, conn)

	cards := repo.NewCardRepository(conn.DB)
	now := time.Now().UTC().Truncate(time.Millisecond)

	alice, err := cards.CreateNumbered(ctx, model.NewUserCard(testutil.MakeProfile("alice"), now))
	require.NoError(t, err)
	require.Equal(t, int64(1), alice.UserNumber)

	bob, err := cards.CreateNumbered(ctx, model.NewUserCard(testutil.MakeProfile("bob"), now.Add(time.Second)))
	require.NoError(t, err)
	require.Equal(t, int64(2), bob.UserNumber)

	_, err = cards.CreateNumbered(ctx, model.NewUserCard(testutil.MakeProfile("alice"), now))
	require.ErrorIs(t, err, model.ErrUsernameTaken)

	counter, err := cards.EnsureCounter(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), counter, "failed insert must not consume a number")

	updated, err := cards.Update(ctx, model.Profile{
		Username:    "alice",
		DisplayName: "Alice Updated",
		Followers:   testutil.Ptr(int64(500)),
	}, now.Add(time.Minute))
	require.NoError(t, err)
	require.Equal(t, int64(1), updated.UserNumber)
	require.Equal(t, "Alice Updated", updated.DisplayName)
	require.Equal(t, int64(500), *updated.Followers)
	require.Equal(t, "building things", *updated.Bio)
	require.Equal(t, alice.CreatedAt.UnixMilli(), updated.CreatedAt.UnixMilli())

	_, err = cards.Update(ctx, model.Profile{Username: "ghost", DisplayName: "g"}, now)
	require.ErrorIs(t, err, model.ErrNotFound)

	got, err := cards.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, bob.ID, got.ID)

	stats, err := cards.Stats(ctx, model.RecentUsersLimit)
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.TotalUsers)
	require.Equal(t, int64(2), stats.CurrentCounter)
	require.Len(t, stats.RecentUsers, 2)
	require.Equal(t, "bob", stats.RecentUsers[0].Username)

	require.NoError(t, cards.Ping(ctx))
}

func TestCardRepository_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	resetTables(t, conn)

	cards := repo.NewCardRepository(conn.DB)

	const n = 25
	numbers := make([]int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			card, err := cards.CreateNumbered(ctx, model.NewUserCard(testutil.MakeProfile(fmt.Sprintf("user%02d", i)), time.Now()))
			if assert.NoError(t, err) {
				numbers[i] = card.UserNumber
			}
		}(i)
	}
	wg.Wait()

	sort.Slice(numbers, func(a, b int) bool { return numbers[a] < numbers[b] })
	for i, got := range numbers {
		require.Equal(t, int64(i+1), got)
	}
}
