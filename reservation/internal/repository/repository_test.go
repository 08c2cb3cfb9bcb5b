package repository_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/hotel-reservation/pkg/sqlite"
	"github.com/Astemirdum/hotel-reservation/reservation/internal/errs"
	"github.com/Astemirdum/hotel-reservation/reservation/internal/model"
	"github.com/Astemirdum/hotel-reservation/reservation/internal/repository"
	"github.com/Astemirdum/hotel-reservation/reservation/migrations"
)

func day(d int) model.Date {
	return model.NewDate(2024, time.January, d)
}

func rsv(name string, room, start, end int) model.Reservation {
	return model.Reservation{Name: name, RoomID: room, StartDate: day(start), EndDate: day(end)}
}

func newSQLiteRepo(t *testing.T) repository.Repository {
	t.Helper()
	db, err := sqlite.NewSQLiteDB(context.Background(), &sqlite.DB{Path: sqlite.InMemory}, migrations.MigrationFiles)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := repository.NewRepository(db, zap.NewNop())
	require.NoError(t, err)
	return repo
}

func implementations(t *testing.T) map[string]func(t *testing.T) repository.Repository {
	impls := map[string]func(t *testing.T) repository.Repository{
		"memory": func(*testing.T) repository.Repository { return repository.NewMemoryRepository() },
		"sqlite": newSQLiteRepo,
	}
	if addr := os.Getenv("TEST_REDIS_ADDR"); addr != "" {
		impls["redis+memory"] = func(t *testing.T) repository.Repository {
			client := redis.NewClient(&redis.Options{Addr: addr})
			require.NoError(t, client.FlushDB(context.Background()).Err())
			t.Cleanup(func() { client.Close() })
			return repository.NewCachedRepository(repository.NewMemoryRepository(), client, time.Minute, zap.NewNop())
		}
	}
	return impls
}

func TestRepository_List(t *testing.T) {
	for name, newRepo := range implementations(t) {
		newRepo := newRepo
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)

			require.NoError(t, repo.Create(ctx, rsv("alice", 5, 10, 12)))
			require.NoError(t, repo.Create(ctx, rsv("bob", 5, 1, 3)))
			require.NoError(t, repo.Create(ctx, rsv("alice", 2, 1, 3)))

			byRoom, err := repo.ListByRoom(ctx, 5)
			require.NoError(t, err)
			require.Equal(t, []model.Reservation{rsv("bob", 5, 1, 3), rsv("alice", 5, 10, 12)}, byRoom)

			byName, err := repo.ListByName(ctx, "alice")
			require.NoError(t, err)
			require.Equal(t, []model.Reservation{rsv("alice", 2, 1, 3), rsv("alice", 5, 10, 12)}, byName)

			empty, err := repo.ListByRoom(ctx, 9)
			require.NoError(t, err)
			require.NotNil(t, empty)
			require.Empty(t, empty)
		})
	}
}

func TestRepository_ListOverlapping(t *testing.T) {
	tests := []struct {
		name       string
		room       int
		start, end int
		want       []model.Reservation
	}{
		{name: "starts inside", room: 5, start: 12, end: 19, want: []model.Reservation{rsv("alice", 5, 10, 15)}},
		{name: "ends on next start day", room: 5, start: 12, end: 20, want: []model.Reservation{rsv("alice", 5, 10, 15), rsv("bob", 5, 20, 25)}},
		{name: "starts on previous end day", room: 5, start: 15, end: 17, want: []model.Reservation{rsv("alice", 5, 10, 15)}},
		{name: "ends inside", room: 5, start: 5, end: 10, want: []model.Reservation{rsv("alice", 5, 10, 15)}},
		{name: "contains", room: 5, start: 1, end: 31, want: []model.Reservation{rsv("alice", 5, 10, 15), rsv("bob", 5, 20, 25)}},
		{name: "contained", room: 5, start: 21, end: 22, want: []model.Reservation{rsv("bob", 5, 20, 25)}},
		{name: "gap", room: 5, start: 16, end: 19, want: []model.Reservation{}},
		{name: "other room", room: 6, start: 10, end: 15, want: []model.Reservation{}},
	}
	for name, newRepo := range implementations(t) {
		newRepo := newRepo
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)
			require.NoError(t, repo.Create(ctx, rsv("alice", 5, 10, 15)))
			require.NoError(t, repo.Create(ctx, rsv("bob", 5, 20, 25)))

			for _, tt := range tests {
				got, err := repo.ListOverlapping(ctx, tt.room, model.DateRange{Start: day(tt.start), End: day(tt.end)})
				require.NoError(t, err, tt.name)
				require.Equal(t, tt.want, got, tt.name)
			}
		})
	}
}

func TestRepository_UpdateDelete(t *testing.T) {
	for name, newRepo := range implementations(t) {
		newRepo := newRepo
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)
			orig := rsv("alice", 5, 1, 5)
			require.NoError(t, repo.Create(ctx, orig))

			// warm list caches so invalidation is exercised
			_, err := repo.ListByRoom(ctx, 5)
			require.NoError(t, err)

			err = repo.UpdateDates(ctx, rsv("alice", 5, 2, 5), model.DateRange{Start: day(7), End: day(8)})
			require.ErrorIs(t, err, errs.ErrNotFound)

			require.NoError(t, repo.UpdateDates(ctx, orig, model.DateRange{Start: day(7), End: day(8)}))
			got, err := repo.ListByRoom(ctx, 5)
			require.NoError(t, err)
			require.Equal(t, []model.Reservation{rsv("alice", 5, 7, 8)}, got)

			// delete needs the exact natural key
			require.NoError(t, repo.Delete(ctx, orig))
			got, err = repo.ListByName(ctx, "alice")
			require.NoError(t, err)
			require.Len(t, got, 1)

			require.NoError(t, repo.Delete(ctx, rsv("alice", 5, 7, 8)))
			require.NoError(t, repo.Delete(ctx, rsv("alice", 5, 7, 8)))
			got, err = repo.ListByName(ctx, "alice")
			require.NoError(t, err)
			require.Empty(t, got)
		})
	}
}

func TestMemoryRepository_DuplicateKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	require.NoError(t, repo.Create(ctx, rsv("alice", 5, 1, 5)))
	require.ErrorIs(t, repo.Create(ctx, rsv("alice", 5, 1, 5)), errs.ErrRoomNotAvailable)
}

func TestRepository_LongName(t *testing.T) {
	long := strings.Repeat("a", 300)
	for name, newRepo := range implementations(t) {
		newRepo := newRepo
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)
			require.NoError(t, repo.Create(ctx, rsv(long, 3, 1, 2)))
			got, err := repo.ListByName(ctx, long)
			require.NoError(t, err)
			require.Equal(t, []model.Reservation{rsv(long, 3, 1, 2)}, got)
		})
	}
}

func TestSQLiteRepository_CheckConstraints(t *testing.T) {
	tests := []struct {
		name    string
		input   model.Reservation
		wantErr error
	}{
		{name: "empty name", input: rsv("", 3, 1, 2), wantErr: errs.ErrName},
		{name: "room out of range", input: rsv("alice", 11, 1, 2), wantErr: errs.ErrRoomID},
		{name: "start after end", input: rsv("alice", 3, 5, 2), wantErr: errs.ErrDateOrder},
	}
	repo := newSQLiteRepo(t)
	for _, tt := range tests {
		require.ErrorIs(t, repo.Create(context.Background(), tt.input), tt.wantErr, tt.name)
	}
}
