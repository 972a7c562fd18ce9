package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func sample(id string, expires time.Time) Session {
	return Session{
		ID:        id,
		AdminID:   "64b7f3c2a1d4e5f678901234",
		Mobile:    "9876543210",
		Email:     "admin@example.com",
		Name:      "Admin",
		Token:     "upstream-token",
		CreatedAt: expires.Add(-time.Hour).UTC().Truncate(time.Second),
		ExpiresAt: expires.UTC().Truncate(time.Second),
	}
}

// exerciseStore runs the behavior every Store must share.
func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	live := sample("live-1", time.Now().Add(time.Hour))
	require.NoError(t, store.Save(ctx, live))

	got, err := store.Get(ctx, live.ID)
	require.NoError(t, err)
	assert.Equal(t, live.AdminID, got.AdminID)
	assert.Equal(t, "upstream-token", got.Token)
	assert.True(t, live.ExpiresAt.Equal(got.ExpiresAt))

	live.Name = "Renamed"
	require.NoError(t, store.Save(ctx, live))
	got, err = store.Get(ctx, live.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	require.NoError(t, store.Delete(ctx, live.ID))
	_, err = store.Get(ctx, live.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_ExpiredIsNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, sample("old", now.Add(-time.Minute))))
	require.NoError(t, store.Save(ctx, sample("new", now.Add(time.Minute))))

	_, err := store.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)

	ids, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, ids)
	_, err = store.Get(ctx, "new")
	assert.NoError(t, err)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	exerciseStore(t, NewRedisStore(client))
}

func TestRedisStore_TTLFollowsExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	store := NewRedisStore(client)
	s := sample("ttl-1", time.Now().Add(30*time.Minute))
	require.NoError(t, store.Save(ctx, s))

	assert.True(t, mr.Exists(redisKeyPrefix+"ttl-1"))
	ttl := mr.TTL(redisKeyPrefix + "ttl-1")
	assert.Greater(t, ttl, 29*time.Minute)
	assert.LessOrEqual(t, ttl, 30*time.Minute)

	mr.FastForward(31 * time.Minute)
	_, err := store.Get(ctx, "ttl-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_SavingExpiredSessionDeletesIt(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	store := NewRedisStore(client)
	require.NoError(t, store.Save(ctx, sample("gone", time.Now().Add(time.Hour))))
	require.NoError(t, store.Save(ctx, sample("gone", time.Now().Add(-time.Hour))))
	assert.False(t, mr.Exists(redisKeyPrefix+"gone"))
}

// TestGormStore runs against the Postgres database in SESSION_TEST_DSN, for example
// SESSION_TEST_DSN="host=localhost user=postgres password=password dbname=rental_admin_test sslmode=disable".
// It is skipped when the variable is unset.
func TestGormStore(t *testing.T) {
	dsn := os.Getenv("SESSION_TEST_DSN")
	if dsn == "" {
		t.Skip("SESSION_TEST_DSN not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Session{}))
	t.Cleanup(func() { db.Where("1 = 1").Delete(&Session{}) })

	store := NewGormStore(db)
	exerciseStore(t, store)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sample("expired-1", time.Now().Add(-time.Hour))))
	_, err = store.Get(ctx, "expired-1")
	assert.ErrorIs(t, err, ErrNotFound)
	ids, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "expired-1")
}

func TestManager_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	m := NewManager(store, time.Hour)

	var destroyed []string
	m.OnDestroy(func(id string) { destroyed = append(destroyed, id) })

	s, err := m.Create(ctx, Session{AdminID: "a1", Name: "Admin", Token: "tok"})
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), s.ExpiresAt, time.Minute)

	got, err := m.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)

	got.Name = "New Name"
	got.Token = ""
	require.NoError(t, m.Update(ctx, got))
	got, err = m.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	assert.Equal(t, "tok", got.Token)

	require.NoError(t, m.Destroy(ctx, s.ID))
	_, err = m.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, []string{s.ID}, destroyed)
}

func TestManager_ExpiredSessionIsDestroyed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	m := NewManager(store, time.Minute)
	now := time.Now()
	m.now = func() time.Time { return now }

	var destroyed []string
	m.OnDestroy(func(id string) { destroyed = append(destroyed, id) })

	s, err := m.Create(ctx, Session{AdminID: "a1"})
	require.NoError(t, err)

	later := now.Add(2 * time.Minute)
	m.now = func() time.Time { return later }
	store.now = func() time.Time { return later }

	n, err := m.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{s.ID}, destroyed)

	_, err = m.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
