package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return srv, client
}

func TestRedisPendingStore_AppendDrain(t *testing.T) {
	ctx := context.Background()
	srv, client := newTestRedis(t)

	store := NewRedisPendingStore(client, "student_intake:test", zap.NewNop())
	require.True(t, store.Healthy(ctx))

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Append(ctx, newSubmission(i)))
	}
	queued, err := srv.List("student_intake:test")
	require.NoError(t, err)
	assert.Len(t, queued, 3)

	batch, err := store.Drain(ctx)
	require.NoError(t, err)
	require.Len(t, batch, 3)
	assert.Equal(t, "sub-0", batch[0].ID)
	assert.Equal(t, "sub-2", batch[2].ID)
	assert.Equal(t, "+5511987654321", batch[1].PhoneID)
	assert.False(t, srv.Exists("student_intake:test"))

	empty, err := store.Drain(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestRedisPendingStore_DrainLogsUndecodableEntry(t *testing.T) {
	ctx := context.Background()
	srv, client := newTestRedis(t)
	core, logs := observer.New(zapcore.ErrorLevel)

	store := NewRedisPendingStore(client, "", zap.New(core))
	require.NoError(t, store.Append(ctx, newSubmission(0)))
	_, err := srv.RPush(DefaultPendingKey, "{not json")
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, newSubmission(1)))

	batch, err := store.Drain(ctx)

	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, "sub-0", batch[0].ID)
	assert.Equal(t, "sub-1", batch[1].ID)

	entries := logs.FilterMessage("dropping undecodable pending submission").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "{not json", entries[0].ContextMap()["raw"])
}

func TestRedisPendingStore_Unreachable(t *testing.T) {
	ctx := context.Background()
	srv, client := newTestRedis(t)
	store := NewRedisPendingStore(client, "", nil)
	srv.Close()

	assert.False(t, store.Healthy(ctx))
	assert.Error(t, store.Append(ctx, newSubmission(0)))
	_, err := store.Drain(ctx)
	assert.Error(t, err)
}

func TestRedisPendingStore_DefaultKey(t *testing.T) {
	store := NewRedisPendingStore(nil, "", nil)
	assert.Equal(t, DefaultPendingKey, store.key)
	assert.False(t, store.Healthy(context.Background()))
}
