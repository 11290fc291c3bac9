package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"student_intake/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newSubmission(i int) model.PendingSubmission {
	return model.PendingSubmission{
		ID:             fmt.Sprintf("sub-%d", i),
		Name:           "Ana",
		PhoneID:        "+5511987654321",
		IdentifiedArea: "Exatas",
		Timestamp:      time.Now().UTC(),
	}
}

func TestMemoryPendingStore_DrainEmpty(t *testing.T) {
	store := NewMemoryPendingStore()

	batch, err := store.Drain(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, batch)
	assert.Empty(t, batch)
}

func TestMemoryPendingStore_AppendDrainOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPendingStore()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Append(ctx, newSubmission(i)))
	}
	assert.Equal(t, 3, store.Len())

	batch, err := store.Drain(ctx)
	require.NoError(t, err)
	require.Len(t, batch, 3)
	for i, sub := range batch {
		assert.Equal(t, fmt.Sprintf("sub-%d", i), sub.ID)
	}

	assert.Equal(t, 0, store.Len())
	again, _ := store.Drain(ctx)
	assert.Empty(t, again)
}

func TestMemoryPendingStore_DrainedBatchIsDetached(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPendingStore()
	require.NoError(t, store.Append(ctx, newSubmission(0)))

	batch, _ := store.Drain(ctx)
	require.NoError(t, store.Append(ctx, newSubmission(1)))

	require.Len(t, batch, 1)
	assert.Equal(t, "sub-0", batch[0].ID)
}

// Concurrent appends and drains must neither lose nor duplicate entries
func TestMemoryPendingStore_ConcurrentAppendDrain(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPendingStore()

	const writers = 8
	const perWriter = 200

	var mu sync.Mutex
	seen := map[string]int{}
	collect := func(batch []model.PendingSubmission) {
		mu.Lock()
		defer mu.Unlock()
		for _, sub := range batch {
			seen[sub.ID]++
		}
	}

	var writersWG sync.WaitGroup
	for w := 0; w < writers; w++ {
		writersWG.Add(1)
		go func(w int) {
			defer writersWG.Done()
			for i := 0; i < perWriter; i++ {
				_ = store.Append(ctx, newSubmission(w*perWriter+i))
			}
		}(w)
	}

	done := make(chan struct{})
	var drainWG sync.WaitGroup
	for d := 0; d < 3; d++ {
		drainWG.Add(1)
		go func() {
			defer drainWG.Done()
			for {
				select {
				case <-done:
					return
				default:
					batch, _ := store.Drain(ctx)
					collect(batch)
				}
			}
		}()
	}

	writersWG.Wait()
	close(done)
	drainWG.Wait()

	final, _ := store.Drain(ctx)
	collect(final)

	assert.Len(t, seen, writers*perWriter)
	for id, n := range seen {
		assert.Equal(t, 1, n, id)
	}
}

func TestMemoryPendingStore_Healthy(t *testing.T) {
	assert.True(t, NewMemoryPendingStore().Healthy(context.Background()))
}
