package relay

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"MusicHub/core/apperror"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_FetchBeforeStore(t *testing.T) {
	svc := NewService(NewMemoryStore())
	_, err := svc.Fetch(context.Background())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.Equal(t, MsgNoTokenStored, apperror.Message(err))
}

func TestService_StoreThenFetch(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore())

	require.NoError(t, svc.Store(ctx, "abc"))
	got, err := svc.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	require.NoError(t, svc.Store(ctx, "def"))
	got, err = svc.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "def", got, "last writer wins")
}

func TestService_StoreEmpty(t *testing.T) {
	svc := NewService(NewMemoryStore())
	err := svc.Store(context.Background(), "")
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Equal(t, MsgTokenMissing, apperror.Message(err))

	_, err = svc.Fetch(context.Background())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestMemoryStore_ConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Set(ctx, fmt.Sprintf("tok-%d", i))
			_, _ = store.Get(ctx)
		}(i)
	}
	wg.Wait()

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Regexp(t, `^tok-\d+$`, got)
}

// Runs only when REDIS_TEST_ADDR points at a disposable Redis instance.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Del(ctx, RedisKey).Err())

	store := NewRedisStore(client)
	_, err := store.Get(ctx)
	assert.ErrorIs(t, err, ErrEmpty)

	require.NoError(t, store.Set(ctx, "xyz"))
	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "xyz", got)
}
