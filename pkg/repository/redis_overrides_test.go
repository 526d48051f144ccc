package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdeck/pkg/domain"
)

func TestRedisOverrides(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}

	ctx := context.Background()
	rdb, err := NewRedisClient(url)
	require.NoError(t, err)

	store := NewRedisOverrides(rdb, "test-"+t.Name())
	defer store.Close()
	require.NoError(t, store.Ping(ctx))
	defer rdb.Del(ctx, store.key)

	res, err := store.LoadOverrides(ctx)
	require.NoError(t, err)
	assert.Empty(t, res)

	require.NoError(t, store.SetEnabled(ctx, "p2", false))
	require.NoError(t, store.SetEnabled(ctx, "p1", false))
	require.NoError(t, store.SetEnabled(ctx, "p1", true))

	res, err = store.LoadOverrides(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Override{{PublisherID: "p1", Enabled: true}, {PublisherID: "p2", Enabled: false}}, res)

	require.NoError(t, store.DeleteOverride(ctx, "p2"))
	require.NoError(t, store.DeleteOverride(ctx, "unknown"))
	res, err = store.LoadOverrides(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Override{{PublisherID: "p1", Enabled: true}}, res)
}

func TestNewRedisClient(t *testing.T) {
	_, err := NewRedisClient("redis://localhost:6379/0")
	require.NoError(t, err)

	_, err = NewRedisClient("http://bad")
	require.Error(t, err)

	store := NewRedisOverrides(nil, "")
	assert.Equal(t, overridesKey, store.key)
	store = NewRedisOverrides(nil, "x")
	assert.Equal(t, "x:"+overridesKey, store.key)
}
