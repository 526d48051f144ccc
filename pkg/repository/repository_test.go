package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates in-memory repositories for tests
func setupTestDB(t *testing.T) *Repositories {
	t.Helper()
	repos, err := NewRepositories(context.Background(), Config{
		DSN:             ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 30 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, repos.Close()) })
	return repos
}

func TestRepositories_Integration(t *testing.T) {
	repos := setupTestDB(t)
	require.NoError(t, repos.Ping(context.Background()))
	assert.NotNil(t, repos.Source)
	assert.NotNil(t, repos.History)
}

func TestRepositories_FileReopen(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?mode=rwc"

	repos, err := NewRepositories(ctx, Config{DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, repos.Source.SetEnabled(ctx, "p1", false))
	require.NoError(t, repos.History.RecordVisit(ctx, "https://www.example.com/a"))
	require.NoError(t, repos.Close())

	// schema creation is idempotent and data survives
	repos, err = NewRepositories(ctx, Config{DSN: dsn})
	require.NoError(t, err)
	defer repos.Close()

	overrides, err := repos.Source.LoadOverrides(ctx)
	require.NoError(t, err)
	require.Len(t, overrides, 1)
	assert.Equal(t, "p1", overrides[0].PublisherID)
	assert.False(t, overrides[0].Enabled)

	domains, err := repos.History.RecentDomains(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com"}, domains)
}

func TestIsLockError(t *testing.T) {
	assert.False(t, isLockError(nil))
	assert.False(t, isLockError(assert.AnError))
	assert.True(t, isLockError(&criticalError{err: errString("database is locked (5) (SQLITE_BUSY)")}))
	assert.True(t, isLockError(errString("database table is locked")))
}

type errString string

func (e errString) Error() string { return string(e) }
