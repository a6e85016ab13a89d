package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "data.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		DriverMemory: NewMemoryStore(),
		DriverSQLite: sqlite,
	}
}

func TestStoreGetSet(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get(ctx, "crs")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set(ctx, "crs", []byte{1, 2, 3}))
			got, ok, err := s.Get(ctx, "crs")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, []byte{1, 2, 3}, got)

			require.NoError(t, s.Set(ctx, "crs", []byte{9}))
			got, _, err = s.Get(ctx, "crs")
			require.NoError(t, err)
			assert.Equal(t, []byte{9}, got)

			require.NoError(t, s.Set(ctx, "empty", nil))
			got, ok, err = s.Get(ctx, "empty")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Empty(t, got)
		})
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	data := []byte{1, 2}
	require.NoError(t, s.Set(ctx, "k", data))
	data[0] = 7

	got, _, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, got)

	got[1] = 7
	again, _, _ := s.Get(ctx, "k")
	assert.Equal(t, []byte{1, 2}, again)
}

func TestSQLiteStorePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "g2", []byte("point")))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	got, ok, err := s.Get(ctx, "g2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("point"), got)
}

func TestOpen(t *testing.T) {
	s, err := Open("", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(DriverSQLite, filepath.Join(t.TempDir(), "x.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open("redis", "")
	var unknown *UnknownDriverError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "redis", unknown.Driver)
}
