package cache

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "steam-extract:500", Key("steam-extract", "500"))
}

func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	_, ok, err := s.Get("ns:1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("ns:1", `{"appId":"1"}`))
	v, ok, err := s.Get("ns:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"appId":"1"}`, v)

	require.NoError(t, s.Set("ns:1", `{"appId":"1","name":"x"}`))
	v, _, err = s.Get("ns:1")
	require.NoError(t, err)
	assert.Equal(t, `{"appId":"1","name":"x"}`, v)

	require.NoError(t, s.Remove("ns:1"))
	_, ok, err = s.Get("ns:1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLite(t *testing.T) {
	c, err := New(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer c.Close()

	exerciseStore(t, c)
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestMemoryFail(t *testing.T) {
	m := NewMemory()
	m.Fail = errors.New("quota exceeded")

	assert.Error(t, m.Set("k", "v"))
	_, ok, err := m.Get("k")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Sets())
}
