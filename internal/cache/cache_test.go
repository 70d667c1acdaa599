package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCache_SetGet(t *testing.T) {
	c, err := NewFileCache(t.TempDir(), time.Hour)
	require.NoError(t, err)

	_, ok := c.Get("dns.json")
	assert.False(t, ok, "empty cache should miss")

	require.NoError(t, c.Set("dns.json", []byte(`{"version":"1.0"}`)))

	data, ok := c.Get("dns.json")
	require.True(t, ok)
	assert.JSONEq(t, `{"version":"1.0"}`, string(data))
}

func TestFileCache_ExpiredEntryRemoved(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir, time.Hour)
	require.NoError(t, err)
	require.NoError(t, c.Set("asn.json", []byte(`{}`)))

	// Age the file past the TTL.
	old := time.Now().Add(-2 * time.Hour)
	path := filepath.Join(dir, "asn.json")
	require.NoError(t, os.Chtimes(path, old, old))

	_, ok := c.Get("asn.json")
	assert.False(t, ok)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "expired file should be removed")
}

func TestFileCache_SetResetsTTL(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir, time.Hour)
	require.NoError(t, err)
	require.NoError(t, c.Set("ipv4.json", []byte(`{"version":"1"}`)))
	require.NoError(t, c.Set("ipv4.json", []byte(`{"version":"2"}`)))

	data, ok := c.Get("ipv4.json")
	require.True(t, ok)
	assert.JSONEq(t, `{"version":"2"}`, string(data))
}

func TestFileCache_Clear(t *testing.T) {
	c, err := NewFileCache(t.TempDir(), time.Hour)
	require.NoError(t, err)
	require.NoError(t, c.Set("a", []byte("1")))
	require.NoError(t, c.Set("b", []byte("2")))

	require.NoError(t, c.Clear())

	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestMemory_SetGet(t *testing.T) {
	c := NewMemory[string, int](10, time.Hour)

	_, ok := c.Get("x")
	assert.False(t, ok)

	c.Set("x", 42)
	v, ok := c.Get("x")
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestMemory_Expiry(t *testing.T) {
	c := NewMemory[string, int](10, time.Hour)
	c.SetTTL("x", 1, 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get("x")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestMemory_LRUEviction(t *testing.T) {
	c := NewMemory[int, string](2, time.Hour)
	c.Set(1, "a")
	c.Set(2, "b")

	// Touch 1 so 2 becomes the eviction candidate.
	_, ok := c.Get(1)
	require.True(t, ok)

	c.Set(3, "c")

	_, ok = c.Get(2)
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = c.Get(1)
	assert.True(t, ok)
	_, ok = c.Get(3)
	assert.True(t, ok)
}

func TestMemory_NonPositiveTTLNotStored(t *testing.T) {
	c := NewMemory[string, int](10, time.Hour)
	c.SetTTL("x", 1, 0)
	_, ok := c.Get("x")
	assert.False(t, ok)
}
