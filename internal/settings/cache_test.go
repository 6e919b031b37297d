package settings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCachePutGet(t *testing.T) {
	c := NewCache(time.Minute)
	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Put("maintenance_mode", true)
	v, ok := c.Get("maintenance_mode")
	assert.True(t, ok)
	assert.Equal(t, true, v)
}

func TestCacheInvalidateAll(t *testing.T) {
	c := NewCache(time.Minute)
	c.Put("a", 1)
	c.Put("b", 2)
	c.InvalidateAll()
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestCacheTTLExpiry(t *testing.T) {
	c := NewCache(20 * time.Millisecond)
	c.Put("k", "v")
	_, ok := c.Get("k")
	assert.True(t, ok)
	time.Sleep(40 * time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestCacheZeroTTLFallsBackToDefault(t *testing.T) {
	c := NewCache(0)
	assert.Equal(t, DefaultTTL, c.ttl)
}
