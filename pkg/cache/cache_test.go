package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_SetGet(t *testing.T) {
	c := NewCache(time.Minute)
	defer c.Stop()

	c.Set("key", "value")

	v, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "value", v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	c := NewCache(time.Minute)
	defer c.Stop()

	c.SetWithTTL("key", "value", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get("key")
	assert.False(t, ok)
}

func TestCache_Delete(t *testing.T) {
	c := NewCache(time.Minute)
	defer c.Stop()

	c.Set("key", "value")
	c.Delete("key")

	_, ok := c.Get("key")
	assert.False(t, ok)
}

func TestCache_InvalidatePrefix(t *testing.T) {
	c := NewCache(time.Minute)
	defer c.Stop()

	c.Set("destinations:list", 1)
	c.Set("destinations:d1", 2)
	c.Set("banners:b1", 3)

	c.Invalidate("destinations:")

	_, ok := c.Get("destinations:list")
	assert.False(t, ok)
	_, ok = c.Get("banners:b1")
	assert.True(t, ok)
	assert.Equal(t, 1, c.Size())
}

func TestCache_Clear(t *testing.T) {
	c := NewCache(time.Minute)
	defer c.Stop()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()
	assert.Equal(t, 0, c.Size())
}
