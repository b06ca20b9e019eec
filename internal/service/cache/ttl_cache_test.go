package cache_test

import (
	"sync"
	"testing"
	"time"

	"StockLens/internal/service/cache"
	"StockLens/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCacheExpiresEntries(t *testing.T) {
	clk := clock.NewManual(time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC))
	c := cache.NewTTLCache(clk)

	c.Put("api_key", "sk-abc", 30*time.Minute)

	v, ok := c.Get("api_key")
	require.True(t, ok)
	assert.Equal(t, "sk-abc", v)

	clk.Advance(29*time.Minute + 59*time.Second)
	_, ok = c.Get("api_key")
	assert.True(t, ok)

	clk.Advance(time.Second)
	_, ok = c.Get("api_key")
	assert.False(t, ok, "entry must be absent once its lifetime elapsed")
	assert.Equal(t, 0, c.Len())
}

func TestTTLCacheZeroTTLNeverExpires(t *testing.T) {
	clk := clock.NewManual(time.Unix(0, 0))
	c := cache.NewTTLCache(clk)

	c.Put("module", "gpt-4-turbo-preview", 0)
	clk.Advance(24 * time.Hour)

	v, ok := c.Get("module")
	require.True(t, ok)
	assert.Equal(t, "gpt-4-turbo-preview", v)
}

func TestTTLCacheClear(t *testing.T) {
	c := cache.NewTTLCache(nil)

	c.Put("k", 1, time.Minute)
	c.Clear("k")
	c.Clear("missing")

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestTTLCachePutResetsLifetime(t *testing.T) {
	clk := clock.NewManual(time.Unix(0, 0))
	c := cache.NewTTLCache(clk)

	c.Put("k", "old", time.Minute)
	clk.Advance(50 * time.Second)
	c.Put("k", "new", time.Minute)
	clk.Advance(50 * time.Second)

	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "new", v)
}

func TestKeyLockSerializesSameKey(t *testing.T) {
	kl := cache.NewKeyLock()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := kl.Lock("AAPL")
			defer unlock()

			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}

func TestKeyLockIndependentKeys(t *testing.T) {
	kl := cache.NewKeyLock()

	unlockA := kl.Lock("AAPL")
	done := make(chan struct{})
	go func() {
		unlock := kl.Lock("MSFT")
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key blocked")
	}
	unlockA()
}
