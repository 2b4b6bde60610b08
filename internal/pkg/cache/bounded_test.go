package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func TestBounded_GetAfterSet(t *testing.T) {
	clock := newFakeClock()
	c := NewBounded[string, string](100, 300*time.Second, WithClock(clock.Now))

	c.Set("git ch", "eckout ")
	got, ok := c.Get("git ch")
	require.True(t, ok)
	assert.Equal(t, "eckout ", got)

	clock.Advance(299 * time.Second)
	_, ok = c.Get("git ch")
	assert.True(t, ok, "entry younger than TTL must be served")

	clock.Advance(time.Second)
	_, ok = c.Get("git ch")
	assert.False(t, ok, "entry whose age reaches TTL is absent")
}

func TestBounded_GetDoesNotEvict(t *testing.T) {
	clock := newFakeClock()
	c := NewBounded[string, int](10, time.Minute, WithClock(clock.Now))

	c.Set("a", 1)
	clock.Advance(2 * time.Minute)
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len(), "stale entry stays until the next write")

	c.Set("b", 2)
	assert.Equal(t, 1, c.Len(), "write sweeps expired entries")
}

func TestBounded_EvictsOldestAtCapacity(t *testing.T) {
	clock := newFakeClock()
	const capacity = 5
	c := NewBounded[string, int](capacity, time.Hour, WithClock(clock.Now))

	for i := 0; i < capacity; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
		clock.Advance(time.Second)
	}
	// Refresh k0 so k1 becomes the oldest entry.
	c.Set("k0", 100)
	clock.Advance(time.Second)

	c.Set("extra", 42)

	assert.Equal(t, capacity, c.Len())
	_, ok := c.Get("k1")
	assert.False(t, ok, "oldest entry should have been evicted")

	v, ok := c.Get("k0")
	require.True(t, ok)
	assert.Equal(t, 100, v)

	v, ok = c.Get("extra")
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestBounded_CapacityPlusOne(t *testing.T) {
	clock := newFakeClock()
	c := NewBounded[int, int](100, time.Hour, WithClock(clock.Now))

	for i := 0; i <= 100; i++ {
		c.Set(i, i)
		clock.Advance(time.Millisecond)
	}

	assert.Equal(t, 100, c.Len())
	_, ok := c.Get(0)
	assert.False(t, ok)
	_, ok = c.Get(100)
	assert.True(t, ok)
}

func TestBounded_OverwriteKeepsSize(t *testing.T) {
	c := NewBounded[string, string](2, time.Hour)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("b", "3")

	v, ok := c.Get("b")
	require.True(t, ok)
	assert.Equal(t, "3", v)
	assert.LessOrEqual(t, c.Len(), 2)
}

func TestBounded_Clear(t *testing.T) {
	c := NewBounded[string, int](4, time.Hour)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestBounded_MinimumCapacity(t *testing.T) {
	c := NewBounded[string, int](0, time.Hour)
	c.Set("a", 1)
	c.Set("b", 2)
	assert.Equal(t, 1, c.Len())
}

func TestBounded_ConcurrentWritersLastWriteWins(t *testing.T) {
	c := NewBounded[string, int](100, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Set("same", i)
			c.Set(fmt.Sprintf("k%d", i), i)
		}(i)
	}
	wg.Wait()

	_, ok := c.Get("same")
	assert.True(t, ok)
	assert.LessOrEqual(t, c.Len(), 100)
}
