package dispatch

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func TestGate_FirstSeenAdmits(t *testing.T) {
	clock := newFakeClock()
	g := newGate(600*time.Millisecond, 500, clock.Now)

	assert.False(t, g.shouldSuppress("k1"))
	assert.False(t, g.shouldSuppress("k2"), "distinct keys do not interfere")
}

func TestGate_RepeatWithinWindowSuppressed(t *testing.T) {
	clock := newFakeClock()
	g := newGate(600*time.Millisecond, 500, clock.Now)

	require.False(t, g.shouldSuppress("k"))

	clock.Advance(100 * time.Millisecond)
	assert.True(t, g.shouldSuppress("k"))

	clock.Advance(599 * time.Millisecond)
	assert.True(t, g.shouldSuppress("k"), "window slides on every call")
}

func TestGate_ExpiredEntryAdmits(t *testing.T) {
	clock := newFakeClock()
	g := newGate(600*time.Millisecond, 500, clock.Now)

	require.False(t, g.shouldSuppress("k"))

	clock.Advance(601 * time.Millisecond)
	assert.False(t, g.shouldSuppress("k"))
}

func TestGate_SlidingWindow(t *testing.T) {
	clock := newFakeClock()
	g := newGate(600*time.Millisecond, 500, clock.Now)

	require.False(t, g.shouldSuppress("k"))

	// A continuous burst keeps being suppressed far past the first TTL.
	for i := 0; i < 10; i++ {
		clock.Advance(500 * time.Millisecond)
		assert.True(t, g.shouldSuppress("k"), "burst iteration %d", i)
	}

	// Only a full quiet window resets the key.
	clock.Advance(601 * time.Millisecond)
	assert.False(t, g.shouldSuppress("k"))
}

func TestGate_EvictsAtCapacity(t *testing.T) {
	clock := newFakeClock()
	g := newGate(time.Hour, 3, clock.Now)

	for i := 0; i < 5; i++ {
		g.shouldSuppress(fmt.Sprintf("k%d", i))
	}

	assert.Equal(t, 3, g.len())

	// The oldest keys were evicted, so they admit again.
	assert.False(t, g.shouldSuppress("k0"))
	assert.False(t, g.shouldSuppress("k1"))
}

func TestGate_Concurrent(t *testing.T) {
	g := newGate(600*time.Millisecond, 500, nil)

	const goroutines = 50
	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				g.shouldSuppress(fmt.Sprintf("k%d", n%5))
			}
		}(i)
	}

	wg.Wait()
}

func TestFingerprintKey_Granularity(t *testing.T) {
	a := fingerprint{sender: 1, chat: 10, kind: KindMessage, content: "hello"}
	b := fingerprint{sender: 1, chat: 20, kind: KindMessage, content: "other"}
	c := fingerprint{sender: 1, chat: 10, kind: KindMessage, content: "other"}

	// Sender granularity collapses everything from one user.
	assert.Equal(t, a.key(GranularitySender), b.key(GranularitySender))

	// Chat granularity separates chats but not content.
	assert.NotEqual(t, a.key(GranularityChat), b.key(GranularityChat))
	assert.Equal(t, a.key(GranularityChat), c.key(GranularityChat))

	// Content granularity separates payloads too.
	assert.NotEqual(t, a.key(GranularityContent), c.key(GranularityContent))
}

func TestFingerprintKey_KindSeparates(t *testing.T) {
	msg := fingerprint{sender: 1, chat: 10, kind: KindMessage, content: "x"}
	cb := fingerprint{sender: 1, chat: 10, kind: KindCallback, content: "x"}

	assert.NotEqual(t, msg.key(GranularityChat), cb.key(GranularityChat))
}
