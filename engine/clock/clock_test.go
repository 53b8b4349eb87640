package clock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonotonicClockNeverGoesBackwards(t *testing.T) {
	c := NewClock()
	prev := c.Now()
	for i := 0; i < 1000; i++ {
		now := c.Now()
		assert.GreaterOrEqual(t, now, prev)
		prev = now
	}
}

func TestMonotonicClockTracksSleep(t *testing.T) {
	c := NewClock()
	start := c.Now()
	time.Sleep(10 * time.Millisecond)
	assert.GreaterOrEqual(t, c.Now()-start, 10*time.Millisecond)
}

func TestManualClock(t *testing.T) {
	c := NewManualClock()
	assert.Equal(t, time.Duration(0), c.Now())

	c.Advance(5 * time.Millisecond)
	assert.Equal(t, 5*time.Millisecond, c.Now())

	c.Advance(-time.Second)
	assert.Equal(t, 5*time.Millisecond, c.Now(), "negative advance is ignored")

	c.Set(time.Millisecond)
	assert.Equal(t, 5*time.Millisecond, c.Now(), "Set never moves backwards")

	c.Set(time.Second)
	assert.Equal(t, time.Second, c.Now())
}

func TestManualClockConcurrentAdvance(t *testing.T) {
	c := NewManualClock()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Advance(time.Millisecond)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800*time.Millisecond, c.Now())
}
