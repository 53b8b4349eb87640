package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-responsive/common"
	"github.com/stretchr/testify/assert"
)

func TestTickLogsOncePerInterval(t *testing.T) {
	var buf bytes.Buffer
	common.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { common.SetLogger(nil) })

	now := time.Unix(0, 0)
	p := NewProfiler()
	p.lastTime = now
	p.now = func() time.Time { return now }

	now = now.Add(400 * time.Millisecond)
	assert.False(t, p.Tick(100*time.Millisecond, false))
	now = now.Add(400 * time.Millisecond)
	assert.False(t, p.Tick(0, true))
	now = now.Add(400 * time.Millisecond)
	assert.True(t, p.Tick(0, false))

	out := buf.String()
	assert.Contains(t, out, "fps=2.5")
	assert.Contains(t, out, "fence_timeouts=1")

	buf.Reset()
	now = now.Add(100 * time.Millisecond)
	assert.False(t, p.Tick(0, false), "counters restart after a report")
	assert.Empty(t, buf.String())
}

func TestSetIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler()
	p.SetInterval(0)
	assert.Equal(t, time.Second, p.updateInterval)
	p.SetInterval(250 * time.Millisecond)
	assert.Equal(t, 250*time.Millisecond, p.updateInterval)
}
