package animator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultModifierAtZero(t *testing.T) {
	a := NewAnimator()
	want := 0.25*math.Sin(2*(math.Pi/4)) + 0.75
	assert.InDelta(t, want, float64(a.Modifier()), 1e-6)
	assert.InDelta(t, 1.0, float64(a.Modifier()), 1e-6)
}

func TestAdvanceSubtractsSleep(t *testing.T) {
	a := NewAnimator()
	a.Start(0)

	assert.Equal(t, 16*time.Millisecond, a.Advance(16*time.Millisecond, 0))
	assert.Equal(t, 10*time.Millisecond, a.Advance(526*time.Millisecond, 500*time.Millisecond))
	assert.Equal(t, 26*time.Millisecond, a.Elapsed())
}

func TestAdvanceNeverGoesBackwards(t *testing.T) {
	a := NewAnimator()
	a.Start(time.Second)
	assert.Zero(t, a.Advance(time.Second+time.Millisecond, 5*time.Millisecond))
	assert.Zero(t, a.Elapsed())
}

func TestPhaseGrowthIgnoresStalls(t *testing.T) {
	const frame = 16 * time.Millisecond

	steady := NewAnimator()
	stalled := NewAnimator()
	steady.Start(0)
	stalled.Start(0)

	var steadyNow, stalledNow time.Duration
	for i := 0; i < 600; i++ {
		steadyNow += frame
		steady.Advance(steadyNow, 0)

		stall := time.Duration(i%7) * 40 * time.Millisecond
		stalledNow += frame + stall
		stalled.Advance(stalledNow, stall)
	}

	assert.Equal(t, steady.Elapsed(), stalled.Elapsed())
	assert.InDelta(t, float64(steady.Modifier()), float64(stalled.Modifier()), 1e-6)
	assert.Greater(t, stalledNow, steadyNow, "raw wall time includes the stalls")
}

func TestModifierStaysInRange(t *testing.T) {
	a := NewAnimator(WithAmplitude(-0.4), WithOffset(0.6), WithAngularRate(7))
	low, high := a.Range()
	assert.InDelta(t, 0.2, float64(low), 1e-6)
	assert.InDelta(t, 1.0, float64(high), 1e-6)

	a.Start(0)
	var now time.Duration
	for i := 0; i < 2000; i++ {
		now += 3 * time.Millisecond
		a.Advance(now, 0)
		m := a.Modifier()
		assert.GreaterOrEqual(t, m, low-1e-6)
		assert.LessOrEqual(t, m, high+1e-6)
	}
}

func TestModifierIsPeriodic(t *testing.T) {
	a := NewAnimator(WithAngularRate(2), WithPhase(0))
	b := NewAnimator(WithAngularRate(2), WithPhase(0))
	a.Start(0)
	b.Start(0)

	periodNs := math.Pi * float64(time.Second) // 2π / rate
	period := time.Duration(periodNs)
	a.Advance(300*time.Millisecond, 0)
	b.Advance(300*time.Millisecond+period, 0)
	assert.InDelta(t, float64(a.Modifier()), float64(b.Modifier()), 1e-5)
}

func TestWithAngularRateIgnoresNonPositive(t *testing.T) {
	a := NewAnimator(WithAngularRate(0)).(*animator)
	assert.Equal(t, DefaultAngularRate, a.angularRate)
}
