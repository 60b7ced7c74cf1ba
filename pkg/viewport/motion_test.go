package viewport

import (
	"math"
	"testing"

	"github.com/Geddart/linearcal/pkg/testutil"
)

func TestAnimateToReachesTarget(t *testing.T) {
	v := newTestViewport(0, 1e-6)
	t0, t1 := 1.0e12, 1.1e12
	v.AnimateTo(t0, t1, 300, 1000)

	if !v.Moving() {
		t.Fatal("viewport should be animating")
	}

	// Advance well past the duration.
	if v.Step(2000) {
		t.Error("Step past the end should report motion finished")
	}
	s := v.State()
	testutil.AssertInDelta(t, (t0+t1)/2, s.CenterTime, 1, "final center")
	testutil.AssertInDelta(t, s.Width/(t1-t0), s.PixelsPerMs, 1e-12, "final zoom")
	if v.Moving() {
		t.Error("viewport should be idle after completion")
	}
}

func TestAnimateToProgressesMonotonically(t *testing.T) {
	v := newTestViewport(0, 1e-6)
	v.AnimateTo(1.0e12, 1.1e12, 1000, 0)

	prev := v.State().CenterTime
	for now := 100.0; now < 1000; now += 100 {
		v.Step(now)
		cur := v.State().CenterTime
		if cur < prev {
			t.Errorf("center moved backwards at t=%g: %g -> %g", now, prev, cur)
		}
		prev = cur
	}
}

func TestAnimateToMalformedTargetJumpsOrIgnores(t *testing.T) {
	v := newTestViewport(5e11, 1e-6)
	before := v.State()

	// Inverted and non-finite ranges are ignored outright.
	v.AnimateTo(100, 50, 300, 0)
	v.AnimateTo(math.NaN(), 100, 300, 0)
	if v.State() != before || v.Moving() {
		t.Error("malformed target should leave the viewport untouched")
	}

	// Zero duration jumps immediately.
	v.AnimateTo(1.0e12, 1.1e12, 0, 0)
	if v.Moving() {
		t.Error("zero-duration animate should not start motion")
	}
	testutil.AssertInDelta(t, 1.05e12, v.State().CenterTime, 1, "instant jump center")
}

func TestPanCancelsAnimation(t *testing.T) {
	v := newTestViewport(0, 1e-6)
	v.AnimateTo(1.0e12, 1.1e12, 1000, 0)
	v.Step(100)

	v.Pan(10)
	center := v.State().CenterTime

	// The superseded animation's Step must be a no-op now.
	if v.Step(500) {
		t.Error("Step after cancellation should report no motion")
	}
	if v.State().CenterTime != center {
		t.Error("stale animation moved the viewport after a pan")
	}
}

func TestZoomCancelsMomentum(t *testing.T) {
	v := newTestViewport(0, 1e-6)
	v.FlingWith(2.0, 0)
	if !v.Moving() {
		t.Fatal("fling should start momentum")
	}

	v.ZoomAt(500, 10)
	if v.Moving() {
		t.Error("zoom should cancel momentum")
	}
	if v.Step(100) {
		t.Error("stale momentum should not step")
	}
}

func TestMomentumDecaysAndStops(t *testing.T) {
	v := newTestViewport(0, 1e-6)
	v.FlingWith(1.0, 0)

	start := v.State().CenterTime
	var lastMove float64 = math.Inf(1)
	now, prev := 16.0, start
	steps := 0
	for v.Step(now) {
		cur := v.State().CenterTime
		move := math.Abs(cur - prev)
		if move > lastMove+1e-9 {
			t.Fatalf("momentum sped up at t=%g", now)
		}
		lastMove = move
		prev = cur
		now += 16
		steps++
		if steps > 10_000 {
			t.Fatal("momentum never stopped")
		}
	}

	if v.Moving() {
		t.Error("viewport should be idle after momentum stops")
	}
	// Positive velocity follows Pan's convention: content dragged right,
	// center moves back in time.
	if v.State().CenterTime >= start {
		t.Error("positive fling should decrease CenterTime")
	}
}

func TestFlingBelowThresholdIgnored(t *testing.T) {
	v := newTestViewport(0, 1e-6)
	v.FlingWith(stopVelocity/2, 0)
	if v.Moving() {
		t.Error("fling below stop velocity should not start motion")
	}
}

func TestStepIdleReturnsFalse(t *testing.T) {
	v := newTestViewport(0, 1e-6)
	if v.Step(100) {
		t.Error("idle Step should return false")
	}
}

func TestMomentumBackwardClockClamped(t *testing.T) {
	v := newTestViewport(0, 1e-6)
	v.FlingWith(1.0, 1000)
	center := v.State().CenterTime

	// A clock that runs backwards must not move the view backwards.
	v.Step(900)
	if v.State().CenterTime != center {
		t.Error("negative dt should not move the viewport")
	}
}
