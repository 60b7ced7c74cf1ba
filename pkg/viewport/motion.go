package viewport

import "math"

// Motion is modeled as a tagged state rather than free-running callbacks: at
// most one motion is active, and every direct mutation (pan, zoom, jump)
// bumps a generation counter so a stale Step from a superseded motion becomes
// a no-op instead of fighting the new gesture over CenterTime.

type motionKind int

const (
	motionIdle motionKind = iota
	motionAnimating
	motionMomentum
)

type motion struct {
	kind motionKind
	gen  uint64

	// animating
	startMs    float64 // wall clock at AnimateTo
	durationMs float64
	fromCenter float64
	toCenter   float64
	fromLogPPM float64
	toLogPPM   float64

	// momentum
	velocity float64 // pixels per ms, sign follows Pan's delta convention
	lastMs   float64
}

// Momentum tuning. Velocity decays exponentially with time constant
// frictionTauMs and the motion stops below stopVelocity.
const (
	frictionTauMs = 325.0
	stopVelocity  = 0.005 // px/ms
)

// Moving reports whether an animation or momentum fling is in flight.
func (v *Viewport) Moving() bool {
	return v.motion.kind != motionIdle
}

func (v *Viewport) cancelMotion() {
	v.gen++
	v.motion = motion{kind: motionIdle, gen: v.gen}
}

// AnimateTo starts an animated transition to the view spanning [t0, t1] over
// durationMs, starting at wall clock nowMs. CenterTime interpolates linearly
// and PixelsPerMs log-linearly, both under a cubic ease-out. Malformed
// targets (t1 <= t0, non-finite, zero duration) jump immediately instead of
// erroring.
func (v *Viewport) AnimateTo(t0, t1, durationMs, nowMs float64) {
	if !isFinite(t0) || !isFinite(t1) || t1 <= t0 {
		return
	}
	toCenter := (t0 + t1) / 2
	toPPM := clampZoom(v.state.Width / (t1 - t0))

	if !isFinite(durationMs) || durationMs <= 0 {
		v.cancelMotion()
		v.state.CenterTime = toCenter
		v.state.PixelsPerMs = toPPM
		v.recompute()
		return
	}

	v.gen++
	v.motion = motion{
		kind:       motionAnimating,
		gen:        v.gen,
		startMs:    nowMs,
		durationMs: durationMs,
		fromCenter: v.state.CenterTime,
		toCenter:   toCenter,
		fromLogPPM: math.Log(v.state.PixelsPerMs),
		toLogPPM:   math.Log(toPPM),
	}
}

// FlingWith starts a momentum glide with the given release velocity in
// pixels per ms (same sign convention as Pan). A new gesture cancels it.
func (v *Viewport) FlingWith(velocityPxPerMs, nowMs float64) {
	if !isFinite(velocityPxPerMs) || math.Abs(velocityPxPerMs) < stopVelocity {
		return
	}
	v.gen++
	v.motion = motion{
		kind:     motionMomentum,
		gen:      v.gen,
		velocity: velocityPxPerMs,
		lastMs:   nowMs,
	}
}

// Step advances the active motion to wall clock nowMs and returns true while
// motion remains in flight. Idle viewports return false immediately, so the
// driver can stop ticking.
func (v *Viewport) Step(nowMs float64) bool {
	m := v.motion
	if m.kind == motionIdle || m.gen != v.gen {
		return false
	}

	switch m.kind {
	case motionAnimating:
		p := (nowMs - m.startMs) / m.durationMs
		done := p >= 1
		if done {
			p = 1
		}
		if p < 0 {
			p = 0
		}
		e := easeOutCubic(p)
		v.state.CenterTime = m.fromCenter + (m.toCenter-m.fromCenter)*e
		v.state.PixelsPerMs = math.Exp(m.fromLogPPM + (m.toLogPPM-m.fromLogPPM)*e)
		v.recompute()
		if done {
			v.motion = motion{kind: motionIdle, gen: v.gen}
			return false
		}
		return true

	case motionMomentum:
		dt := nowMs - m.lastMs
		if dt < 0 {
			dt = 0
		}
		v.panBy(m.velocity * dt)
		m.velocity *= math.Exp(-dt / frictionTauMs)
		m.lastMs = nowMs
		if math.Abs(m.velocity) < stopVelocity {
			v.motion = motion{kind: motionIdle, gen: v.gen}
			return false
		}
		v.motion = m
		return true
	}
	return false
}

func easeOutCubic(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q
}
