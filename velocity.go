package quickswipe

import "time"

const (
	velocityHistorySize = 20

	// DefaultVelocityHorizon is how far back samples contribute to velocity.
	DefaultVelocityHorizon = 100 * time.Millisecond

	// PxPerMs selects pixels-per-millisecond units in ComputeCurrentVelocity.
	PxPerMs = 1.0
)

type velocitySample struct {
	pos Vec2
	t   time.Duration
}

// sampleRing is a fixed-size ring of the most recent samples of one pointer.
type sampleRing struct {
	buf   [velocityHistorySize]velocitySample
	head  int // index of the newest sample
	count int
}

func (r *sampleRing) add(s velocitySample) {
	r.head = (r.head + 1) % velocityHistorySize
	r.buf[r.head] = s
	if r.count < velocityHistorySize {
		r.count++
	}
}

// fit returns the least-squares slope of position over time (per ms) using
// samples no older than horizon relative to the newest sample.
func (r *sampleRing) fit(horizon time.Duration) Vec2 {
	if r.count < 2 {
		return Vec2{}
	}
	newest := r.buf[r.head].t

	var n, sumT, sumX, sumY float64
	samples := make([]velocitySample, 0, r.count)
	for i := 0; i < r.count; i++ {
		s := r.buf[(r.head-i+velocityHistorySize)%velocityHistorySize]
		if newest-s.t > horizon {
			break
		}
		samples = append(samples, s)
		t := float64(s.t-newest) / float64(time.Millisecond)
		n++
		sumT += t
		sumX += s.pos.X
		sumY += s.pos.Y
	}
	if n < 2 {
		return Vec2{}
	}
	meanT, meanX, meanY := sumT/n, sumX/n, sumY/n

	var stt, stx, sty float64
	for _, s := range samples {
		dt := float64(s.t-newest)/float64(time.Millisecond) - meanT
		stt += dt * dt
		stx += dt * (s.pos.X - meanX)
		sty += dt * (s.pos.Y - meanY)
	}
	if stt == 0 {
		return Vec2{}
	}
	return Vec2{stx / stt, sty / stt}
}

// VelocityTracker keeps a rolling buffer of (position, time) samples per
// pointer and derives release velocity from it.
type VelocityTracker struct {
	horizon    time.Duration
	rings      map[int]*sampleRing
	velocities map[int]Vec2
}

// NewVelocityTracker creates a tracker. A non-positive horizon selects
// DefaultVelocityHorizon.
func NewVelocityTracker(horizon time.Duration) *VelocityTracker {
	if horizon <= 0 {
		horizon = DefaultVelocityHorizon
	}
	return &VelocityTracker{
		horizon:    horizon,
		rings:      make(map[int]*sampleRing),
		velocities: make(map[int]Vec2),
	}
}

// AddMovement records the position of every pointer in ev. A down event
// starts a fresh history.
func (v *VelocityTracker) AddMovement(ev *MotionEvent) {
	if ev.Action == ActionDown {
		v.Clear()
	}
	for _, p := range ev.Pointers {
		r := v.rings[p.ID]
		if r == nil {
			r = &sampleRing{head: -1}
			v.rings[p.ID] = r
		}
		r.add(velocitySample{pos: p.Pos(), t: ev.Time})
	}
}

// Clear drops all samples and computed velocities.
func (v *VelocityTracker) Clear() {
	clear(v.rings)
	clear(v.velocities)
}

// ComputeCurrentVelocity fits every pointer's samples. units scales the
// per-millisecond result (PxPerMs = 1, 1000 for px/s).
func (v *VelocityTracker) ComputeCurrentVelocity(units float64) {
	for id, r := range v.rings {
		vel := r.fit(v.horizon)
		v.velocities[id] = Vec2{vel.X * units, vel.Y * units}
	}
}

// Velocity returns the last computed velocity of pointer id, zero if unknown.
func (v *VelocityTracker) Velocity(id int) Vec2 {
	return v.velocities[id]
}
