package fx

import (
	"math"
	"math/rand"

	"github.com/decker502/glassfx/internal/particle"
	"github.com/decker502/glassfx/pkg/components"
	"github.com/decker502/glassfx/pkg/config"
)

// SimStats counts particle lifecycle events since creation or the last Reset.
type SimStats struct {
	Emitted int // particles created by Emit
	Evicted int // oldest particles overwritten or trimmed because of capacity
	Expired int // particles removed by Cull because their life ran out
}

// ParticleSimulator owns the particles of one FX instance.
//
// Particles live in a fixed-capacity ring buffer in emission order. Emitting into a
// full ring overwrites the oldest particle. Cull compacts the ring in place, so no
// per-frame allocation happens once the buffer is sized.
type ParticleSimulator struct {
	buf   []components.Particle
	head  int // physical index of the oldest particle
	n     int // live particle count
	limit int // logical capacity, <= len(buf)

	epsilon float64
	physics config.PhysicsConfig
	hover   particle.Profile
	burst   particle.Profile
	color   config.RGB
	rng     *rand.Rand

	stats SimStats
}

// NewParticleSimulator creates a simulator sized by cfg.Capacity.
// Every particle it emits carries color.
func NewParticleSimulator(cfg *config.FXConfig, color config.RGB, rng *rand.Rand) *ParticleSimulator {
	return &ParticleSimulator{
		buf:     make([]components.Particle, cfg.Capacity),
		limit:   cfg.Capacity,
		epsilon: cfg.Epsilon,
		physics: cfg.Physics,
		hover:   cfg.HoverProfile(),
		burst:   cfg.BurstProfile(),
		color:   color,
		rng:     rng,
	}
}

// Emit creates one particle at (x, y).
//
// The launch angle is uniform over the full circle. burst selects the high-energy
// profile (faster, bigger, stronger upward lift) used by activation; otherwise the
// hover profile is used. Life and MaxLife are sampled independently, so a particle
// may start below full opacity.
func (s *ParticleSimulator) Emit(x, y, baseSize float64, burst bool) {
	prof := s.hover
	if burst {
		prof = s.burst
	}

	angle := s.rng.Float64() * 2 * math.Pi
	speed := prof.Speed.Sample(s.rng)
	p := components.Particle{
		X:       x,
		Y:       y,
		VX:      math.Cos(angle) * speed * s.physics.VelocityScale,
		VY:      math.Sin(angle)*speed*s.physics.VelocityScale - prof.Lift.Sample(s.rng),
		Life:    s.physics.Life.Sample(s.rng),
		MaxLife: s.physics.Life.Sample(s.rng),
		Size:    baseSize * prof.SizeScale.Sample(s.rng),
		Color:   s.color,
	}
	s.push(p)
}

// push appends p, overwriting the oldest particle when the ring is full.
func (s *ParticleSimulator) push(p components.Particle) {
	s.stats.Emitted++
	if s.limit == 0 {
		s.stats.Evicted++
		return
	}
	if s.n >= s.limit {
		// Drop oldest until there is room (more than one only after a capacity shrink).
		for s.n >= s.limit {
			s.head = (s.head + 1) % len(s.buf)
			s.n--
			s.stats.Evicted++
		}
	}
	s.buf[(s.head+s.n)%len(s.buf)] = p
	s.n++
}

// Update integrates every live particle by dt seconds.
//
// Horizontal velocity decays exponentially, gravity accelerates the vertical
// velocity, positions advance in units of UnitScale pixels per second and life
// decays at DecayRate. Life never increases for dt >= 0.
func (s *ParticleSimulator) Update(dt float64) {
	if dt <= 0 || s.n == 0 {
		return
	}
	ph := &s.physics
	drag := 1 - ph.Drag*dt
	for i := 0; i < s.n; i++ {
		p := &s.buf[(s.head+i)%len(s.buf)]
		p.VX *= drag
		p.VY += ph.Gravity * dt
		p.X += p.VX * ph.UnitScale * dt
		p.Y += p.VY * ph.UnitScale * dt
		p.Life -= dt * ph.DecayRate
	}
}

// Cull trims the ring to capacity (oldest first) and then removes every particle
// whose life is at or below epsilon, keeping emission order. It returns the number
// of particles removed.
func (s *ParticleSimulator) Cull() int {
	removed := 0
	for s.n > s.limit {
		s.head = (s.head + 1) % len(s.buf)
		s.n--
		s.stats.Evicted++
		removed++
	}

	w := 0
	for r := 0; r < s.n; r++ {
		p := s.buf[(s.head+r)%len(s.buf)]
		if p.Life <= s.epsilon {
			continue
		}
		if w != r {
			s.buf[(s.head+w)%len(s.buf)] = p
		}
		w++
	}
	expired := s.n - w
	s.n = w
	s.stats.Expired += expired
	return removed + expired
}

// SetCapacity changes the logical capacity. Growing reallocates the ring
// immediately; shrinking takes effect at the next Emit or Cull.
func (s *ParticleSimulator) SetCapacity(capacity int) {
	if capacity < 0 {
		capacity = 0
	}
	if capacity > len(s.buf) {
		buf := make([]components.Particle, capacity)
		for i := 0; i < s.n; i++ {
			buf[i] = s.buf[(s.head+i)%len(s.buf)]
		}
		s.buf = buf
		s.head = 0
	}
	s.limit = capacity
}

// Len returns the number of live particles.
func (s *ParticleSimulator) Len() int {
	return s.n
}

// Cap returns the logical capacity.
func (s *ParticleSimulator) Cap() int {
	return s.limit
}

// At returns the i-th particle in emission order (0 = oldest).
func (s *ParticleSimulator) At(i int) components.Particle {
	if i < 0 || i >= s.n {
		panic("fx: particle index out of range")
	}
	return s.buf[(s.head+i)%len(s.buf)]
}

// Each calls fn for every live particle, oldest first. fn must not emit or cull.
func (s *ParticleSimulator) Each(fn func(p *components.Particle)) {
	for i := 0; i < s.n; i++ {
		fn(&s.buf[(s.head+i)%len(s.buf)])
	}
}

// Reset drops every particle and clears the counters.
func (s *ParticleSimulator) Reset() {
	s.head, s.n = 0, 0
	s.stats = SimStats{}
}

// Stats returns the lifecycle counters.
func (s *ParticleSimulator) Stats() SimStats {
	return s.stats
}
