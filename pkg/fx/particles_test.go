package fx

import (
	"math"
	"testing"

	"github.com/decker502/glassfx/pkg/components"
	"github.com/decker502/glassfx/pkg/config"
)

// TestParticleSimulator_EmitBurstRanges verifies burst particles fall inside the
// configured ranges.
func TestParticleSimulator_EmitBurstRanges(t *testing.T) {
	sim := newTestSimulator(1)

	for i := 0; i < 200; i++ {
		sim.Emit(50, 50, 4, true)
		p := sim.At(sim.Len() - 1)

		if p.X != 50 || p.Y != 50 {
			t.Fatalf("position = (%v,%v), want (50,50)", p.X, p.Y)
		}
		if p.Size < 6.4 || p.Size >= 15.2 {
			t.Errorf("size = %v, want [6.4, 15.2)", p.Size)
		}
		if p.Life < 0.85 || p.Life >= 1.45 {
			t.Errorf("life = %v, want [0.85, 1.45)", p.Life)
		}
		if p.MaxLife < 0.85 || p.MaxLife >= 1.45 {
			t.Errorf("maxLife = %v, want [0.85, 1.45)", p.MaxLife)
		}
		if p.Color != config.PaletteAmber.RGB() {
			t.Errorf("color = %v, want amber", p.Color)
		}
		// Undo the upward bias to recover the launch speed.
		speed := math.Hypot(p.VX, p.VY+0.5) / 0.01
		if speed < 120-1e-6 || speed >= 300+1e-6 {
			t.Errorf("launch speed = %v, want [120, 300)", speed)
		}
	}
}

// TestParticleSimulator_EmitHoverRanges verifies hover particles use the
// low-energy profile.
func TestParticleSimulator_EmitHoverRanges(t *testing.T) {
	sim := newTestSimulator(2)

	for i := 0; i < 200; i++ {
		sim.Emit(10, 20, 1, false)
		p := sim.At(sim.Len() - 1)

		if p.Size < 0.6 || p.Size >= 2.0 {
			t.Errorf("size = %v, want [0.6, 2.0)", p.Size)
		}
		speed := math.Hypot(p.VX, p.VY+0.1) / 0.01
		if speed < 30-1e-6 || speed >= 90+1e-6 {
			t.Errorf("launch speed = %v, want [30, 90)", speed)
		}
	}
}

// TestParticleSimulator_LifeAndMaxLifeIndependent verifies the two draws differ.
func TestParticleSimulator_LifeAndMaxLifeIndependent(t *testing.T) {
	sim := newTestSimulator(3)
	differ := 0
	for i := 0; i < 50; i++ {
		sim.Emit(0, 0, 1, true)
		p := sim.At(sim.Len() - 1)
		if p.Life != p.MaxLife {
			differ++
		}
	}
	if differ == 0 {
		t.Error("life and maxLife were always equal; expected independent draws")
	}
}

// TestParticleSimulator_UpdatePhysics verifies one integration step.
func TestParticleSimulator_UpdatePhysics(t *testing.T) {
	sim := newTestSimulator(4)
	sim.Emit(100, 100, 2, true)
	before := sim.At(0)

	const dt = 0.016
	sim.Update(dt)
	after := sim.At(0)

	wantVX := before.VX * (1 - 0.05*dt)
	wantVY := before.VY + 9.8*0.02*dt
	tests := []struct {
		name      string
		got, want float64
	}{
		{"vx", after.VX, wantVX},
		{"vy", after.VY, wantVY},
		{"x", after.X, before.X + wantVX*60*dt},
		{"y", after.Y, before.Y + wantVY*60*dt},
		{"life", after.Life, before.Life - dt*0.9},
		{"maxLife", after.MaxLife, before.MaxLife},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-12 {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

// TestParticleSimulator_LifeStrictlyDecreases verifies life decreases every tick
// with dt > 0 and never increases with dt == 0.
func TestParticleSimulator_LifeStrictlyDecreases(t *testing.T) {
	sim := newTestSimulator(5)
	for i := 0; i < 20; i++ {
		sim.Emit(0, 0, 1, i%2 == 0)
	}

	prev := make([]float64, sim.Len())
	for i := range prev {
		prev[i] = sim.At(i).Life
	}
	for tick := 0; tick < 30; tick++ {
		sim.Update(0.016)
		for i := range prev {
			life := sim.At(i).Life
			if life >= prev[i] {
				t.Fatalf("tick %d: particle %d life %v did not decrease from %v", tick, i, life, prev[i])
			}
			prev[i] = life
		}
	}

	sim.Update(0)
	for i := range prev {
		if sim.At(i).Life != prev[i] {
			t.Errorf("dt=0 changed life of particle %d", i)
		}
	}
}

// TestParticleSimulator_CullRemovesExpired verifies particles at or below epsilon
// are gone after Cull and the rest keep their order.
func TestParticleSimulator_CullRemovesExpired(t *testing.T) {
	sim := newTestSimulator(6)
	for i := 0; i < 6; i++ {
		sim.Emit(float64(i), 0, 1, false)
	}
	// Force lives: expired, alive, exactly epsilon, alive, negative, alive.
	lives := []float64{0.01, 0.5, 0.02, 0.8, -0.1, 1.0}
	i := 0
	sim.Each(func(p *components.Particle) {
		p.Life = lives[i]
		i++
	})

	removed := sim.Cull()
	if removed != 3 {
		t.Errorf("Cull() removed %d, want 3", removed)
	}
	if sim.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", sim.Len())
	}
	for k, wantX := range []float64{1, 3, 5} {
		if got := sim.At(k).X; got != wantX {
			t.Errorf("particle %d X = %v, want %v (order preserved)", k, got, wantX)
		}
	}
	if sim.Stats().Expired != 3 {
		t.Errorf("Stats().Expired = %d, want 3", sim.Stats().Expired)
	}
}

// TestParticleSimulator_CapacityEvictsOldest verifies 400 emits followed by a cull
// leave the newest 300.
func TestParticleSimulator_CapacityEvictsOldest(t *testing.T) {
	sim := newTestSimulator(7)
	for i := 0; i < 400; i++ {
		sim.Emit(float64(i), 0, 1, true)
	}
	sim.Cull()

	if sim.Len() != 300 {
		t.Fatalf("Len() = %d, want 300", sim.Len())
	}
	if got := sim.At(0).X; got != 100 {
		t.Errorf("oldest remaining X = %v, want 100", got)
	}
	if got := sim.At(299).X; got != 399 {
		t.Errorf("newest X = %v, want 399", got)
	}
	st := sim.Stats()
	if st.Emitted != 400 || st.Evicted != 100 {
		t.Errorf("Stats() = %+v, want emitted 400 evicted 100", st)
	}
}

// TestParticleSimulator_NeverExceedsCapacity verifies the bound holds across
// mixed emission and culling, including after the ring wraps.
func TestParticleSimulator_NeverExceedsCapacity(t *testing.T) {
	sim := newTestSimulator(8)
	for frame := 0; frame < 120; frame++ {
		for i := 0; i < 37; i++ {
			sim.Emit(0, 0, 1, true)
		}
		sim.Update(0.032)
		sim.Cull()
		if sim.Len() > 300 {
			t.Fatalf("frame %d: Len() = %d exceeds capacity", frame, sim.Len())
		}
	}
}

// TestParticleSimulator_ShrinkCapacityTrimsOnCull verifies a capacity shrink is
// applied oldest-first at the next Cull.
func TestParticleSimulator_ShrinkCapacityTrimsOnCull(t *testing.T) {
	sim := newTestSimulator(9)
	for i := 0; i < 10; i++ {
		sim.Emit(float64(i), 0, 1, false)
	}
	sim.SetCapacity(4)
	if sim.Len() != 10 {
		t.Fatalf("shrink should be lazy, Len() = %d", sim.Len())
	}
	if removed := sim.Cull(); removed != 6 {
		t.Errorf("Cull() removed %d, want 6", removed)
	}
	if sim.Len() != 4 || sim.At(0).X != 6 {
		t.Errorf("after trim Len=%d oldest X=%v, want 4 and 6", sim.Len(), sim.At(0).X)
	}

	sim.SetCapacity(8)
	for i := 10; i < 14; i++ {
		sim.Emit(float64(i), 0, 1, false)
	}
	if sim.Len() != 8 || sim.At(0).X != 6 || sim.At(7).X != 13 {
		t.Errorf("after grow Len=%d first=%v last=%v", sim.Len(), sim.At(0).X, sim.At(sim.Len()-1).X)
	}
}

// TestParticleSimulator_Reset verifies Reset drops everything.
func TestParticleSimulator_Reset(t *testing.T) {
	sim := newTestSimulator(10)
	sim.Emit(0, 0, 1, true)
	sim.Reset()
	if sim.Len() != 0 || sim.Stats() != (SimStats{}) {
		t.Errorf("after Reset Len=%d stats=%+v", sim.Len(), sim.Stats())
	}
	if sim.Cap() != 300 {
		t.Errorf("Cap() = %d, want 300", sim.Cap())
	}
}
