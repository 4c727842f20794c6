package game

import "math"

const (
	particleGravity   = 9.82
	particleBounce    = 0.35
	particleFloorFric = 0.6
	particleAirDrag   = 1.2
)

// particleDecays holds exponential drag factors precomputed once per frame.
// Avoids calling math.Exp() inside the per-particle hot loop.
type particleDecays struct {
	spark float64 // exp(-particleAirDrag * dt)
	glow  float64 // exp(-3.0 * dt)
	dust  float64 // exp(-1.5 * dt)
}

func computeDecays(dt float64) particleDecays {
	return particleDecays{
		spark: math.Exp(-particleAirDrag * dt),
		glow:  math.Exp(-3.0 * dt),
		dust:  math.Exp(-1.5 * dt),
	}
}

// Update advances particles and drops expired ones. floorHalf bounds the
// square the sparks bounce on; outside it they keep falling.
func (ps *ParticleSystem) Update(dt, floorHalf float64) {
	if dt <= 0 {
		return
	}

	d := computeDecays(dt)

	for i := 0; i < len(ps.P); {
		p := &ps.P[i]

		p.Life += dt
		if p.Life >= p.MaxLife {
			ps.P[i] = ps.P[len(ps.P)-1]
			ps.P = ps.P[:len(ps.P)-1]
			continue
		}

		// Skip delayed particles.
		if p.Life < 0 {
			i++
			continue
		}

		switch p.Kind {
		case ParticleGlow:
			p.VX *= d.glow
			p.VY *= d.glow
			p.VZ *= d.glow
		case ParticleDust:
			p.VX *= d.dust
			p.VY *= d.dust
			p.VZ *= d.dust
		default:
			p.VX *= d.spark
			p.VZ *= d.spark
			p.VY -= particleGravity * dt
		}

		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.Z += p.VZ * dt

		if p.Kind == ParticleSpark && p.Y < 0 && math.Abs(p.X) <= floorHalf && math.Abs(p.Z) <= floorHalf {
			p.Y = 0
			p.VY = -p.VY * particleBounce
			p.VX *= particleFloorFric
			p.VZ *= particleFloorFric
		}

		i++
	}
}

// Alive returns the number of particles still in flight.
func (ps *ParticleSystem) Alive() int { return len(ps.P) }
