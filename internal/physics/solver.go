package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// Closing speeds below this do not bounce.
	restitutionThreshold = 0.5

	correctionPercent = 0.8
	correctionSlop    = 0.005
)

// prepare computes the restitution target and clears warm-start state.
func (c *Contact) prepare() {
	vrel := c.B.pointVelocity(c.RB).Sub(c.A.pointVelocity(c.RA))
	vn := vrel.Dot(c.Normal)
	c.bias = 0
	if -vn > restitutionThreshold {
		c.bias = -c.Restitution * vn
	}
	c.jn, c.jt = 0, 0
}

func (c *Contact) effectiveMass(dir mgl64.Vec3) float64 {
	k := c.A.invMass + c.B.invMass
	ra := c.RA.Cross(dir)
	rb := c.RB.Cross(dir)
	k += ra.Dot(ra)*c.A.invInertia + rb.Dot(rb)*c.B.invInertia
	if k == 0 {
		return 0
	}
	return 1 / k
}

// solve runs one sequential-impulse pass over c. Accumulated impulses are
// clamped so the normal impulse never pulls and friction stays inside the
// Coulomb cone.
func (c *Contact) solve() {
	n := c.Normal
	vrel := c.B.pointVelocity(c.RB).Sub(c.A.pointVelocity(c.RA))
	vn := vrel.Dot(n)

	m := c.effectiveMass(n)
	if m == 0 {
		return
	}
	dj := m * (c.bias - vn)
	prev := c.jn
	c.jn = math.Max(prev+dj, 0)
	dj = c.jn - prev
	c.apply(n.Mul(dj))

	// Friction along the sliding direction.
	vrel = c.B.pointVelocity(c.RB).Sub(c.A.pointVelocity(c.RA))
	vt := vrel.Sub(n.Mul(vrel.Dot(n)))
	speed := vt.Len()
	if speed < 1e-9 {
		return
	}
	t := vt.Mul(1 / speed)
	mt := c.effectiveMass(t)
	dt := -mt * speed
	limit := c.Friction * c.jn
	prev = c.jt
	c.jt = math.Max(-limit, math.Min(prev+dt, limit))
	dt = c.jt - prev
	c.apply(t.Mul(dt))
}

// apply pushes B along j and A against it.
func (c *Contact) apply(j mgl64.Vec3) {
	c.A.applyImpulse(j.Mul(-1), c.RA)
	c.B.applyImpulse(j, c.RB)
}

// correct removes leftover penetration by moving positions directly.
func (c *Contact) correct() {
	total := c.A.invMass + c.B.invMass
	if total == 0 {
		return
	}
	depth := c.Depth - correctionSlop
	if depth <= 0 {
		return
	}
	push := c.Normal.Mul(depth * correctionPercent / total)
	if !c.A.IsStatic() {
		c.A.Position = c.A.Position.Sub(push.Mul(c.A.invMass))
	}
	if !c.B.IsStatic() {
		c.B.Position = c.B.Position.Add(push.Mul(c.B.invMass))
	}
}

func solveContacts(contacts []Contact, iterations int) {
	for i := range contacts {
		contacts[i].prepare()
	}
	for it := 0; it < iterations; it++ {
		for i := range contacts {
			contacts[i].solve()
		}
	}
}
