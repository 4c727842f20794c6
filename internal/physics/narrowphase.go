package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Contact is one touching pair. Normal points from A into B; A is always a
// dynamic sphere.
type Contact struct {
	A, B   *RigidBody
	Normal mgl64.Vec3
	Depth  float64

	// Offsets from each centre to the contact point.
	RA, RB mgl64.Vec3

	Friction    float64
	Restitution float64

	bias, jn, jt float64
}

var up = mgl64.Vec3{0, 1, 0}

// collide runs the narrow-phase test for a and b. Only sphere-against-any
// pairs are supported; others never touch.
func collide(a, b *RigidBody) (Contact, bool) {
	sa, okA := a.Shape.(*Sphere)
	sb, okB := b.Shape.(*Sphere)
	switch {
	case okA && okB:
		return sphereSphere(a, b, sa, sb)
	case okA:
		return sphereShape(a, sa, b)
	case okB:
		return sphereShape(b, sb, a)
	}
	return Contact{}, false
}

func sphereShape(a *RigidBody, s *Sphere, b *RigidBody) (Contact, bool) {
	switch shape := b.Shape.(type) {
	case *Plane:
		return spherePlane(a, s, b, shape)
	case *Box:
		return sphereBox(a, s, b, shape)
	}
	return Contact{}, false
}

func sphereSphere(a, b *RigidBody, sa, sb *Sphere) (Contact, bool) {
	d := b.Position.Sub(a.Position)
	dist2 := d.Dot(d)
	rs := sa.Radius + sb.Radius
	if dist2 >= rs*rs {
		return Contact{}, false
	}
	dist := math.Sqrt(dist2)
	n := up
	if dist > 1e-9 {
		n = d.Mul(1 / dist)
	}
	// Keep the dynamic body as A.
	if a.IsStatic() && !b.IsStatic() {
		a, b, sa, sb = b, a, sb, sa
		n = n.Mul(-1)
	}
	return Contact{
		A: a, B: b,
		Normal: n,
		Depth:  rs - dist,
		RA:     n.Mul(sa.Radius),
		RB:     n.Mul(-sb.Radius),
	}, true
}

func spherePlane(a *RigidBody, s *Sphere, b *RigidBody, p *Plane) (Contact, bool) {
	dist := p.Normal.Dot(a.Position) - p.Distance
	if dist >= s.Radius {
		return Contact{}, false
	}
	n := p.Normal.Mul(-1)
	point := a.Position.Add(n.Mul(s.Radius))
	return Contact{
		A: a, B: b,
		Normal: n,
		Depth:  s.Radius - dist,
		RA:     n.Mul(s.Radius),
		RB:     point.Sub(b.Position),
	}, true
}

func sphereBox(a *RigidBody, s *Sphere, b *RigidBody, box *Box) (Contact, bool) {
	lo, hi, _ := box.Bounds(b.Position)
	c := a.Position
	closest := mgl64.Vec3{
		math.Max(lo.X(), math.Min(c.X(), hi.X())),
		math.Max(lo.Y(), math.Min(c.Y(), hi.Y())),
		math.Max(lo.Z(), math.Min(c.Z(), hi.Z())),
	}
	d := closest.Sub(c)
	dist2 := d.Dot(d)

	if dist2 > 1e-12 {
		if dist2 >= s.Radius*s.Radius {
			return Contact{}, false
		}
		dist := math.Sqrt(dist2)
		n := d.Mul(1 / dist)
		return Contact{
			A: a, B: b,
			Normal: n,
			Depth:  s.Radius - dist,
			RA:     n.Mul(s.Radius),
			RB:     closest.Sub(b.Position),
		}, true
	}

	// Centre inside the box: push out through the nearest face.
	rel := c.Sub(b.Position)
	best := math.Inf(1)
	var n mgl64.Vec3
	for i := 0; i < 3; i++ {
		pen := box.HalfExtents[i] - math.Abs(rel[i])
		if pen < best {
			best = pen
			n = mgl64.Vec3{}
			if rel[i] >= 0 {
				n[i] = -1
			} else {
				n[i] = 1
			}
		}
	}
	return Contact{
		A: a, B: b,
		Normal: n,
		Depth:  best + s.Radius,
		RA:     n.Mul(s.Radius),
		RB:     c.Sub(b.Position),
	}, true
}
