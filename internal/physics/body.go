package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyID is unique per world and never reused.
type BodyID uint64

type BodyType int

const (
	BodyTypeDynamic BodyType = iota
	BodyTypeStatic
)

// Shape is one of *Sphere, *Box or *Plane.
type Shape interface {
	// Bounds returns the shape's AABB when centred at pos. Planes are unbounded.
	Bounds(pos mgl64.Vec3) (min, max mgl64.Vec3, bounded bool)
}

type Sphere struct {
	Radius float64
}

func (s *Sphere) Bounds(pos mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3, bool) {
	r := mgl64.Vec3{s.Radius, s.Radius, s.Radius}
	return pos.Sub(r), pos.Add(r), true
}

// Box is axis-aligned; body orientation is ignored for collision.
type Box struct {
	HalfExtents mgl64.Vec3
}

func (b *Box) Bounds(pos mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3, bool) {
	return pos.Sub(b.HalfExtents), pos.Add(b.HalfExtents), true
}

// Plane is the half-space boundary {p : Normal·p = Distance}; the solid side
// is opposite Normal.
type Plane struct {
	Normal   mgl64.Vec3
	Distance float64
}

func (p *Plane) Bounds(mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3, bool) {
	return mgl64.Vec3{}, mgl64.Vec3{}, false
}

// Material tags a body for contact-material lookup.
type Material struct {
	Name string
}

type RigidBody struct {
	ID       BodyID
	Type     BodyType
	Shape    Shape
	Material *Material

	Position        mgl64.Vec3
	Orientation     mgl64.Quat
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3

	Mass           float64
	LinearDamping  float64
	AngularDamping float64

	invMass    float64
	invInertia float64 // scalar: spheres only rotate about their centre
}

// NewRigidBody builds a body at pos. Static bodies and non-positive masses
// get infinite mass.
func NewRigidBody(typ BodyType, shape Shape, material *Material, pos mgl64.Vec3, mass float64) *RigidBody {
	b := &RigidBody{
		Type:           typ,
		Shape:          shape,
		Material:       material,
		Position:       pos,
		Orientation:    mgl64.QuatIdent(),
		Mass:           mass,
		LinearDamping:  0.01,
		AngularDamping: 0.01,
	}
	if typ == BodyTypeStatic || mass <= 0 {
		b.Type = BodyTypeStatic
		b.Mass = 0
		return b
	}
	b.invMass = 1 / mass
	if s, ok := shape.(*Sphere); ok && s.Radius > 0 {
		b.invInertia = 1 / (0.4 * mass * s.Radius * s.Radius)
	}
	return b
}

func (b *RigidBody) IsStatic() bool { return b.Type == BodyTypeStatic }

func (b *RigidBody) InverseMass() float64 { return b.invMass }

// applyForces adds gravity and damping to the velocities.
func (b *RigidBody) applyForces(dt float64, gravity mgl64.Vec3) {
	if b.IsStatic() {
		return
	}
	b.Velocity = b.Velocity.Add(gravity.Mul(dt))
	b.Velocity = b.Velocity.Mul(math.Pow(1-b.LinearDamping, dt))
	b.AngularVelocity = b.AngularVelocity.Mul(math.Pow(1-b.AngularDamping, dt))
}

// integrate advances position and orientation from the current velocities.
func (b *RigidBody) integrate(dt float64) {
	if b.IsStatic() {
		return
	}
	b.Position = b.Position.Add(b.Velocity.Mul(dt))
	w := b.AngularVelocity
	if w.Dot(w) == 0 {
		return
	}
	spin := mgl64.Quat{W: 0, V: w}.Mul(b.Orientation).Scale(0.5 * dt)
	b.Orientation = b.Orientation.Add(spin).Normalize()
}

func (b *RigidBody) applyImpulse(j, r mgl64.Vec3) {
	if b.IsStatic() {
		return
	}
	b.Velocity = b.Velocity.Add(j.Mul(b.invMass))
	b.AngularVelocity = b.AngularVelocity.Add(r.Cross(j).Mul(b.invInertia))
}

// pointVelocity is the velocity of the body point at offset r from its centre.
func (b *RigidBody) pointVelocity(r mgl64.Vec3) mgl64.Vec3 {
	return b.Velocity.Add(b.AngularVelocity.Cross(r))
}
