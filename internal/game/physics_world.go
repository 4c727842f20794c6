package game

import (
	"github.com/go-gl/mathgl/mgl64"

	"fruitmerge/internal/physics"
)

// ArenaWorld is the physics.World holding the floor and walls, seen through
// the PhysicsWorld interface.
type ArenaWorld struct {
	World *physics.World

	ball   *physics.Material
	ground *physics.Material
	wall   *physics.Material
}

// NewPhysicsWorld builds the arena for cfg: an infinite ground plane at y=0
// and four static walls whose inner faces sit on the floor edge.
func NewPhysicsWorld(cfg Config) *ArenaWorld {
	w := physics.NewWorld()
	w.Gravity = mgl64.Vec3{0, cfg.Gravity, 0}
	if cfg.SolverIterations > 0 {
		w.Iterations = cfg.SolverIterations
	}
	if cfg.Broadphase == BroadphaseQuad {
		w.Broadphase = &physics.QuadBroadphase{}
	}

	a := &ArenaWorld{
		World:  w,
		ball:   &physics.Material{Name: "ball"},
		ground: &physics.Material{Name: "ground"},
		wall:   &physics.Material{Name: "wall"},
	}
	w.AddContactMaterial(physics.ContactMaterial{A: a.ground, B: a.ball, Friction: 0.5, Restitution: 0.5})
	w.AddContactMaterial(physics.ContactMaterial{A: a.ball, B: a.ball, Friction: 0.5, Restitution: 0.5})
	w.AddContactMaterial(physics.ContactMaterial{A: a.wall, B: a.ball, Friction: 0.5, Restitution: 0.7})

	w.AddBody(physics.NewRigidBody(physics.BodyTypeStatic,
		&physics.Plane{Normal: mgl64.Vec3{0, 1, 0}}, a.ground, mgl64.Vec3{}, 0))

	half := cfg.FloorSize / 2
	off := half + cfg.WallThickness/2
	h, t := cfg.WallHeight, cfg.WallThickness
	walls := []struct {
		pos  mgl64.Vec3
		size mgl64.Vec3
	}{
		{mgl64.Vec3{0, h / 2, -off}, mgl64.Vec3{cfg.FloorSize + 2*t, h, t}},
		{mgl64.Vec3{0, h / 2, off}, mgl64.Vec3{cfg.FloorSize + 2*t, h, t}},
		{mgl64.Vec3{off, h / 2, 0}, mgl64.Vec3{t, h, cfg.FloorSize}},
		{mgl64.Vec3{-off, h / 2, 0}, mgl64.Vec3{t, h, cfg.FloorSize}},
	}
	for _, wl := range walls {
		w.AddBody(physics.NewRigidBody(physics.BodyTypeStatic,
			&physics.Box{HalfExtents: wl.size.Mul(0.5)}, a.wall, wl.pos, 0))
	}
	return a
}

func (a *ArenaWorld) AddSphere(s SphereSpec) BodyID {
	b := physics.NewRigidBody(physics.BodyTypeDynamic, &physics.Sphere{Radius: s.Radius}, a.ball, s.Position, s.Mass)
	return BodyID(a.World.AddBody(b))
}

func (a *ArenaWorld) RemoveBody(id BodyID) { a.World.RemoveBody(physics.BodyID(id)) }

func (a *ArenaWorld) Step(fixed, elapsed float64, maxSubSteps int) {
	a.World.Step(fixed, elapsed, maxSubSteps)
}

func (a *ArenaWorld) Transform(id BodyID) (mgl64.Vec3, mgl64.Quat, bool) {
	b, ok := a.World.Body(physics.BodyID(id))
	if !ok {
		return mgl64.Vec3{}, mgl64.Quat{}, false
	}
	return b.Position, b.Orientation, true
}

func (a *ArenaWorld) OnCollide(fn func(self, other BodyID)) {
	a.World.OnCollide(func(self, other physics.BodyID) {
		fn(BodyID(self), BodyID(other))
	})
}
