package game

import "github.com/go-gl/mathgl/mgl64"

// BodyID is the physics world's numeric body identity. Merge tie-breaks
// compare these, so they must be unique and stable for a body's lifetime.
type BodyID uint64

// MeshID identifies a visual object inside a Scene.
type MeshID uint64

// SphereSpec describes a dynamic sphere to add to the physics world.
type SphereSpec struct {
	Position mgl64.Vec3
	Radius   float64
	Mass     float64
}

// PhysicsWorld is the rigid-body simulation the controller drives.
// Collision callbacks are delivered synchronously from inside Step.
type PhysicsWorld interface {
	AddSphere(spec SphereSpec) BodyID
	// RemoveBody ignores unknown ids.
	RemoveBody(id BodyID)
	// Step advances by fixed sub-steps to catch up with elapsed wall-clock
	// time, running at most maxSubSteps of them.
	Step(fixed, elapsed float64, maxSubSteps int)
	Transform(id BodyID) (pos mgl64.Vec3, rot mgl64.Quat, ok bool)
	// OnCollide registers the single collision handler. It may fire for both
	// orderings of a pair and more than once per step.
	OnCollide(fn func(self, other BodyID))
}

// MeshSpec describes a sphere mesh to add to a Scene.
type MeshSpec struct {
	Position mgl64.Vec3
	Radius   float64
	Color    RGB
	Tier     int
	Merged   bool // created by a merge rather than a random drop
}

// Animator is implemented by scenes with time-driven effects such as the
// merge pop-in. The loop calls Animate once per running frame, never while
// paused.
type Animator interface {
	Animate(dt float64)
}

// Scene receives visual objects and their per-frame transforms.
type Scene interface {
	AddMesh(spec MeshSpec) MeshID
	// RemoveMesh detaches the mesh and releases its resources. Unknown ids
	// are ignored.
	RemoveMesh(id MeshID)
	SetTransform(id MeshID, pos mgl64.Vec3, rot mgl64.Quat)
	Render()
}
