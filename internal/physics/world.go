// Package physics is a small rigid-body world for spheres resting on planes
// and axis-aligned boxes. It steps at a fixed rate with an accumulator and
// reports touching pairs through a collide callback.
package physics

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

type World struct {
	Gravity    mgl64.Vec3
	Iterations int
	Broadphase Broadphase

	bodies []*RigidBody
	byID   map[BodyID]*RigidBody
	nextID BodyID

	materials   contactTable
	accumulator float64
	time        float64

	onCollide func(self, other BodyID)
	stepping  bool
	removed   []BodyID

	pairs    []Pair
	contacts []Contact
}

// NewWorld returns an empty world with cannon-like defaults: earth gravity,
// ten solver iterations and the naive broadphase.
func NewWorld() *World {
	return &World{
		Gravity:    mgl64.Vec3{0, -9.82, 0},
		Iterations: 10,
		Broadphase: NaiveBroadphase{},
		byID:       make(map[BodyID]*RigidBody),
		materials:  make(contactTable),
	}
}

func (w *World) AddContactMaterial(cm ContactMaterial) { w.materials.add(cm) }

// AddBody assigns b a fresh id and adds it to the simulation.
func (w *World) AddBody(b *RigidBody) BodyID {
	w.nextID++
	b.ID = w.nextID
	w.bodies = append(w.bodies, b)
	w.byID[b.ID] = b
	return b.ID
}

// RemoveBody drops id. Unknown ids are ignored. Removal from inside the
// collide callback takes effect once the current sub-step ends.
func (w *World) RemoveBody(id BodyID) {
	if w.stepping {
		w.removed = append(w.removed, id)
		return
	}
	b, ok := w.byID[id]
	if !ok {
		return
	}
	delete(w.byID, id)
	if i := slices.Index(w.bodies, b); i >= 0 {
		w.bodies = slices.Delete(w.bodies, i, i+1)
	}
}

func (w *World) Body(id BodyID) (*RigidBody, bool) {
	b, ok := w.byID[id]
	return b, ok
}

// Bodies returns the live bodies in insertion order. The slice must not be modified.
func (w *World) Bodies() []*RigidBody { return w.bodies }

// Time is the total simulated time.
func (w *World) Time() float64 { return w.time }

// OnCollide registers the contact listener. It fires once per touching pair
// per sub-step for each dynamic side: a dynamic pair reports (a, b) and
// (b, a), a dynamic-static pair reports only (dynamic, static).
func (w *World) OnCollide(fn func(self, other BodyID)) { w.onCollide = fn }

// Step advances by elapsed seconds in sub-steps of fixed, running at most
// maxSubSteps of them. Time that cannot be caught up is dropped. It returns
// the number of sub-steps taken.
func (w *World) Step(fixed, elapsed float64, maxSubSteps int) int {
	if fixed <= 0 {
		return 0
	}
	if maxSubSteps < 1 {
		maxSubSteps = 1
	}
	w.accumulator += math.Max(elapsed, 0)
	n := 0
	for w.accumulator >= fixed && n < maxSubSteps {
		w.internalStep(fixed)
		w.accumulator -= fixed
		n++
	}
	w.accumulator = math.Mod(w.accumulator, fixed)
	return n
}

func (w *World) internalStep(dt float64) {
	for _, b := range w.bodies {
		b.applyForces(dt, w.Gravity)
	}

	w.pairs = w.Broadphase.Pairs(w.bodies, w.pairs[:0])
	w.contacts = w.contacts[:0]
	for _, p := range w.pairs {
		c, ok := collide(p.A, p.B)
		if !ok {
			continue
		}
		cm := w.materials.lookup(c.A.Material, c.B.Material)
		c.Friction, c.Restitution = cm.Friction, cm.Restitution
		w.contacts = append(w.contacts, c)
	}

	w.stepping = true
	if w.onCollide != nil {
		for i := range w.contacts {
			a, b := w.contacts[i].A, w.contacts[i].B
			w.onCollide(a.ID, b.ID)
			if !b.IsStatic() {
				w.onCollide(b.ID, a.ID)
			}
		}
	}
	w.stepping = false

	solveContacts(w.contacts, w.Iterations)
	for _, b := range w.bodies {
		b.integrate(dt)
	}
	for i := range w.contacts {
		w.contacts[i].correct()
	}
	w.time += dt

	if len(w.removed) > 0 {
		removed := w.removed
		w.removed = nil
		for _, id := range removed {
			w.RemoveBody(id)
		}
	}
}
