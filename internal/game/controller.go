package game

import (
	"log"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// TrackedObject pairs one physics body with its mesh. Both are created and
// torn down together.
type TrackedObject struct {
	Body BodyID
	Mesh MeshID
	Tier int
}

// SpawnRequest is a deferred merge product.
type SpawnRequest struct {
	Position mgl64.Vec3
	Tier     int
}

// SpawnRecord describes the most recent spawn for the HUD.
type SpawnRecord struct {
	Position mgl64.Vec3
	Tier     int
	Merged   bool
}

// FrameReport is handed to the reporter at the end of every Tick.
type FrameReport struct {
	Live    int
	Merged  int // merge products spawned this tick
	Removed int // spheres consumed by merges this tick
	Culled  int
}

// Controller runs the merge/spawn/cull bookkeeping on top of a physics world
// and a scene. It is not safe for concurrent use; all calls, including the
// collision callback, must come from the frame loop.
type Controller struct {
	world  PhysicsWorld
	scene  Scene
	events *EventBus
	cfg    Config

	objects []*TrackedObject
	byBody  map[BodyID]*TrackedObject

	removeSet   map[BodyID]struct{}
	removeOrder []BodyID
	spawnQueue  []SpawnRequest

	last     SpawnRecord
	hasLast  bool
	frame    FrameReport
	reporter func(FrameReport)
}

// NewController wires the controller's collision handler into world.
// A nil bus gets a private one.
func NewController(world PhysicsWorld, scene Scene, cfg Config, bus *EventBus) *Controller {
	if bus == nil {
		bus = NewEventBus()
	}
	c := &Controller{
		world:     world,
		scene:     scene,
		events:    bus,
		cfg:       cfg,
		byBody:    make(map[BodyID]*TrackedObject),
		removeSet: make(map[BodyID]struct{}),
	}
	world.OnCollide(c.HandleCollision)
	return c
}

// SetReporter registers the end-of-frame listener.
func (c *Controller) SetReporter(fn func(FrameReport)) { c.reporter = fn }

// Events returns the bus spawn, merge and cull events are published on.
func (c *Controller) Events() *EventBus { return c.events }

// Count returns the number of live tracked spheres.
func (c *Controller) Count() int { return len(c.objects) }

// Objects returns the live objects in spawn order. The slice must not be modified.
func (c *Controller) Objects() []*TrackedObject { return c.objects }

// Lookup returns the tracked object owning body id.
func (c *Controller) Lookup(id BodyID) (*TrackedObject, bool) {
	obj, ok := c.byBody[id]
	return obj, ok
}

// LastSpawn returns the most recent spawn, if any.
func (c *Controller) LastSpawn() (SpawnRecord, bool) { return c.last, c.hasLast }

// Pending reports how many removals and spawns wait for the next Tick.
func (c *Controller) Pending() (removals, spawns int) {
	return len(c.removeOrder), len(c.spawnQueue)
}

// Spawn creates a sphere of the given tier at pos. An out-of-range tier panics.
func (c *Controller) Spawn(pos mgl64.Vec3, tier int) *TrackedObject {
	return c.spawn(pos, tier, false)
}

func (c *Controller) spawn(pos mgl64.Vec3, tier int, merged bool) *TrackedObject {
	bt := Ball(tier)
	body := c.world.AddSphere(SphereSpec{Position: pos, Radius: bt.Radius, Mass: bt.Mass()})
	mesh := c.scene.AddMesh(MeshSpec{Position: pos, Radius: bt.Radius, Color: bt.Color, Tier: tier, Merged: merged})

	obj := &TrackedObject{Body: body, Mesh: mesh, Tier: tier}
	c.objects = append(c.objects, obj)
	c.byBody[body] = obj

	c.last = SpawnRecord{Position: pos, Tier: tier, Merged: merged}
	c.hasLast = true

	typ := EventSpawned
	if merged {
		typ = EventMerged
	}
	c.events.Emit(Event{Type: typ, Pos: pos, Tier: tier})
	return obj
}

// HandleCollision is the physics world's collision callback. Only the
// lower-id body of a same-tier, non-terminal pair enacts the merge, so the
// pair merges once however many times and in whatever order it is reported.
// State changes are queued for the next Tick.
func (c *Controller) HandleCollision(self, other BodyID) {
	a, ok := c.byBody[self]
	if !ok {
		return
	}
	b, ok := c.byBody[other]
	if !ok {
		return
	}
	if IsTerminal(a.Tier) || a.Tier != b.Tier {
		return
	}
	if self >= other {
		return
	}
	if c.isPendingRemoval(self) || c.isPendingRemoval(other) {
		return
	}

	pa, _, okA := c.world.Transform(self)
	pb, _, okB := c.world.Transform(other)
	if !okA || !okB {
		return
	}
	c.spawnQueue = append(c.spawnQueue, SpawnRequest{Position: Midpoint(pa, pb), Tier: a.Tier + 1})
	c.markRemoval(self)
	c.markRemoval(other)
}

func (c *Controller) isPendingRemoval(id BodyID) bool {
	_, ok := c.removeSet[id]
	return ok
}

func (c *Controller) markRemoval(id BodyID) {
	if c.isPendingRemoval(id) {
		return
	}
	c.removeSet[id] = struct{}{}
	c.removeOrder = append(c.removeOrder, id)
}

// Tick runs one frame: drain removals, drain spawns, step physics, cull or
// sync every live object, report, render.
func (c *Controller) Tick(dt float64) {
	c.frame = FrameReport{}

	for _, id := range c.removeOrder {
		obj, ok := c.byBody[id]
		if !ok {
			continue
		}
		pos, _, _ := c.world.Transform(id)
		if c.teardown(id) {
			c.frame.Removed++
			c.events.Emit(Event{Type: EventRemoved, Pos: pos, Tier: obj.Tier})
		}
	}
	clear(c.removeSet)
	c.removeOrder = c.removeOrder[:0]

	for _, req := range c.spawnQueue {
		obj := c.spawn(req.Position, req.Tier, true)
		c.frame.Merged++
		log.Printf("merge: tier %d -> %d at (%.2f, %.2f, %.2f)",
			obj.Tier-1, obj.Tier, req.Position.X(), req.Position.Y(), req.Position.Z())
	}
	c.spawnQueue = c.spawnQueue[:0]

	c.world.Step(FixedStep, dt, MaxSubSteps)

	for i := len(c.objects) - 1; i >= 0; i-- {
		obj := c.objects[i]
		pos, rot, ok := c.world.Transform(obj.Body)
		if !ok {
			c.teardown(obj.Body)
			continue
		}
		if c.cfg.OutOfBounds(pos) {
			c.teardown(obj.Body)
			c.frame.Culled++
			c.events.Emit(Event{Type: EventCulled, Pos: pos, Tier: obj.Tier})
			log.Printf("cull: tier %d at (%.2f, %.2f, %.2f)", obj.Tier, pos.X(), pos.Y(), pos.Z())
			continue
		}
		c.scene.SetTransform(obj.Mesh, pos, rot)
	}

	c.frame.Live = len(c.objects)
	if c.reporter != nil {
		c.reporter(c.frame)
	}
	c.scene.Render()
}

// teardown removes the object owning id from the scene, the world and the
// tracking structures. It reports false if id was already gone.
func (c *Controller) teardown(id BodyID) bool {
	obj, ok := c.byBody[id]
	if !ok {
		return false
	}
	c.scene.RemoveMesh(obj.Mesh)
	c.world.RemoveBody(obj.Body)
	delete(c.byBody, id)
	if i := slices.Index(c.objects, obj); i >= 0 {
		c.objects = slices.Delete(c.objects, i, i+1)
	}
	return true
}

// Remove tears down the object owning id immediately. Unknown ids are ignored.
func (c *Controller) Remove(id BodyID) bool {
	return c.teardown(id)
}

// Reset tears down every tracked object and drops anything queued.
func (c *Controller) Reset() {
	for len(c.objects) > 0 {
		c.teardown(c.objects[len(c.objects)-1].Body)
	}
	clear(c.removeSet)
	c.removeOrder = c.removeOrder[:0]
	c.spawnQueue = c.spawnQueue[:0]
	c.hasLast = false
	c.events.Emit(Event{Type: EventReset})
}

// OutOfBounds reports whether pos has fallen past the walls: outside the
// outer wall face on either horizontal axis and below OutOfBoundsHeight.
func (c Config) OutOfBounds(pos mgl64.Vec3) bool {
	limit := c.BoundsLimit()
	return (math.Abs(pos.X()) > limit || math.Abs(pos.Z()) > limit) && pos.Y() < OutOfBoundsHeight
}
