package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

type fakeBody struct {
	pos mgl64.Vec3
	rot mgl64.Quat
}

// fakeWorld lets tests place bodies and script collision reports. Queued
// reports are delivered during the next Step.
type fakeWorld struct {
	bodies    map[BodyID]*fakeBody
	next      BodyID
	onCollide func(self, other BodyID)
	queued    [][2]BodyID
	steps     int
	lastStep  [3]float64
	removed   []BodyID
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{bodies: make(map[BodyID]*fakeBody)}
}

func (w *fakeWorld) AddSphere(s SphereSpec) BodyID {
	w.next++
	w.bodies[w.next] = &fakeBody{pos: s.Position, rot: mgl64.QuatIdent()}
	return w.next
}

func (w *fakeWorld) RemoveBody(id BodyID) {
	if _, ok := w.bodies[id]; !ok {
		return
	}
	delete(w.bodies, id)
	w.removed = append(w.removed, id)
}

func (w *fakeWorld) Step(fixed, elapsed float64, maxSubSteps int) {
	w.steps++
	w.lastStep = [3]float64{fixed, elapsed, float64(maxSubSteps)}
	queued := w.queued
	w.queued = nil
	for _, p := range queued {
		w.onCollide(p[0], p[1])
	}
}

func (w *fakeWorld) Transform(id BodyID) (mgl64.Vec3, mgl64.Quat, bool) {
	b, ok := w.bodies[id]
	if !ok {
		return mgl64.Vec3{}, mgl64.Quat{}, false
	}
	return b.pos, b.rot, true
}

func (w *fakeWorld) OnCollide(fn func(self, other BodyID)) { w.onCollide = fn }

func (w *fakeWorld) collide(pairs ...[2]BodyID) { w.queued = append(w.queued, pairs...) }

func (w *fakeWorld) move(id BodyID, pos mgl64.Vec3) { w.bodies[id].pos = pos }

type eventLog struct{ events []Event }

func (l *eventLog) count(t EventType) int {
	n := 0
	for _, e := range l.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func newTestController() (*Controller, *fakeWorld, *MemoryScene, *eventLog) {
	w := newFakeWorld()
	s := NewMemoryScene()
	cfg := DefaultConfig()
	cfg.Seed = 1
	c := NewController(w, s, cfg, nil)
	log := &eventLog{}
	c.Events().SubscribeAll(func(e Event) { log.events = append(log.events, e) })
	return c, w, s, log
}

func TestMergeEnactedOnceRegardlessOfOrder(t *testing.T) {
	tests := []struct {
		name  string
		pairs func(a, b BodyID) [][2]BodyID
	}{
		{"lower first", func(a, b BodyID) [][2]BodyID { return [][2]BodyID{{a, b}, {b, a}} }},
		{"higher first", func(a, b BodyID) [][2]BodyID { return [][2]BodyID{{b, a}, {a, b}} }},
		{"lower only", func(a, b BodyID) [][2]BodyID { return [][2]BodyID{{a, b}} }},
		{"repeated", func(a, b BodyID) [][2]BodyID { return [][2]BodyID{{a, b}, {b, a}, {a, b}, {b, a}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w, _, log := newTestController()
			a := c.Spawn(mgl64.Vec3{0, 1, 0}, 2)
			b := c.Spawn(mgl64.Vec3{1, 1, 0}, 2)

			w.collide(tt.pairs(a.Body, b.Body)...)
			c.Tick(FixedStep)
			if removals, spawns := c.Pending(); removals != 2 || spawns != 1 {
				t.Fatalf("pending = (%d, %d), want (2, 1)", removals, spawns)
			}
			if c.Count() != 2 {
				t.Fatalf("count during the collision tick = %d, want 2", c.Count())
			}

			c.Tick(FixedStep)
			if c.Count() != 1 {
				t.Fatalf("count after merge = %d, want 1", c.Count())
			}
			if got := log.count(EventMerged); got != 1 {
				t.Fatalf("merge events = %d, want 1", got)
			}
			if got := log.count(EventRemoved); got != 2 {
				t.Fatalf("removed events = %d, want 2", got)
			}
			if c.Objects()[0].Tier != 3 {
				t.Fatalf("merged tier = %d, want 3", c.Objects()[0].Tier)
			}
		})
	}
}

func TestMergeScenarioMidpoint(t *testing.T) {
	c, w, s, log := newTestController()
	a := c.Spawn(mgl64.Vec3{0, 8, 0}, 0)
	b := c.Spawn(mgl64.Vec3{2, 8, 0}, 0)

	// Both come to rest touching either side of (1, 0.3, 0).
	w.move(a.Body, mgl64.Vec3{0.7, 0.3, 0})
	w.move(b.Body, mgl64.Vec3{1.3, 0.3, 0})
	w.collide([2]BodyID{b.Body, a.Body}, [2]BodyID{a.Body, b.Body})
	c.Tick(FixedStep)
	c.Tick(FixedStep)

	if c.Count() != 1 {
		t.Fatalf("count = %d, want 1", c.Count())
	}
	obj := c.Objects()[0]
	if obj.Tier != 1 {
		t.Fatalf("tier = %d, want 1", obj.Tier)
	}
	want := mgl64.Vec3{1, 0.3, 0}
	pos, _, _ := w.Transform(obj.Body)
	if !pos.ApproxEqual(want) {
		t.Fatalf("merged body at %v, want %v", pos, want)
	}
	if m := s.Meshes[obj.Mesh]; m == nil || !m.Position.ApproxEqual(want) || !m.Spec.Merged {
		t.Fatalf("merged mesh = %+v, want merged at %v", m, want)
	}
	if _, ok := c.Lookup(a.Body); ok {
		t.Fatal("a still tracked")
	}
	if _, ok := c.Lookup(b.Body); ok {
		t.Fatal("b still tracked")
	}
	if len(s.Meshes) != 1 {
		t.Fatalf("scene meshes = %d, want 1", len(s.Meshes))
	}
	if got := log.count(EventMerged); got != 1 {
		t.Fatalf("merge events = %d, want 1", got)
	}
	last, ok := c.LastSpawn()
	if !ok || !last.Merged || last.Tier != 1 {
		t.Fatalf("last spawn = %+v, want the merge product", last)
	}
}

func TestNoMergeForMismatchedOrTerminalTiers(t *testing.T) {
	terminal := TerminalTier()
	tests := []struct {
		name   string
		ta, tb int
	}{
		{"different tiers", 0, 1},
		{"terminal pair", terminal, terminal},
		{"terminal with lower", terminal, terminal - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w, _, log := newTestController()
			a := c.Spawn(mgl64.Vec3{0, 1, 0}, tt.ta)
			b := c.Spawn(mgl64.Vec3{1, 1, 0}, tt.tb)
			w.collide([2]BodyID{a.Body, b.Body}, [2]BodyID{b.Body, a.Body})
			c.Tick(FixedStep)
			c.Tick(FixedStep)
			if c.Count() != 2 {
				t.Fatalf("count = %d, want 2", c.Count())
			}
			if log.count(EventMerged) != 0 {
				t.Fatal("unexpected merge")
			}
		})
	}
}

func TestCollisionWithUntrackedBodyIgnored(t *testing.T) {
	c, w, _, _ := newTestController()
	a := c.Spawn(mgl64.Vec3{0, 1, 0}, 0)
	w.collide([2]BodyID{a.Body, 999}, [2]BodyID{999, a.Body})
	c.Tick(FixedStep)
	if r, s := c.Pending(); r != 0 || s != 0 {
		t.Fatalf("pending = (%d, %d), want none", r, s)
	}
}

func TestBodyMergesAtMostOncePerFrame(t *testing.T) {
	c, w, _, log := newTestController()
	a := c.Spawn(mgl64.Vec3{0, 1, 0}, 0)
	b := c.Spawn(mgl64.Vec3{1, 1, 0}, 0)
	d := c.Spawn(mgl64.Vec3{-1, 1, 0}, 0)

	w.collide([2]BodyID{a.Body, b.Body}, [2]BodyID{a.Body, d.Body})
	c.Tick(FixedStep)
	c.Tick(FixedStep)

	if got := log.count(EventMerged); got != 1 {
		t.Fatalf("merge events = %d, want 1", got)
	}
	if c.Count() != 2 {
		t.Fatalf("count = %d, want 2 (one merged, one untouched)", c.Count())
	}
	if _, ok := c.Lookup(d.Body); !ok {
		t.Fatal("d should survive")
	}
}

func TestOutOfBoundsScenarios(t *testing.T) {
	tests := []struct {
		name   string
		pos    mgl64.Vec3
		culled bool
	}{
		{"far and low", mgl64.Vec3{10, 1.5, 0}, true},
		{"far on z and low", mgl64.Vec3{0, 0.5, -3.6}, true},
		{"far but high", mgl64.Vec3{10, 3.0, 0}, false},
		{"inside and low", mgl64.Vec3{3.4, 0.3, 0}, false},
		{"on the limit", mgl64.Vec3{3.5, 0.3, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w, s, log := newTestController()
			obj := c.Spawn(mgl64.Vec3{0, 8, 0}, 0)
			w.move(obj.Body, tt.pos)
			c.Tick(FixedStep)

			_, tracked := c.Lookup(obj.Body)
			if tracked == tt.culled {
				t.Fatalf("tracked = %v, want culled = %v", tracked, tt.culled)
			}
			if tt.culled {
				if log.count(EventCulled) != 1 || len(s.Meshes) != 0 || len(w.bodies) != 0 {
					t.Fatal("culled object not fully torn down")
				}
				return
			}
			if m := s.Meshes[obj.Mesh]; !m.Position.ApproxEqual(tt.pos) {
				t.Fatalf("mesh at %v, want synced to %v", m.Position, tt.pos)
			}
		})
	}
}

func TestTeardownIdempotentAcrossMergeAndCull(t *testing.T) {
	c, w, s, log := newTestController()
	var reports []FrameReport
	c.SetReporter(func(r FrameReport) { reports = append(reports, r) })

	a := c.Spawn(mgl64.Vec3{0, 1, 0}, 0)
	b := c.Spawn(mgl64.Vec3{1, 1, 0}, 0)

	// a merges and, in the same frame, is found offstage.
	w.move(a.Body, mgl64.Vec3{9, 0.5, 0})
	w.collide([2]BodyID{a.Body, b.Body})
	c.Tick(FixedStep)
	if _, ok := c.Lookup(a.Body); ok {
		t.Fatal("a should be culled in the collision frame")
	}
	c.Tick(FixedStep)

	if c.Count() != 1 {
		t.Fatalf("count = %d, want 1", c.Count())
	}
	if s.Released != 2 {
		t.Fatalf("meshes released = %d, want 2", s.Released)
	}
	if len(w.removed) != 2 {
		t.Fatalf("bodies removed = %v, want 2", w.removed)
	}
	if log.count(EventCulled) != 1 || log.count(EventRemoved) != 1 {
		t.Fatalf("culled/removed events = %d/%d, want 1/1", log.count(EventCulled), log.count(EventRemoved))
	}
	if reports[1].Removed != 1 || reports[1].Merged != 1 {
		t.Fatalf("second frame report = %+v", reports[1])
	}

	if c.Remove(b.Body) {
		t.Fatal("removing an already removed body reported success")
	}
	obj := c.Objects()[0]
	if !c.Remove(obj.Body) || c.Remove(obj.Body) {
		t.Fatal("Remove should succeed once and then be a no-op")
	}
}

func TestCountNonIncreasingWithoutSpawns(t *testing.T) {
	c, w, _, _ := newTestController()
	var ids []BodyID
	for i := 0; i < 8; i++ {
		ids = append(ids, c.Spawn(mgl64.Vec3{float64(i%3) - 1, 4, 0}, i%SpawnTierCount).Body)
	}
	prev := c.Count()
	for frame := 0; frame < 30; frame++ {
		if frame%4 == 0 && frame/4 < len(ids) {
			if _, ok := w.bodies[ids[frame/4]]; ok {
				w.move(ids[frame/4], mgl64.Vec3{6, 1, 6})
			}
		}
		c.Tick(FixedStep)
		if c.Count() > prev {
			t.Fatalf("frame %d: count rose from %d to %d", frame, prev, c.Count())
		}
		prev = c.Count()
	}
	if c.Count() != 0 {
		t.Fatalf("count = %d, want every sphere culled", c.Count())
	}
}

func TestTickStepsAndRenders(t *testing.T) {
	c, w, s, _ := newTestController()
	var got FrameReport
	calls := 0
	c.SetReporter(func(r FrameReport) { got = r; calls++ })
	c.Spawn(mgl64.Vec3{0, 8, 0}, 0)

	c.Tick(0.02)
	if w.steps != 1 || w.lastStep != [3]float64{FixedStep, 0.02, MaxSubSteps} {
		t.Fatalf("step calls = %d args = %v", w.steps, w.lastStep)
	}
	if s.Renders != 1 || calls != 1 {
		t.Fatalf("renders = %d reports = %d, want 1 each", s.Renders, calls)
	}
	if got.Live != 1 {
		t.Fatalf("report live = %d, want 1", got.Live)
	}
}

func TestBodyVanishedFromWorldIsDropped(t *testing.T) {
	c, w, s, _ := newTestController()
	obj := c.Spawn(mgl64.Vec3{0, 8, 0}, 0)
	delete(w.bodies, obj.Body)
	c.Tick(FixedStep)
	if c.Count() != 0 || len(s.Meshes) != 0 {
		t.Fatalf("count = %d meshes = %d, want 0", c.Count(), len(s.Meshes))
	}
}

func TestSpawnInvalidTierPanics(t *testing.T) {
	c, _, _, _ := newTestController()
	for _, tier := range []int{-1, len(BallTypes)} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("tier %d did not panic", tier)
				}
			}()
			c.Spawn(mgl64.Vec3{}, tier)
		}()
	}
}

func TestResetClearsEverything(t *testing.T) {
	c, w, s, log := newTestController()
	a := c.Spawn(mgl64.Vec3{0, 1, 0}, 0)
	b := c.Spawn(mgl64.Vec3{1, 1, 0}, 0)
	w.collide([2]BodyID{a.Body, b.Body})
	c.Tick(FixedStep)

	c.Reset()
	if c.Count() != 0 || len(s.Meshes) != 0 || len(w.bodies) != 0 {
		t.Fatal("reset left objects behind")
	}
	if r, sp := c.Pending(); r != 0 || sp != 0 {
		t.Fatalf("pending after reset = (%d, %d)", r, sp)
	}
	if _, ok := c.LastSpawn(); ok {
		t.Fatal("last spawn survived reset")
	}
	if log.count(EventReset) != 1 {
		t.Fatal("missing reset event")
	}
	c.Tick(FixedStep)
	if c.Count() != 0 {
		t.Fatalf("queued merge survived reset: count = %d", c.Count())
	}
}
