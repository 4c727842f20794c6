package physics

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

type idPair struct{ a, b BodyID }

func contactSet(w *World, bp Broadphase) map[idPair]bool {
	set := make(map[idPair]bool)
	for _, p := range bp.Pairs(w.Bodies(), nil) {
		if p.A.IsStatic() && p.B.IsStatic() {
			continue
		}
		if _, ok := collide(p.A, p.B); !ok {
			continue
		}
		k := idPair{p.A.ID, p.B.ID}
		if k.a > k.b {
			k.a, k.b = k.b, k.a
		}
		set[k] = true
	}
	return set
}

func TestQuadBroadphaseMatchesNaive(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	w := NewWorld()
	w.AddBody(NewRigidBody(BodyTypeStatic, &Plane{Normal: mgl64.Vec3{0, 1, 0}}, nil, mgl64.Vec3{}, 0))
	w.AddBody(NewRigidBody(BodyTypeStatic, &Box{HalfExtents: mgl64.Vec3{0.5, 2.5, 3.5}}, nil, mgl64.Vec3{3, 2.5, 0}, 0))
	w.AddBody(NewRigidBody(BodyTypeStatic, &Box{HalfExtents: mgl64.Vec3{0.5, 2.5, 3.5}}, nil, mgl64.Vec3{-3, 2.5, 0}, 0))
	for i := 0; i < 80; i++ {
		pos := mgl64.Vec3{rng.Float64()*6 - 3, rng.Float64() * 4, rng.Float64()*6 - 3}
		addBall(w, nil, pos, 0.3+rng.Float64()*0.6)
	}

	naive := contactSet(w, NaiveBroadphase{})
	quad := contactSet(w, &QuadBroadphase{})
	if len(naive) == 0 {
		t.Fatal("test layout produced no contacts")
	}
	if len(naive) != len(quad) {
		t.Fatalf("quad found %d contacts, naive found %d", len(quad), len(naive))
	}
	for k := range naive {
		if !quad[k] {
			t.Fatalf("quad missed contact %v", k)
		}
	}
}

func TestBroadphaseSkipsStaticPairs(t *testing.T) {
	w := NewWorld()
	w.AddBody(NewRigidBody(BodyTypeStatic, &Plane{Normal: mgl64.Vec3{0, 1, 0}}, nil, mgl64.Vec3{}, 0))
	w.AddBody(NewRigidBody(BodyTypeStatic, &Box{HalfExtents: mgl64.Vec3{1, 1, 1}}, nil, mgl64.Vec3{}, 0))

	for _, bp := range []Broadphase{NaiveBroadphase{}, &QuadBroadphase{}} {
		if pairs := bp.Pairs(w.Bodies(), nil); len(pairs) != 0 {
			t.Fatalf("%T returned %d static pairs", bp, len(pairs))
		}
	}
}

func TestQuadNodeQuery(t *testing.T) {
	root := NewQuadNode(RectF{X0: 0, Y0: 0, X1: 16, Y1: 16}, 0)
	for i := 0; i < 16; i++ {
		x := float64(i)
		root.Insert(i, RectF{X0: x, Y0: x, X1: x + 0.5, Y1: x + 0.5})
	}
	var hits []int
	root.Query(RectF{X0: 3.2, Y0: 3.2, X1: 4.2, Y1: 4.2}, &hits)
	if len(hits) != 2 {
		t.Fatalf("hits = %v, want items 3 and 4", hits)
	}
}
