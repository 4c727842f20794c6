package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"fruitmerge/internal/game"
)

// Mesh bookkeeping never touches GL, so a Scene without a Renderer is enough.
func newBareScene() *Scene {
	return &Scene{cam: game.NewCamera(0), meshes: make(map[game.MeshID]*sceneMesh)}
}

func TestSceneMeshes(t *testing.T) {
	s := newBareScene()
	a := s.AddMesh(game.MeshSpec{Radius: 0.3, Merged: true})
	b := s.AddMesh(game.MeshSpec{Radius: 0.5})
	if a == b {
		t.Fatalf("ids collide: %d", a)
	}
	if got := s.meshes[a].pop.Scale; got != game.PopStart {
		t.Fatalf("merged pop scale = %v, want %v", got, game.PopStart)
	}
	if !s.meshes[b].pop.Settled() {
		t.Fatal("dropped mesh should start settled")
	}
	s.Animate(0.1)
	if got := s.meshes[a].pop.Scale; got == game.PopStart {
		t.Fatal("Animate did not advance the merged mesh's pop")
	}

	rot := mgl64.QuatRotate(1, mgl64.Vec3{0, 1, 0})
	s.SetTransform(b, mgl64.Vec3{1, 2, 3}, rot)
	if m := s.meshes[b]; m.pos != (mgl64.Vec3{1, 2, 3}) || m.rot != rot {
		t.Fatalf("transform = %v %v", m.pos, m.rot)
	}

	s.RemoveMesh(a)
	s.RemoveMesh(a)
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
}

func TestSceneViewport(t *testing.T) {
	s := newBareScene()
	s.SetViewport(800, 400)
	if s.cam.Aspect != 2 {
		t.Fatalf("aspect = %v, want 2", s.cam.Aspect)
	}
	// Zero-sized framebuffers skip drawing entirely.
	s.SetViewport(0, 0)
	s.Render()
}
