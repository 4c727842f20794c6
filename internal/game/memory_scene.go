package game

import "github.com/go-gl/mathgl/mgl64"

// MemoryMesh is the state MemoryScene keeps per mesh.
type MemoryMesh struct {
	Spec     MeshSpec
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// MemoryScene is a Scene without a display, used by the headless runner.
type MemoryScene struct {
	Meshes   map[MeshID]*MemoryMesh
	Renders  int
	Released int
	Animated float64 // total dt passed to Animate
	nextID   MeshID
}

func NewMemoryScene() *MemoryScene {
	return &MemoryScene{Meshes: make(map[MeshID]*MemoryMesh)}
}

func (s *MemoryScene) AddMesh(spec MeshSpec) MeshID {
	s.nextID++
	s.Meshes[s.nextID] = &MemoryMesh{Spec: spec, Position: spec.Position, Rotation: mgl64.QuatIdent()}
	return s.nextID
}

func (s *MemoryScene) RemoveMesh(id MeshID) {
	if _, ok := s.Meshes[id]; !ok {
		return
	}
	delete(s.Meshes, id)
	s.Released++
}

func (s *MemoryScene) SetTransform(id MeshID, pos mgl64.Vec3, rot mgl64.Quat) {
	if m, ok := s.Meshes[id]; ok {
		m.Position = pos
		m.Rotation = rot
	}
}

func (s *MemoryScene) Render() { s.Renders++ }

func (s *MemoryScene) Animate(dt float64) { s.Animated += dt }
