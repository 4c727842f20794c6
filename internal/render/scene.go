package render

import (
	"github.com/go-gl/mathgl/mgl64"

	"fruitmerge/internal/game"
)

type sceneMesh struct {
	spec game.MeshSpec
	pos  mgl64.Vec3
	rot  mgl64.Quat
	pop  game.Pop
}

// Scene draws tracked spheres, the arena and merge particles with a Renderer.
// Render draws a whole frame; the caller swaps buffers afterwards.
type Scene struct {
	rend      *Renderer
	cam       *game.Camera
	particles *game.ParticleSystem

	meshes map[game.MeshID]*sceneMesh
	nextID game.MeshID

	fbW, fbH         int
	glowBuf, normBuf []float32
}

func NewScene(rend *Renderer, cam *game.Camera, particles *game.ParticleSystem, cfg game.Config) *Scene {
	rend.SetArena(game.ArenaQuads(cfg))
	return &Scene{
		rend:      rend,
		cam:       cam,
		particles: particles,
		meshes:    make(map[game.MeshID]*sceneMesh),
	}
}

// SetViewport records the framebuffer size and updates the camera aspect.
func (s *Scene) SetViewport(w, h int) {
	s.fbW, s.fbH = w, h
	s.cam.SetAspect(w, h)
}

func (s *Scene) AddMesh(spec game.MeshSpec) game.MeshID {
	s.nextID++
	s.meshes[s.nextID] = &sceneMesh{
		spec: spec,
		pos:  spec.Position,
		rot:  mgl64.QuatIdent(),
		pop:  game.NewPop(spec.Merged),
	}
	return s.nextID
}

func (s *Scene) RemoveMesh(id game.MeshID) {
	delete(s.meshes, id)
}

func (s *Scene) SetTransform(id game.MeshID, pos mgl64.Vec3, rot mgl64.Quat) {
	if m, ok := s.meshes[id]; ok {
		m.pos = pos
		m.rot = rot
	}
}

func (s *Scene) Len() int { return len(s.meshes) }

// Animate advances the pop-in springs of freshly merged spheres.
func (s *Scene) Animate(dt float64) {
	for _, m := range s.meshes {
		m.pop.Advance(dt)
	}
}

func (s *Scene) Render() {
	if s.fbW <= 0 || s.fbH <= 0 {
		return
	}
	s.rend.BeginFrame(s.cam, s.fbW, s.fbH)
	s.rend.DrawFloor()

	for _, m := range s.meshes {
		s.rend.DrawSphere(m.pos, m.rot, m.spec.Radius*m.pop.Scale, m.spec.Color)
	}

	s.glowBuf, s.normBuf = s.particles.ParticleRenderData(s.glowBuf, s.normBuf)
	s.rend.DrawSprites(s.normBuf, s.fbH, false)
	s.rend.DrawWalls()
	s.rend.DrawSprites(s.glowBuf, s.fbH, true)
}
