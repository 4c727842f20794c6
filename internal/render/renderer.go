package render

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"fruitmerge/internal/game"
)

// Direction towards the key light, matching a sun at (5, 10, 5).
var lightDir = mgl32.Vec3{5, 10, 5}.Normalize()

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type Renderer struct {
	// Lit program: spheres and arena quads.
	litProg       uint32
	uViewProj     int32
	uModel        int32
	uColor        int32
	uAlpha        int32
	uLightDir     int32
	uAmbient      int32
	uDirectional  int32
	sphereVAO     uint32
	sphereVBO     uint32
	sphereEBO     uint32
	sphereIndices int32
	arenaVAO      uint32
	arenaVBO      uint32
	arenaQuads    []game.Quad

	// Particle/sprite program.
	spriteProg      uint32
	spriteVAO       uint32
	spriteVBO       uint32
	spUViewProj     int32
	spUPointScale   int32
	glowProg        uint32
	glowUViewProj   int32
	glowUPointScale int32

	viewProj mgl32.Mat4
}

func NewRenderer() (*Renderer, error) {
	litProg, err := linkProgram(litVertSrc, litFragSrc)
	if err != nil {
		return nil, fmt.Errorf("lit program: %w", err)
	}
	spriteProg, err := linkProgram(particleVertSrc, particleFragSrc)
	if err != nil {
		gl.DeleteProgram(litProg)
		return nil, fmt.Errorf("sprite program: %w", err)
	}
	glowProg, err := linkProgram(particleVertSrc, glowFragSrc)
	if err != nil {
		gl.DeleteProgram(litProg)
		gl.DeleteProgram(spriteProg)
		return nil, fmt.Errorf("glow program: %w", err)
	}

	r := &Renderer{
		litProg:    litProg,
		spriteProg: spriteProg,
		glowProg:   glowProg,
	}

	// Shared unit sphere; every mesh draws it with its own model matrix.
	verts, indices := game.SphereMesh(game.SphereSegments, game.SphereRings)
	gl.GenVertexArrays(1, &r.sphereVAO)
	gl.GenBuffers(1, &r.sphereVBO)
	gl.GenBuffers(1, &r.sphereEBO)
	gl.BindVertexArray(r.sphereVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.sphereVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.sphereEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	bindPosNormal()
	r.sphereIndices = int32(len(indices))

	// Arena VAO/VBO: filled by SetArena.
	gl.GenVertexArrays(1, &r.arenaVAO)
	gl.GenBuffers(1, &r.arenaVBO)
	gl.BindVertexArray(r.arenaVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.arenaVBO)
	bindPosNormal()

	gl.UseProgram(litProg)
	r.uViewProj = gl.GetUniformLocation(litProg, gl.Str("uViewProj\x00"))
	r.uModel = gl.GetUniformLocation(litProg, gl.Str("uModel\x00"))
	r.uColor = gl.GetUniformLocation(litProg, gl.Str("uColor\x00"))
	r.uAlpha = gl.GetUniformLocation(litProg, gl.Str("uAlpha\x00"))
	r.uLightDir = gl.GetUniformLocation(litProg, gl.Str("uLightDir\x00"))
	r.uAmbient = gl.GetUniformLocation(litProg, gl.Str("uAmbient\x00"))
	r.uDirectional = gl.GetUniformLocation(litProg, gl.Str("uDirectional\x00"))
	gl.Uniform3f(r.uLightDir, lightDir.X(), lightDir.Y(), lightDir.Z())
	gl.Uniform1f(r.uAmbient, game.AmbientIntensity)
	gl.Uniform1f(r.uDirectional, game.DirectionalIntensity)

	// Sprite VAO/VBO: streaming buffer for point sprites.
	// Each sprite: 8 floats (x, y, z, size, r, g, b, a).
	gl.GenVertexArrays(1, &r.spriteVAO)
	gl.GenBuffers(1, &r.spriteVBO)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)

	stride := int32(8 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, game.MaxParticleRender*int(stride), nil, gl.STREAM_DRAW)
	// aWorldPos (vec3)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	// aSize (float)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(3*4))
	// aColor (vec4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(4*4))

	gl.UseProgram(spriteProg)
	r.spUViewProj = gl.GetUniformLocation(spriteProg, gl.Str("uViewProj\x00"))
	r.spUPointScale = gl.GetUniformLocation(spriteProg, gl.Str("uPointScale\x00"))
	gl.UseProgram(glowProg)
	r.glowUViewProj = gl.GetUniformLocation(glowProg, gl.Str("uViewProj\x00"))
	r.glowUPointScale = gl.GetUniformLocation(glowProg, gl.Str("uPointScale\x00"))

	gl.BindVertexArray(0)
	return r, nil
}

// bindPosNormal describes interleaved [px, py, pz, nx, ny, nz] on the bound VAO.
func bindPosNormal() {
	stride := int32(6 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, glOffset(3*4))
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.sphereVBO, r.sphereEBO, r.arenaVBO, r.spriteVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.sphereVAO, r.arenaVAO, r.spriteVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.litProg, r.spriteProg, r.glowProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
}

// SetArena uploads the floor and wall quads.
func (r *Renderer) SetArena(quads []game.Quad) {
	buf := make([]float32, 0, len(quads)*36)
	for _, q := range quads {
		buf = append(buf, q.Triangles()...)
	}
	r.arenaQuads = quads
	gl.BindVertexArray(r.arenaVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.arenaVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(buf)*4, gl.Ptr(buf), gl.STATIC_DRAW)
	gl.BindVertexArray(0)
}

func (r *Renderer) BeginFrame(cam *game.Camera, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	bg := game.Palette.Background
	cr, cg, cb := bg.Floats()
	gl.ClearColor(cr, cg, cb, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.viewProj = cam.ViewProjection()
	gl.UseProgram(r.litProg)
	gl.UniformMatrix4fv(r.uViewProj, 1, false, &r.viewProj[0])
}

// DrawFloor draws the opaque arena quads.
func (r *Renderer) DrawFloor() { r.drawArena(false) }

// DrawWalls draws the translucent arena quads without writing depth, so
// spheres behind them stay visible.
func (r *Renderer) DrawWalls() {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)
	r.drawArena(true)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

func (r *Renderer) drawArena(translucent bool) {
	gl.UseProgram(r.litProg)
	gl.BindVertexArray(r.arenaVAO)
	ident := mgl32.Ident4()
	gl.UniformMatrix4fv(r.uModel, 1, false, &ident[0])
	for i, q := range r.arenaQuads {
		if (q.Alpha < 1) != translucent {
			continue
		}
		cr, cg, cb := q.Color.Floats()
		gl.Uniform3f(r.uColor, cr, cg, cb)
		gl.Uniform1f(r.uAlpha, q.Alpha)
		gl.DrawArrays(gl.TRIANGLES, int32(i*6), 6)
	}
}

// DrawSphere draws the shared unit sphere scaled to radius at pos.
func (r *Renderer) DrawSphere(pos mgl64.Vec3, rot mgl64.Quat, radius float64, col game.RGB) {
	q := mgl32.Quat{W: float32(rot.W), V: mgl32.Vec3{float32(rot.V.X()), float32(rot.V.Y()), float32(rot.V.Z())}}
	s := float32(radius)
	model := mgl32.Translate3D(float32(pos.X()), float32(pos.Y()), float32(pos.Z())).
		Mul4(q.Mat4()).
		Mul4(mgl32.Scale3D(s, s, s))

	gl.UseProgram(r.litProg)
	gl.BindVertexArray(r.sphereVAO)
	gl.UniformMatrix4fv(r.uModel, 1, false, &model[0])
	cr, cg, cb := col.Floats()
	gl.Uniform3f(r.uColor, cr, cg, cb)
	gl.Uniform1f(r.uAlpha, 1)
	gl.DrawElements(gl.TRIANGLES, r.sphereIndices, gl.UNSIGNED_INT, nil)
}

// DrawSprites renders point sprites.
// buf format: [x, y, z, size, r, g, b, a] * N (8 floats per sprite).
// additive selects the glow program and ONE/ONE blending.
func (r *Renderer) DrawSprites(buf []float32, fbH int, additive bool) {
	if len(buf) == 0 {
		return
	}
	count := len(buf) / 8
	if count > game.MaxParticleRender {
		count = game.MaxParticleRender
	}

	scale := float32(float64(fbH) / (2 * math.Tan(mgl64.DegToRad(game.CameraFOV)/2)))
	if additive {
		gl.UseProgram(r.glowProg)
		gl.UniformMatrix4fv(r.glowUViewProj, 1, false, &r.viewProj[0])
		gl.Uniform1f(r.glowUPointScale, scale)
	} else {
		gl.UseProgram(r.spriteProg)
		gl.UniformMatrix4fv(r.spUViewProj, 1, false, &r.viewProj[0])
		gl.Uniform1f(r.spUPointScale, scale)
	}
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)

	gl.Enable(gl.BLEND)
	if additive {
		gl.BlendFunc(gl.ONE, gl.ONE)
	} else {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
	gl.DepthMask(false)

	gl.BufferData(gl.ARRAY_BUFFER, count*8*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}
