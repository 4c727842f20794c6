package term

import (
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"fruitmerge/internal/game"
)

// hudRows is the number of status rows kept clear at the bottom.
const hudRows = 2

// Precomputed view-space light for cell shading.
var lightX, lightY, lightZ = func() (float64, float64, float64) {
	x, y, z := -0.35, -0.55, 0.75
	m := math.Sqrt(x*x + y*y + z*z)
	return x / m, y / m, z / m
}()

type termMesh struct {
	spec game.MeshSpec
	pos  mgl64.Vec3
	pop  game.Pop
}

// projected is a sphere mapped to cell space. Terminal cells are about twice
// as tall as they are wide, so rx is twice ry.
type projected struct {
	mesh   *termMesh
	cx, cy float64
	rx, ry float64
	depth  float64
}

// Scene draws the arena into a tcell screen with shaded block cells.
type Scene struct {
	screen    tcell.Screen
	cam       *game.Camera
	particles *game.ParticleSystem
	cfg       game.Config
	session   *game.Session

	meshes map[game.MeshID]*termMesh
	nextID game.MeshID

	order            []projected
	glowBuf, normBuf []float32
}

func NewScene(screen tcell.Screen, cam *game.Camera, particles *game.ParticleSystem, cfg game.Config) *Scene {
	return &Scene{
		screen:    screen,
		cam:       cam,
		particles: particles,
		cfg:       cfg,
		meshes:    make(map[game.MeshID]*termMesh),
	}
}

// SetSession selects the session whose counters fill the HUD rows.
func (s *Scene) SetSession(sess *game.Session) { s.session = sess }

func (s *Scene) AddMesh(spec game.MeshSpec) game.MeshID {
	s.nextID++
	s.meshes[s.nextID] = &termMesh{spec: spec, pos: spec.Position, pop: game.NewPop(spec.Merged)}
	return s.nextID
}

func (s *Scene) RemoveMesh(id game.MeshID) {
	delete(s.meshes, id)
}

// SetTransform moves a mesh. Shading is view-relative, so rotation is unused.
func (s *Scene) SetTransform(id game.MeshID, pos mgl64.Vec3, _ mgl64.Quat) {
	if m, ok := s.meshes[id]; ok {
		m.pos = pos
	}
}

func (s *Scene) Len() int { return len(s.meshes) }

func (s *Scene) Animate(dt float64) {
	for _, m := range s.meshes {
		m.pop.Advance(dt)
	}
}

func (s *Scene) Render() {
	w, h := s.screen.Size()
	viewH := h - hudRows
	if w <= 0 || viewH <= 0 {
		return
	}
	s.cam.SetAspect(w, viewH*2)

	bg := tcell.StyleDefault.Background(tcellColor(game.Palette.Background))
	s.screen.Fill(' ', bg)

	s.drawArena(w, viewH)
	s.drawSpheres(w, viewH)
	s.drawParticles(w, viewH)
	s.drawHUD(w, h)
	s.screen.Show()
}

// toCell maps a world point to fractional cell coordinates.
func (s *Scene) toCell(p mgl64.Vec3, w, viewH int) (x, y float64, ok bool) {
	ndc, ok := s.cam.Project(p)
	if !ok {
		return 0, 0, false
	}
	x = (ndc.X() + 1) / 2 * float64(w)
	y = (1 - ndc.Y()) / 2 * float64(viewH)
	return x, y, true
}

func (s *Scene) drawArena(w, viewH int) {
	half := s.cfg.FloorSize / 2
	corners := [4]mgl64.Vec3{
		{-half, 0, -half},
		{half, 0, -half},
		{half, 0, half},
		{-half, 0, half},
	}
	floor := tcell.StyleDefault.
		Background(tcellColor(game.Palette.Background)).
		Foreground(tcellColor(game.Palette.Floor))
	wall := tcell.StyleDefault.
		Background(tcellColor(game.Palette.Background)).
		Foreground(tcellColor(game.Palette.Wall.Mul(uint8(game.WallOpacity * 255))))

	top := mgl64.Vec3{0, s.cfg.WallHeight, 0}
	for i, a := range corners {
		b := corners[(i+1)%4]
		s.line(a.Add(top), b.Add(top), w, viewH, '·', wall)
		s.line(a, a.Add(top), w, viewH, '│', wall)
		s.line(a, b, w, viewH, '─', floor)
	}
}

// line plots the segment a-b by stepping one cell at a time.
func (s *Scene) line(a, b mgl64.Vec3, w, viewH int, ch rune, style tcell.Style) {
	x0, y0, ok0 := s.toCell(a, w, viewH)
	x1, y1, ok1 := s.toCell(b, w, viewH)
	if !ok0 || !ok1 {
		return
	}
	steps := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(x0 + (x1-x0)*t)
		y := int(y0 + (y1-y0)*t)
		if x >= 0 && x < w && y >= 0 && y < viewH {
			s.screen.SetContent(x, y, ch, nil, style)
		}
	}
}

func (s *Scene) drawSpheres(w, viewH int) {
	eye := s.cam.Eye()
	s.order = s.order[:0]
	for _, m := range s.meshes {
		scale := m.pop.Scale
		cx, cy, ok := s.toCell(m.pos, w, viewH)
		if !ok {
			continue
		}
		ry := s.cam.ProjectedRadius(m.pos, m.spec.Radius*scale) * float64(viewH) / 2
		s.order = append(s.order, projected{
			mesh:  m,
			cx:    cx,
			cy:    cy,
			rx:    ry * 2,
			ry:    ry,
			depth: m.pos.Sub(eye).Len(),
		})
	}

	// Painter's algorithm: far to near.
	sort.Slice(s.order, func(i, j int) bool { return s.order[i].depth > s.order[j].depth })

	for i := range s.order {
		s.drawSphere(&s.order[i], w, viewH)
	}
}

func (s *Scene) drawSphere(p *projected, w, viewH int) {
	if p.ry < 0.25 {
		// Too small to shade; mark the centre.
		x, y := int(p.cx), int(p.cy)
		if x >= 0 && x < w && y >= 0 && y < viewH {
			s.screen.SetContent(x, y, '•', nil, tcell.StyleDefault.
				Background(tcellColor(game.Palette.Background)).
				Foreground(tcellColor(p.mesh.spec.Color)))
		}
		return
	}

	minX := max(0, int(p.cx-p.rx-1))
	maxX := min(w-1, int(p.cx+p.rx+1))
	minY := max(0, int(p.cy-p.ry-1))
	maxY := min(viewH-1, int(p.cy+p.ry+1))

	base := p.mesh.spec.Color
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			nx := (float64(x) + 0.5 - p.cx) / p.rx
			ny := (float64(y) + 0.5 - p.cy) / p.ry
			d2 := nx*nx + ny*ny
			if d2 > 1 {
				continue
			}
			nz := math.Sqrt(1 - d2)
			lambert := math.Max(0, nx*lightX+ny*lightY+nz*lightZ)
			k := game.AmbientIntensity + game.DirectionalIntensity*lambert
			s.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(tcellColor(shade(base, k))))
		}
	}
}

func (s *Scene) drawParticles(w, viewH int) {
	if s.particles == nil {
		return
	}
	s.glowBuf, s.normBuf = s.particles.ParticleRenderData(s.glowBuf, s.normBuf)
	plot := func(buf []float32, ch rune) {
		for i := 0; i+8 <= len(buf); i += 8 {
			x, y, ok := s.toCell(mgl64.Vec3{float64(buf[i]), float64(buf[i+1]), float64(buf[i+2])}, w, viewH)
			if !ok || buf[i+7] < 0.15 {
				continue
			}
			cx, cy := int(x), int(y)
			if cx < 0 || cx >= w || cy < 0 || cy >= viewH {
				continue
			}
			col := game.RGB{R: unit8(buf[i+4]), G: unit8(buf[i+5]), B: unit8(buf[i+6])}
			_, _, st, _ := s.screen.GetContent(cx, cy)
			s.screen.SetContent(cx, cy, ch, nil, st.Foreground(tcellColor(col)))
		}
	}
	plot(s.normBuf, '·')
	plot(s.glowBuf, '*')
}

func (s *Scene) drawHUD(w, h int) {
	if s.session == nil {
		return
	}
	hud := tcell.StyleDefault.Foreground(tcellColor(game.Palette.HUD))
	dim := tcell.StyleDefault.Foreground(tcellColor(game.Palette.HUDDim))
	for x := 0; x < w; x++ {
		s.screen.SetContent(x, h-2, ' ', nil, tcell.StyleDefault)
		s.screen.SetContent(x, h-1, ' ', nil, tcell.StyleDefault)
	}
	x := writeStr(s.screen, 1, h-2, s.session.CountLine(), hud)
	writeStr(s.screen, x+3, h-2, s.session.SpawnLine(), hud)
	writeStr(s.screen, 1, h-1, s.session.StatsLine()+"   space:pause r:reset m:mute ←/→:orbit q:quit", dim)
}

// writeStr draws s starting at (x, y) and returns the column after it.
func writeStr(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

func shade(c game.RGB, k float64) game.RGB {
	return game.RGB{R: clampByte(float64(c.R) * k), G: clampByte(float64(c.G) * k), B: clampByte(float64(c.B) * k)}
}

func clampByte(v float64) uint8 {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return uint8(v)
}

func unit8(v float32) uint8 { return clampByte(float64(v) * 255) }

func tcellColor(c game.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
