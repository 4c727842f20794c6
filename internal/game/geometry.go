package game

import "math"

// SphereMesh builds a unit UV sphere. Vertices are interleaved
// [px, py, pz, nx, ny, nz]; on a unit sphere the normal equals the position.
func SphereMesh(segments, rings int) (verts []float32, indices []uint32) {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}
	verts = make([]float32, 0, (segments+1)*(rings+1)*6)
	for r := 0; r <= rings; r++ {
		phi := math.Pi * float64(r) / float64(rings)
		y := math.Cos(phi)
		sr := math.Sin(phi)
		for s := 0; s <= segments; s++ {
			theta := 2 * math.Pi * float64(s) / float64(segments)
			x := sr * math.Cos(theta)
			z := sr * math.Sin(theta)
			verts = append(verts, float32(x), float32(y), float32(z), float32(x), float32(y), float32(z))
		}
	}

	stride := uint32(segments + 1)
	indices = make([]uint32, 0, segments*rings*6)
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			a := uint32(r)*stride + uint32(s)
			b := a + stride
			if r != 0 {
				indices = append(indices, a, b, a+1)
			}
			if r != rings-1 {
				indices = append(indices, a+1, b, b+1)
			}
		}
	}
	return verts, indices
}

// Quad is one arena surface: a centre, two half-axis vectors spanning it,
// and the face normal.
type Quad struct {
	Center       [3]float32
	U, V, Normal [3]float32
	Color        RGB
	Alpha        float32
}

// ArenaQuads returns the floor and the four inner wall faces. Walls are
// flush with the floor edge and WallHeight tall.
func ArenaQuads(cfg Config) []Quad {
	h := float32(cfg.FloorSize / 2)
	wh := float32(cfg.WallHeight / 2)
	wall := Palette.Wall
	return []Quad{
		{Center: [3]float32{0, 0, 0}, U: [3]float32{h, 0, 0}, V: [3]float32{0, 0, h}, Normal: [3]float32{0, 1, 0}, Color: Palette.Floor, Alpha: 1},
		{Center: [3]float32{0, wh, -h}, U: [3]float32{h, 0, 0}, V: [3]float32{0, wh, 0}, Normal: [3]float32{0, 0, 1}, Color: wall, Alpha: WallOpacity},
		{Center: [3]float32{0, wh, h}, U: [3]float32{h, 0, 0}, V: [3]float32{0, wh, 0}, Normal: [3]float32{0, 0, -1}, Color: wall, Alpha: WallOpacity},
		{Center: [3]float32{h, wh, 0}, U: [3]float32{0, 0, h}, V: [3]float32{0, wh, 0}, Normal: [3]float32{-1, 0, 0}, Color: wall, Alpha: WallOpacity},
		{Center: [3]float32{-h, wh, 0}, U: [3]float32{0, 0, h}, V: [3]float32{0, wh, 0}, Normal: [3]float32{1, 0, 0}, Color: wall, Alpha: WallOpacity},
	}
}

// Triangles expands q into six interleaved [pos, normal] vertices.
func (q Quad) Triangles() []float32 {
	corner := func(su, sv float32) [3]float32 {
		return [3]float32{
			q.Center[0] + su*q.U[0] + sv*q.V[0],
			q.Center[1] + su*q.U[1] + sv*q.V[1],
			q.Center[2] + su*q.U[2] + sv*q.V[2],
		}
	}
	c := [4][3]float32{corner(-1, -1), corner(1, -1), corner(1, 1), corner(-1, 1)}
	n := q.Normal
	out := make([]float32, 0, 36)
	for _, i := range [6]int{0, 1, 2, 0, 2, 3} {
		out = append(out, c[i][0], c[i][1], c[i][2], n[0], n[1], n[2])
	}
	return out
}
