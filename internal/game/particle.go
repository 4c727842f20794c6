package game

type ParticleKind uint8

const (
	ParticleSpark ParticleKind = iota
	ParticleGlow
	ParticleDust
)

type Particle struct {
	X, Y, Z    float64
	VX, VY, VZ float64

	Size float64

	Life    float64 // negative = delayed start
	MaxLife float64

	Col  RGB
	Kind ParticleKind
}

type ParticleSystem struct {
	Max    int
	P      []Particle
	seed   uint64
	ovrIdx int // circular overwrite index when full
}

func NewParticleSystem(maxParticles int, seed uint64) *ParticleSystem {
	if maxParticles <= 0 {
		maxParticles = MaxParticles
	}
	if seed == 0 {
		seed = 1
	}
	return &ParticleSystem{
		Max:  maxParticles,
		P:    make([]Particle, 0, maxParticles),
		seed: seed,
	}
}

func (ps *ParticleSystem) Clear() {
	ps.P = ps.P[:0]
	ps.ovrIdx = 0
}

func (ps *ParticleSystem) Add(p Particle) {
	if len(ps.P) < ps.Max {
		ps.P = append(ps.P, p)
		return
	}
	// Circular overwrite.
	if ps.ovrIdx >= ps.Max {
		ps.ovrIdx = 0
	}
	ps.P[ps.ovrIdx] = p
	ps.ovrIdx++
}

// ParticleRenderData splits particles into glow (additive) and normal (alpha blend) buffers.
// Format: [x, y, z, size, r, g, b, a] * N.
func (ps *ParticleSystem) ParticleRenderData(glowBuf, normBuf []float32) ([]float32, []float32) {
	glowBuf = glowBuf[:0]
	normBuf = normBuf[:0]

	for _, p := range ps.P {
		if p.Life < 0 || p.MaxLife <= 0 {
			continue
		}
		t := clampF(p.Life/p.MaxLife, 0, 1)

		col := p.Col
		a := 1.0 - t
		size := p.Size

		switch p.Kind {
		case ParticleSpark:
			col = lerpRGB(Palette.Spark, p.Col, t)
		case ParticleGlow:
			a = (1.0 - t) * 1.15
			size *= 1.0 + t*0.8
		case ParticleDust:
			fadeIn := t / 0.18
			if fadeIn > 1 {
				fadeIn = 1
			}
			a = (1.0 - t) * fadeIn * 0.7
			size *= 1.0 + t*1.6
		}
		if a <= 0 {
			continue
		}

		rc, gc, bc := col.Floats()
		ac := float32(clampF(a, 0, 1))

		// Additive: pre-multiply color by alpha.
		if p.Kind == ParticleGlow {
			rc *= ac
			gc *= ac
			bc *= ac
			glowBuf = append(glowBuf, float32(p.X), float32(p.Y), float32(p.Z), float32(size), rc, gc, bc, ac)
			continue
		}
		normBuf = append(normBuf, float32(p.X), float32(p.Y), float32(p.Z), float32(size), rc, gc, bc, ac)
	}
	return glowBuf, normBuf
}
