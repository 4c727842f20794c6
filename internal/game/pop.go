package game

import "github.com/charmbracelet/harmonica"

var popSpring = harmonica.NewSpring(harmonica.FPS(60), PopFrequency, PopDamping)

const popFrame = 1.0 / 60.0

// Pop springs a mesh's display scale toward 1. Merge products start shrunk
// so they visibly swell into place; random drops start settled.
type Pop struct {
	Scale float64
	vel   float64
	acc   float64
}

func NewPop(merged bool) Pop {
	if merged {
		return Pop{Scale: PopStart}
	}
	return Pop{Scale: 1}
}

// Step advances the spring by one 60 Hz frame and returns the scale.
func (p *Pop) Step() float64 {
	p.Scale, p.vel = popSpring.Update(p.Scale, p.vel, 1.0)
	return p.Scale
}

// Advance runs the spring for the whole 60 Hz frames covered by dt and
// returns the scale. Leftover time carries into the next call.
func (p *Pop) Advance(dt float64) float64 {
	if p.Settled() {
		p.acc = 0
		return p.Scale
	}
	p.acc += dt
	for p.acc >= popFrame {
		p.acc -= popFrame
		p.Step()
	}
	return p.Scale
}

// Settled reports whether the spring has come to rest.
func (p *Pop) Settled() bool {
	d := p.Scale - 1
	return d*d < 1e-6 && p.vel*p.vel < 1e-6
}
