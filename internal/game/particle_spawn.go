package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SpawnMergeBurst throws sparks and a glow flash out of a fresh merge product.
// Bigger tiers throw more and faster.
func (ps *ParticleSystem) SpawnMergeBurst(pos mgl64.Vec3, tier int) {
	bt := Ball(tier)
	intensity := 0.6 + 0.25*float64(tier)

	r := NewRand(ps.seed ^ math.Float64bits(pos.X()) ^ math.Float64bits(pos.Z())<<1 ^ uint64(tier))
	ps.seed = r.NextU64()

	// Sparks.
	for range int(24 * intensity) {
		dir := r.UnitVec3()
		spd := r.RangeF(1.5, 4.0) * intensity
		start := pos.Add(dir.Mul(bt.Radius))
		ps.Add(Particle{
			X: start.X(), Y: start.Y(), Z: start.Z(),
			VX: dir.X() * spd, VY: math.Abs(dir.Y())*spd + 1.5, VZ: dir.Z() * spd,
			Size: r.RangeF(0.04, 0.08), MaxLife: r.RangeF(0.35, 0.8),
			Col: bt.Color.Add(r.Range(-20, 20), r.Range(-20, 20), r.Range(-20, 20)), Kind: ParticleSpark,
		})
	}

	// Glow.
	for range int(6 * intensity) {
		dir := r.UnitVec3()
		ps.Add(Particle{
			X: pos.X(), Y: pos.Y(), Z: pos.Z(),
			VX: dir.X() * 0.4, VY: dir.Y() * 0.4, VZ: dir.Z() * 0.4,
			Size: bt.Radius * r.RangeF(1.2, 1.8), MaxLife: r.RangeF(0.15, 0.3),
			Col: Palette.Glow, Kind: ParticleGlow,
		})
	}
}

// SpawnDustPuff marks where a sphere dropped offstage.
func (ps *ParticleSystem) SpawnDustPuff(pos mgl64.Vec3) {
	r := NewRand(ps.seed ^ math.Float64bits(pos.Y()))
	ps.seed = r.NextU64()
	for range 10 {
		ps.Add(Particle{
			X: pos.X() + r.RangeF(-0.2, 0.2), Y: pos.Y(), Z: pos.Z() + r.RangeF(-0.2, 0.2),
			VX: r.RangeF(-0.3, 0.3), VY: r.RangeF(0.2, 0.6), VZ: r.RangeF(-0.3, 0.3),
			Size: r.RangeF(0.1, 0.2), MaxLife: r.RangeF(0.5, 1.0),
			Col: Palette.HUDDim, Kind: ParticleDust,
		})
	}
}
