package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SpawnTimer turns wall-clock time into whole spawn periods.
type SpawnTimer struct {
	Period float64
	acc    float64
}

func NewSpawnTimer(period float64) *SpawnTimer {
	if period <= 0 {
		period = SpawnInterval
	}
	return &SpawnTimer{Period: period}
}

// Advance adds dt seconds and returns how many periods completed.
func (t *SpawnTimer) Advance(dt float64) int {
	if dt <= 0 {
		return 0
	}
	t.acc += dt
	n := int(t.acc / t.Period)
	t.acc -= float64(n) * t.Period
	return n
}

func (t *SpawnTimer) Reset() { t.acc = 0 }

// RandomSpawner picks drop positions above the floor and low starting tiers.
type RandomSpawner struct {
	rng    *Rand
	span   float64
	height float64
}

func NewRandomSpawner(cfg Config) *RandomSpawner {
	return &RandomSpawner{
		rng:    NewRand(cfg.Seed ^ 0x5EED5A11),
		span:   math.Max(0, cfg.FloorSize-MaxSpawnRadius*2),
		height: cfg.SpawnHeight,
	}
}

// Next returns a position uniformly inside the inset floor square at the
// drop height and a tier uniformly from [0, SpawnTierCount).
func (s *RandomSpawner) Next() (mgl64.Vec3, int) {
	x := (s.rng.Float64() - 0.5) * s.span
	z := (s.rng.Float64() - 0.5) * s.span
	tier := s.rng.Intn(min(SpawnTierCount, len(BallTypes)))
	return mgl64.Vec3{x, s.height, z}, tier
}
