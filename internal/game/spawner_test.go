package game

import (
	"math"
	"testing"
)

func TestSpawnTimer(t *testing.T) {
	timer := NewSpawnTimer(1)
	steps := []struct {
		dt   float64
		want int
	}{
		{0.5, 0},
		{0.25, 0},
		{0.25, 1},
		{2.5, 2},
		{0.5, 1},
		{0, 0},
		{-1, 0},
	}
	for i, s := range steps {
		if got := timer.Advance(s.dt); got != s.want {
			t.Fatalf("step %d: Advance(%v) = %d, want %d", i, s.dt, got, s.want)
		}
	}
	timer.Advance(0.75)
	timer.Reset()
	if got := timer.Advance(0.5); got != 0 {
		t.Fatalf("after reset Advance(0.5) = %d, want 0", got)
	}
}

func TestRandomSpawnerRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 99
	s := NewRandomSpawner(cfg)
	half := (cfg.FloorSize - 2*MaxSpawnRadius) / 2
	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		pos, tier := s.Next()
		if math.Abs(pos.X()) > half || math.Abs(pos.Z()) > half {
			t.Fatalf("spawn %v outside ±%v", pos, half)
		}
		if pos.Y() != cfg.SpawnHeight {
			t.Fatalf("spawn height = %v, want %v", pos.Y(), cfg.SpawnHeight)
		}
		if tier < 0 || tier >= SpawnTierCount {
			t.Fatalf("tier = %d, want [0,%d)", tier, SpawnTierCount)
		}
		seen[tier] = true
	}
	if len(seen) != SpawnTierCount {
		t.Fatalf("tiers seen = %v, want all %d", seen, SpawnTierCount)
	}
}

func TestRandomSpawnerDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7
	a, b := NewRandomSpawner(cfg), NewRandomSpawner(cfg)
	for i := 0; i < 20; i++ {
		pa, ta := a.Next()
		pb, tb := b.Next()
		if pa != pb || ta != tb {
			t.Fatalf("draw %d differs: %v/%d vs %v/%d", i, pa, ta, pb, tb)
		}
	}
}

func TestRandomSpawnerTinyFloor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FloorSize = 1
	pos, _ := NewRandomSpawner(cfg).Next()
	if pos.X() != 0 || pos.Z() != 0 {
		t.Fatalf("spawn on a floor narrower than the inset = %v, want centre", pos)
	}
}
