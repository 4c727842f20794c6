package game

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadConfig with a missing file: %v", err)
	}
	if cfg.FloorSize != FloorSize || cfg.Gravity != Gravity || cfg.Broadphase != BroadphaseNaive {
		t.Fatalf("defaults = %+v", cfg)
	}
	if got := cfg.BoundsLimit(); got != 3.5 {
		t.Fatalf("BoundsLimit = %v, want 3.5", got)
	}
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("FRUITMERGE_SEED", "42")
	t.Setenv("FRUITMERGE_FLOOR_SIZE", "7")
	t.Setenv("FRUITMERGE_BROADPHASE", " Quad ")
	t.Setenv("FRUITMERGE_MUTE", "true")
	t.Setenv("FRUITMERGE_SOLVER_ITERATIONS", "4")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 42 || cfg.FloorSize != 7 || cfg.Broadphase != BroadphaseQuad || !cfg.Mute || cfg.SolverIterations != 4 {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadConfigDotenv(t *testing.T) {
	// Register cleanup, then clear so the file's value is applied.
	t.Setenv("FRUITMERGE_WALL_HEIGHT", "")
	os.Unsetenv("FRUITMERGE_WALL_HEIGHT")

	path := filepath.Join(t.TempDir(), "arena.env")
	if err := os.WriteFile(path, []byte("FRUITMERGE_WALL_HEIGHT=6.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.WallHeight != 6.5 {
		t.Fatalf("wall height = %v, want 6.5", cfg.WallHeight)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"FRUITMERGE_GRAVITY", "down"},
		{"FRUITMERGE_SEED", "-1"},
		{"FRUITMERGE_MUTE", "maybe"},
		{"FRUITMERGE_FLOOR_SIZE", "0"},
		{"FRUITMERGE_BROADPHASE", "octree"},
		{"FRUITMERGE_SPAWN_INTERVAL", "-2"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig("")
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestOutOfBounds(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		x, y, z float64
		want    bool
	}{
		{10, 1.5, 0, true},
		{10, 3.0, 0, false},
		{0, 1.5, 10, true},
		{-3.6, 1.99, 0, true},
		{-3.6, 2.0, 0, false},
		{3.5, 0, 3.5, false},
		{0, -50, 0, false},
	}
	for _, tt := range tests {
		if got := cfg.OutOfBounds([3]float64{tt.x, tt.y, tt.z}); got != tt.want {
			t.Errorf("OutOfBounds(%v, %v, %v) = %v, want %v", tt.x, tt.y, tt.z, got, tt.want)
		}
	}
}
