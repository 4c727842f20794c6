package game

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrInvalidConfig wraps every configuration parse or range failure.
var ErrInvalidConfig = errors.New("invalid config")

// Broadphase names accepted by FRUITMERGE_BROADPHASE.
const (
	BroadphaseNaive = "naive"
	BroadphaseQuad  = "quad"
)

// Config holds the tunables that may be overridden at startup.
type Config struct {
	Seed             uint64
	Gravity          float64
	FloorSize        float64
	WallHeight       float64
	WallThickness    float64
	SpawnHeight      float64
	SpawnInterval    float64
	Broadphase       string
	SolverIterations int
	Mute             bool
}

// DefaultConfig returns the stock arena with a clock-derived seed.
func DefaultConfig() Config {
	return Config{
		Seed:             uint64(time.Now().UnixNano()),
		Gravity:          Gravity,
		FloorSize:        FloorSize,
		WallHeight:       WallHeight,
		WallThickness:    WallThickness,
		SpawnHeight:      BallSpawnHeight,
		SpawnInterval:    SpawnInterval,
		Broadphase:       BroadphaseNaive,
		SolverIterations: 10,
	}
}

// BoundsLimit is the horizontal distance past which a low sphere is offstage.
func (c Config) BoundsLimit() float64 {
	return c.FloorSize/2 + c.WallThickness
}

// Validate rejects values the arena cannot be built from.
func (c Config) Validate() error {
	switch {
	case c.FloorSize <= 0:
		return fmt.Errorf("%w: floor size %v", ErrInvalidConfig, c.FloorSize)
	case c.WallThickness < 0:
		return fmt.Errorf("%w: wall thickness %v", ErrInvalidConfig, c.WallThickness)
	case c.WallHeight <= 0:
		return fmt.Errorf("%w: wall height %v", ErrInvalidConfig, c.WallHeight)
	case c.SpawnInterval <= 0:
		return fmt.Errorf("%w: spawn interval %v", ErrInvalidConfig, c.SpawnInterval)
	case c.SolverIterations <= 0:
		return fmt.Errorf("%w: solver iterations %d", ErrInvalidConfig, c.SolverIterations)
	case c.Broadphase != BroadphaseNaive && c.Broadphase != BroadphaseQuad:
		return fmt.Errorf("%w: broadphase %q", ErrInvalidConfig, c.Broadphase)
	}
	return nil
}

// LoadConfig overlays an optional dotenv file and then the process
// environment onto DefaultConfig. A missing envFile is not an error.
func LoadConfig(envFile string) (Config, error) {
	cfg := DefaultConfig()
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	if s := os.Getenv("FRUITMERGE_SEED"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: FRUITMERGE_SEED: %v", ErrInvalidConfig, err)
		}
		cfg.Seed = v
	}
	floats := []struct {
		key string
		dst *float64
	}{
		{"FRUITMERGE_GRAVITY", &cfg.Gravity},
		{"FRUITMERGE_FLOOR_SIZE", &cfg.FloorSize},
		{"FRUITMERGE_WALL_HEIGHT", &cfg.WallHeight},
		{"FRUITMERGE_WALL_THICKNESS", &cfg.WallThickness},
		{"FRUITMERGE_SPAWN_HEIGHT", &cfg.SpawnHeight},
		{"FRUITMERGE_SPAWN_INTERVAL", &cfg.SpawnInterval},
	}
	for _, f := range floats {
		s := os.Getenv(f.key)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, f.key, err)
		}
		*f.dst = v
	}
	if s := os.Getenv("FRUITMERGE_SOLVER_ITERATIONS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%w: FRUITMERGE_SOLVER_ITERATIONS: %v", ErrInvalidConfig, err)
		}
		cfg.SolverIterations = v
	}
	if s := os.Getenv("FRUITMERGE_MUTE"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("%w: FRUITMERGE_MUTE: %v", ErrInvalidConfig, err)
		}
		cfg.Mute = v
	}
	if s := os.Getenv("FRUITMERGE_BROADPHASE"); s != "" {
		cfg.Broadphase = strings.ToLower(strings.TrimSpace(s))
	}
	return nil
}
