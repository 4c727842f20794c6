package game

// Arena dimensions (world units, Y up).
const (
	Gravity         = -9.82
	FloorSize       = 5.0
	BallSpawnHeight = 8.0
	WallHeight      = 5.0
	WallThickness   = 1.0
)

// Simulation timing.
const (
	FixedStep     = 1.0 / 60.0
	MaxSubSteps   = 3
	SpawnInterval = 1.0 // seconds between random spawns
	MaxFrameDelta = 0.1 // clamp for a single frame's wall-clock delta
)

// Random spawn constraints.
const (
	// SpawnTierCount limits random spawns to the lowest tiers; merges are
	// the only way to reach the others.
	SpawnTierCount = 3
	// MaxSpawnRadius insets the spawn square so spheres never start inside a wall.
	MaxSpawnRadius = 1.0
)

// OutOfBoundsHeight is the height below which a sphere outside the walls is
// culled. It is deliberately independent of WallHeight.
const OutOfBoundsHeight = 2.0

// Window defaults.
const (
	WindowWidth  = 1024
	WindowHeight = 768
	WindowTitle  = "A Fruits Game Simulation"
)

// Camera defaults.
const (
	CameraFOV    = 45.0 // degrees
	CameraNear   = 0.1
	CameraFar    = 100.0
	CameraEyeY   = 12.0
	CameraEyeZ   = 16.0
	CameraLookY  = 4.0
	OrbitRate    = 1.2 // rad/s
	ShakeMinTier = 5   // merges producing this tier or higher shake the camera
)

// Lighting.
const (
	AmbientIntensity     = 0.4
	DirectionalIntensity = 0.8
)

// Particles.
const (
	MaxParticles      = 4000
	MaxParticleRender = 4000
)

// Sphere tessellation.
const (
	SphereSegments = 32
	SphereRings    = 32
)

// Pop-in spring for freshly merged spheres.
const (
	PopFrequency = 9.0
	PopDamping   = 0.35
	PopStart     = 0.55
)
