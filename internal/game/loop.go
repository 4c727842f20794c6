package game

// Loop is what a frontend drives once per display refresh: the spawn timer,
// the controller, and the visual extras that hang off its events.
type Loop struct {
	Cfg        Config
	Controller *Controller
	Session    *Session
	Timer      *SpawnTimer
	Spawner    *RandomSpawner
	Particles  *ParticleSystem
	Camera     *Camera
	Events     *EventBus

	scene Scene
	frame uint64
}

// NewLoop builds a controller over world and scene. cam and particles are
// shared with the scene that renders them; nil gets a fresh one.
func NewLoop(cfg Config, world PhysicsWorld, scene Scene, cam *Camera, particles *ParticleSystem) *Loop {
	if cam == nil {
		cam = NewCamera(0)
	}
	if particles == nil {
		particles = NewParticleSystem(MaxParticles, cfg.Seed^0xBEAD)
	}
	bus := NewEventBus()
	l := &Loop{
		Cfg:        cfg,
		Controller: NewController(world, scene, cfg, bus),
		Session:    NewSession(),
		Timer:      NewSpawnTimer(cfg.SpawnInterval),
		Spawner:    NewRandomSpawner(cfg),
		Particles:  particles,
		Camera:     cam,
		Events:     bus,
		scene:      scene,
	}
	l.Session.Attach(bus)
	l.Controller.SetReporter(l.Session.Observe)

	bus.Subscribe(EventMerged, func(e Event) {
		l.Particles.SpawnMergeBurst(e.Pos, e.Tier)
		if e.Tier >= ShakeMinTier {
			l.Camera.AddShake(0.04*float64(e.Tier), 0.25)
		}
	})
	bus.Subscribe(EventCulled, func(e Event) {
		l.Particles.SpawnDustPuff(e.Pos)
	})
	return l
}

// Frame fires a due random spawn and then ticks the controller. The spawn
// clock follows the full wall-clock dt; periods missed during a stall
// collapse into one spawn. Everything else sees dt clamped to MaxFrameDelta.
// While paused the spawn clock stops and the scene is only redrawn.
func (l *Loop) Frame(dt float64) {
	if dt < 0 {
		dt = 0
	}
	l.frame++

	if l.Session.Paused() {
		l.scene.Render()
		return
	}

	if l.Timer.Advance(dt) > 0 {
		l.SpawnRandom()
	}
	if dt > MaxFrameDelta {
		dt = MaxFrameDelta
	}
	if a, ok := l.scene.(Animator); ok {
		a.Animate(dt)
	}
	l.Controller.Tick(dt)
	l.Particles.Update(dt, l.Cfg.FloorSize/2)
	l.Camera.UpdateShake(dt, l.Cfg.Seed^l.frame)
	l.Session.Update(dt)
}

// SpawnRandom drops one random low-tier sphere.
func (l *Loop) SpawnRandom() *TrackedObject {
	pos, tier := l.Spawner.Next()
	return l.Controller.Spawn(pos, tier)
}

// Reset clears the arena and restarts the spawn clock.
func (l *Loop) Reset() {
	l.Controller.Reset()
	l.Particles.Clear()
	l.Timer.Reset()
}

func (l *Loop) TogglePause() { l.Session.TogglePause() }
