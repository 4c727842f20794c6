package game

import "fmt"

type RunState int

const (
	StateRunning RunState = iota
	StatePaused
)

// Session accumulates the statistics the HUD shows.
type Session struct {
	State       RunState
	Elapsed     float64
	Live        int
	Spawned     int
	Merges      int
	Removed     int
	Culled      int
	HighestTier int

	// Last is the most recent random drop; merge products never replace it.
	Last    SpawnRecord
	HasLast bool
}

func NewSession() *Session {
	return &Session{State: StateRunning}
}

// Attach keeps the session's counters in step with bus.
func (s *Session) Attach(bus *EventBus) {
	bus.Subscribe(EventSpawned, func(e Event) {
		s.Spawned++
		s.Last = SpawnRecord{Position: e.Pos, Tier: e.Tier}
		s.HasLast = true
		s.noteTier(e.Tier)
	})
	bus.Subscribe(EventMerged, func(e Event) {
		s.Merges++
		s.noteTier(e.Tier)
	})
	bus.Subscribe(EventRemoved, func(Event) { s.Removed++ })
	bus.Subscribe(EventCulled, func(Event) { s.Culled++ })
	bus.Subscribe(EventReset, func(Event) { s.Reset() })
}

func (s *Session) noteTier(tier int) {
	if tier > s.HighestTier {
		s.HighestTier = tier
	}
}

// Observe records the end-of-frame report.
func (s *Session) Observe(r FrameReport) { s.Live = r.Live }

// Update advances the session clock while running.
func (s *Session) Update(dt float64) {
	if s.State == StateRunning {
		s.Elapsed += dt
	}
}

func (s *Session) TogglePause() {
	if s.State == StatePaused {
		s.State = StateRunning
	} else {
		s.State = StatePaused
	}
}

func (s *Session) Paused() bool { return s.State == StatePaused }

// Reset zeroes the counters but keeps the run state.
func (s *Session) Reset() {
	*s = Session{State: s.State}
}

func (s *Session) CountLine() string {
	return fmt.Sprintf("Balls: %d", s.Live)
}

func (s *Session) SpawnLine() string {
	if !s.HasLast {
		return "Last Spawn: -"
	}
	p := s.Last.Position
	return fmt.Sprintf("Last Spawn: X: %.2f, Y: %.2f, Z: %.2f, Type: %d", p.X(), p.Y(), p.Z(), s.Last.Tier)
}

// StatsLine summarises merge progress.
func (s *Session) StatsLine() string {
	line := fmt.Sprintf("Merges: %d  Culled: %d  Top tier: %d", s.Merges, s.Culled, s.HighestTier)
	if s.Paused() {
		line += "  [PAUSED]"
	}
	return line
}
