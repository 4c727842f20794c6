// Package audio synthesizes short effect sounds for arena events and plays
// them through a single oto context.
package audio

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"fruitmerge/internal/game"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)

	// Simultaneous voices beyond this are dropped to avoid clipping.
	maxVoices = 6
)

// SoundKind identifies different sound effects.
type SoundKind int

const (
	SoundDrop SoundKind = iota
	SoundMerge
	SoundCull
	SoundReset
)

// System plays procedural effects. Playback runs on its own goroutines and
// only ever reads finished sample buffers.
type System struct {
	ctx    *oto.Context
	ready  chan struct{}
	muted  atomic.Bool
	voices atomic.Int32
	volume float64
}

// oto allows one context per process.
var global *System

// Init creates the process-wide audio system, or returns the existing one.
func Init(muted bool) (*System, error) {
	if global != nil {
		global.SetMuted(muted)
		return global, nil
	}
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, fmt.Errorf("audio context: %w", err)
	}
	s := &System{ctx: ctx, ready: ready, volume: 0.58}
	s.muted.Store(muted)
	global = s
	return s, nil
}

// Attach plays a sound for every spawn, merge, cull and reset on bus.
func (s *System) Attach(bus *game.EventBus) {
	bus.Subscribe(game.EventSpawned, func(e game.Event) { s.Play(SoundDrop, e.Tier, 0.35) })
	bus.Subscribe(game.EventMerged, func(e game.Event) { s.Play(SoundMerge, e.Tier, 1) })
	bus.Subscribe(game.EventCulled, func(e game.Event) { s.Play(SoundCull, e.Tier, 0.6) })
	bus.Subscribe(game.EventReset, func(game.Event) { s.Play(SoundReset, 0, 0.8) })
}

func (s *System) SetMuted(m bool) { s.muted.Store(m) }

// ToggleMute flips the mute flag and returns the new state.
func (s *System) ToggleMute() bool {
	for {
		old := s.muted.Load()
		if s.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

func (s *System) Muted() bool { return s.muted.Load() }

// Play synthesizes kind for tier and plays it once. It never blocks.
func (s *System) Play(kind SoundKind, tier int, gain float64) {
	if s == nil || gain <= 0 || s.Muted() {
		return
	}
	select {
	case <-s.ready:
	default:
		return
	}
	if s.voices.Add(1) > maxVoices {
		s.voices.Add(-1)
		return
	}
	samples := Generate(kind, tier)
	if len(samples) == 0 {
		s.voices.Add(-1)
		return
	}
	go func() {
		defer s.voices.Add(-1)
		player := s.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(s.volume * min(gain, 1))
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}
