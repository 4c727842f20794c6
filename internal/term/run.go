// Package term is the terminal frontend: the arena drawn with shaded cells
// on a tcell screen.
package term

import (
	"context"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"fruitmerge/internal/audio"
	"fruitmerge/internal/game"
)

// orbitPulse is how long one arrow key press orbits the camera for.
// Terminals deliver key repeats rather than held state.
const orbitPulse = 0.12

// Options tunes the terminal runner.
type Options struct {
	FPS   int           // redraw rate; 0 means 60
	Sound *audio.System // nil runs silent
}

// Runner owns one simulation shown on a screen.
type Runner struct {
	screen tcell.Screen
	scene  *Scene
	loop   *game.Loop
	sound  *audio.System
}

// NewRunner wires a fresh arena to screen. The screen must already be
// initialised; the caller finalises it.
func NewRunner(screen tcell.Screen, cfg game.Config, sound *audio.System) *Runner {
	cam := game.NewCamera(0)
	particles := game.NewParticleSystem(game.MaxParticles, cfg.Seed^0xBEAD)
	scene := NewScene(screen, cam, particles, cfg)
	loop := game.NewLoop(cfg, game.NewPhysicsWorld(cfg), scene, cam, particles)
	scene.SetSession(loop.Session)
	if sound != nil {
		sound.Attach(loop.Events)
	}
	return &Runner{screen: screen, scene: scene, loop: loop, sound: sound}
}

func (r *Runner) Loop() *game.Loop { return r.loop }

// Run ticks the simulation until ctx ends or the user quits.
func Run(ctx context.Context, screen tcell.Screen, cfg game.Config, opts Options) error {
	return NewRunner(screen, cfg, opts.Sound).Run(ctx, opts.FPS)
}

func (r *Runner) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-eventChan:
			if !r.handleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			r.loop.Frame(dt)
		}
	}
}

// handleEvent applies one input event and reports whether to keep running.
func (r *Runner) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			r.loop.Camera.Orbit(-1, orbitPulse)
		case tcell.KeyRight:
			r.loop.Camera.Orbit(1, orbitPulse)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case ' ':
				r.loop.TogglePause()
			case 'r', 'R':
				r.loop.Reset()
				log.Printf("reset")
			case 'm', 'M':
				if r.sound != nil {
					log.Printf("muted: %v", r.sound.ToggleMute())
				}
			}
		}
	case *tcell.EventResize:
		r.screen.Sync()
	}
	return true
}
