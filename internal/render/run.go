// Package render is the OpenGL frontend: a GLFW window showing the arena
// with lit spheres and particle sprites.
package render

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"fruitmerge/internal/audio"
	"fruitmerge/internal/game"
)

// RunDesktop opens the window and runs the simulation until it is closed.
func RunDesktop(cfg game.Config) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	window, err := initWindow()
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.MULTISAMPLE)

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	fbW, fbH := window.GetFramebufferSize()
	cam := game.NewCamera(float64(fbW) / float64(max(fbH, 1)))
	particles := game.NewParticleSystem(game.MaxParticles, cfg.Seed^0xBEAD)
	scene := NewScene(rend, cam, particles, cfg)
	scene.SetViewport(fbW, fbH)

	loop := game.NewLoop(cfg, game.NewPhysicsWorld(cfg), scene, cam, particles)

	sound, err := audio.Init(cfg.Mute)
	if err != nil {
		fmt.Fprintf(os.Stderr, "audio init failed (continuing without sound): %v\n", err)
	} else {
		sound.Attach(loop.Events)
	}

	input := NewInput()
	title := ""
	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press || window.GetKey(glfw.KeyQ) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}
		if input.JustPressed(window, glfw.KeySpace) {
			loop.TogglePause()
		}
		if input.JustPressed(window, glfw.KeyR) {
			loop.Reset()
			log.Printf("reset")
		}
		if input.JustPressed(window, glfw.KeyM) && sound != nil {
			log.Printf("muted: %v", sound.ToggleMute())
		}
		loop.Camera.Orbit(OrbitDir(window), dt)

		w, h := window.GetFramebufferSize()
		if w <= 0 || h <= 0 {
			continue
		}
		if w != fbW || h != fbH {
			fbW, fbH = w, h
			scene.SetViewport(w, h)
		}

		loop.Frame(dt)

		// No font atlas ships with the binary; the HUD lives in the title bar.
		s := loop.Session
		if t := fmt.Sprintf("%s | %s | %s", game.WindowTitle, s.CountLine(), s.SpawnLine()); t != title {
			title = t
			window.SetTitle(t)
		}
		window.SwapBuffers()
	}
	return nil
}
