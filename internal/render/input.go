package render

import "github.com/go-gl/glfw/v3.3/glfw"

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{prevKeys: make(map[glfw.Key]bool)}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// OrbitDir returns -1, 0 or 1 from the left/right arrow keys.
func OrbitDir(window *glfw.Window) float64 {
	dir := 0.0
	if window.GetKey(glfw.KeyLeft) == glfw.Press {
		dir--
	}
	if window.GetKey(glfw.KeyRight) == glfw.Press {
		dir++
	}
	return dir
}
