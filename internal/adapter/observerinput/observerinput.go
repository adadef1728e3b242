// Package observerinput implements stream.ObserverSource by turning raw
// GLFW window key state into an observer position each tick.
package observerinput

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"voxelstream/internal/stream"
)

// Source is a stream.ObserverSource backed by one GLFW window, tracking a
// single observer whose position is driven by WASD-style key state read
// each call to Observers.
type Source struct {
	window *glfw.Window
	id     uint64

	position mgl32.Vec2
	speed    float32
}

// New binds a Source to window, starting the tracked observer at the
// origin. The window must already have a current GL context.
func New(window *glfw.Window, speed float32) (*Source, error) {
	return &Source{window: window, id: 1, speed: speed}, nil
}

// Observers implements stream.ObserverSource: it samples WASD key state
// and integrates the tracked observer's XZ position by one frame's worth
// of movement, then returns the single-element observer set.
func (s *Source) Observers() []stream.Observer {
	var dx, dz float32
	if s.window.GetKey(glfw.KeyW) == glfw.Press {
		dz += 1
	}
	if s.window.GetKey(glfw.KeyS) == glfw.Press {
		dz -= 1
	}
	if s.window.GetKey(glfw.KeyD) == glfw.Press {
		dx += 1
	}
	if s.window.GetKey(glfw.KeyA) == glfw.Press {
		dx -= 1
	}
	if dx != 0 || dz != 0 {
		s.position = s.position.Add(mgl32.Vec2{dx, dz}.Normalize().Mul(s.speed))
	}

	return []stream.Observer{{ID: s.id, Position: s.position}}
}
