// Command voxelstreamd is a minimal bootstrap proving the streaming
// coordinator, the real OpenGL sink and the real GLFW observer source
// compose into one running loop. It is not a game: there is no player,
// no physics, no UI — just a window, a ticking ResidentSet, and a single
// flying observer driven by WASD.
package main

import (
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"

	"voxelstream/internal/adapter/glsink"
	"voxelstream/internal/adapter/observerinput"
	"voxelstream/internal/config"
	"voxelstream/internal/stream"
	"voxelstream/internal/terrain"
)

func init() {
	runtime.LockOSThread()
}

const (
	winWidth  = 1280
	winHeight = 720
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(log)

	if err := glfw.Init(); err != nil {
		log.Error("glfw init failed", "err", err)
		os.Exit(1)
	}
	defer glfw.Terminate()

	window, err := setupWindow()
	if err != nil {
		log.Error("window setup failed", "err", err)
		os.Exit(1)
	}

	if err := gl.Init(); err != nil {
		log.Error("gl init failed", "err", err)
		os.Exit(1)
	}

	sink, err := glsink.New()
	if err != nil {
		log.Error("render sink init failed", "err", err)
		os.Exit(1)
	}

	source, err := observerinput.New(window, 0.2)
	if err != nil {
		log.Error("observer source init failed", "err", err)
		os.Exit(1)
	}

	rs := stream.NewResidentSet(log)
	loader := stream.NewChunkLoader(config.GetObserverRadius(), stream.Euclidean)
	pool := stream.NewWorkerPool(config.GetWorkerCount(), 256)

	closer.Bind(func() {
		pool.Shutdown()
		log.Info("worker pool stopped")
	})
	defer closer.Close()

	gen := terrain.SphereGenerator{}

	for !window.ShouldClose() {
		glfw.PollEvents()

		observers := source.Observers()
		stream.Tick(rs, []*stream.ChunkLoader{loader}, observers, gen, sink, pool)

		gl.Viewport(0, 0, winWidth, winHeight)
		gl.ClearColor(0.1, 0.1, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		sink.Draw(mgl32.Ident4())

		window.SwapBuffers()
	}
}

func setupWindow() (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(winWidth, winHeight, "voxelstreamd", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)
	return window, nil
}
