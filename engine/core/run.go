package core

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/hubastard/sprig/engine/gfx/paint"
)

// Run wires the platform window, renderer and texture provider and executes the main loop.
func Run(
	app App,
	cfg Config,
	newWindow func(Config) (Window, error),
	newRenderer func(Window, Config) (Renderer, error),
	newTextures func(Renderer, Config) (TextureProvider, error),
) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	rend, err := newRenderer(win, cfg)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer rend.Shutdown()

	textures, err := newTextures(rend, cfg)
	if err != nil {
		return fmt.Errorf("create texture provider: %w", err)
	}
	if c, ok := textures.(io.Closer); ok {
		// textures live in the renderer's context, so close them before it shuts down
		defer func() {
			if err := c.Close(); err != nil {
				LogError("close textures: %v", err)
			}
		}()
	}

	w, h := win.FramebufferSize()
	rend.Resize(w, h)

	eng := &Engine{
		Window:   win,
		Renderer: rend,
		Paint:    paint.NewState(rend),
		Textures: textures,
		Input:    NewInput(),
		start:    time.Now(),
	}
	win.SetEventCallback(func(ev Event) {
		eng.Input.Handle(ev)
		app.OnEvent(eng, ev)
		if _, ok := ev.(EventResize); ok {
			fw, fh := win.FramebufferSize()
			if fw < 1 || fh < 1 {
				return
			}
			rend.Resize(fw, fh)
		}
	})

	app.OnStart(eng)

	// Fixed-timestep (60 Hz) with interpolation
	const tick = time.Second / 60
	var (
		accum   time.Duration
		prev    = time.Now()
		maxStep = 10 // prevent spiral of death
	)

	hook, _ := textures.(FrameHook)
	for !win.ShouldClose() {
		now := time.Now()
		frame := now.Sub(prev)
		prev = now
		accum += frame

		// Poll OS events (platform will emit via callbacks)
		win.PollEvents()

		// Run fixed updates
		steps := 0
		for accum >= tick && steps < maxStep {
			app.OnUpdate(eng, float64(tick)/float64(time.Second))
			accum -= tick
			steps++
		}
		// Interpolation factor for rendering
		alpha := float64(accum) / float64(tick)

		if hook != nil {
			hook.BeginFrame()
		}

		// Render
		eng.Paint.ResetStats()
		rend.Clear(cfg.ClearColor)
		app.OnRender(eng, alpha)

		// Present
		win.SwapBuffers()
	}

	app.OnShutdown(eng)
	LogInfo("engine exit after %s", eng.Uptime().Round(time.Millisecond))
	return nil
}
