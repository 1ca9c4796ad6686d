// Package platform opens the OS window and turns its callbacks into core events.
package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/hubastard/sprig/engine/core"
)

var keyMap = map[glfw.Key]core.Key{
	glfw.KeyEscape: core.KeyEscape,
	glfw.KeySpace:  core.KeySpace,
	glfw.KeyW:      core.KeyW,
	glfw.KeyA:      core.KeyA,
	glfw.KeyS:      core.KeyS,
	glfw.KeyD:      core.KeyD,
	glfw.KeyF:      core.KeyF,
	glfw.KeyR:      core.KeyR,
}

var modMap = [...]struct {
	glfw glfw.ModifierKey
	core core.Mod
}{
	{glfw.ModShift, core.ModShift},
	{glfw.ModControl, core.ModCtrl},
	{glfw.ModAlt, core.ModAlt},
	{glfw.ModSuper, core.ModSuper},
}

// GLFWWindow implements core.Window over a GLFW window with a current GL 2.1 context.
type GLFWWindow struct {
	win     *glfw.Window
	handler func(core.Event)
}

var _ core.Window = (*GLFWWindow)(nil)

// NewGLFWWindow must run on the main thread. It leaves the window's context
// current and the GL function pointers loaded.
func NewGLFWWindow(cfg core.Config, handler func(core.Event)) (*GLFWWindow, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	// fixed-function drawing needs a compatibility context
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window %dx%d: %w", cfg.Width, cfg.Height, err)
	}
	win.MakeContextCurrent()

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	glfw.SwapInterval(interval)

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("load gl: %w", err)
	}
	core.LogDebug("window %q %dx%d, vsync=%v", cfg.Title, cfg.Width, cfg.Height, cfg.VSync)

	w := &GLFWWindow{win: win, handler: handler}
	w.installCallbacks()
	return w, nil
}

func (w *GLFWWindow) installCallbacks() {
	w.win.SetCloseCallback(func(*glfw.Window) {
		w.dispatch(core.EventCloseRequested{})
	})
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.dispatch(core.EventResize{W: width, H: height})
	})
	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.dispatch(core.EventMouseMove{X: x, Y: y})
	})
	w.win.SetScrollCallback(func(_ *glfw.Window, dx, dy float64) {
		w.dispatch(core.EventScroll{Xoff: dx, Yoff: dy})
	})
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		k, ok := keyMap[key]
		if !ok {
			return
		}
		w.dispatch(core.EventKey{Key: k, Down: action != glfw.Release, Mods: mapMods(mods)})
	})
}

func (w *GLFWWindow) dispatch(ev core.Event) {
	if w.handler != nil {
		w.handler(ev)
	}
}

func (w *GLFWWindow) PollEvents()                          { glfw.PollEvents() }
func (w *GLFWWindow) SwapBuffers()                         { w.win.SwapBuffers() }
func (w *GLFWWindow) ShouldClose() bool                    { return w.win.ShouldClose() }
func (w *GLFWWindow) RequestClose()                        { w.win.SetShouldClose(true) }
func (w *GLFWWindow) FramebufferSize() (int, int)          { return w.win.GetFramebufferSize() }
func (w *GLFWWindow) SetTitle(title string)                { w.win.SetTitle(title) }
func (w *GLFWWindow) SetEventCallback(cb func(core.Event)) { w.handler = cb }

// Destroy closes the window and terminates GLFW. Call after core.Run returns.
func (w *GLFWWindow) Destroy() {
	w.win.Destroy()
	glfw.Terminate()
}

func mapMods(m glfw.ModifierKey) core.Mod {
	var out core.Mod
	for _, e := range modMap {
		if m&e.glfw != 0 {
			out |= e.core
		}
	}
	return out
}
