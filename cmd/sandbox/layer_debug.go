package main

import (
	"runtime"
	"time"

	"github.com/hubastard/sprig/engine/assets"
	"github.com/hubastard/sprig/engine/core"
)

type gpuInfo interface {
	GPUVendor() string
	GPURenderer() string
	GPUVersion() string
}

// LayerDebug logs frame statistics once per second and closes on Escape.
type LayerDebug struct {
	frames   int
	lastLog  time.Time
	interval time.Duration
}

func (l *LayerDebug) OnAttach(e *core.Engine) {
	l.interval = time.Second
	l.lastLog = time.Now()
	if g, ok := e.Renderer.(gpuInfo); ok {
		core.Logger().Info("gpu", "vendor", g.GPUVendor(), "renderer", g.GPURenderer(), "version", g.GPUVersion())
	}
	core.Logger().Info("cpu", "count", runtime.NumCPU())
}

func (l *LayerDebug) OnDetach(e *core.Engine) {}

func (l *LayerDebug) OnUpdate(e *core.Engine, dt float64) {}

func (l *LayerDebug) OnRender(e *core.Engine, alpha float64) {
	l.frames++
	elapsed := time.Since(l.lastLog)
	if elapsed < l.interval {
		return
	}

	stats := e.Paint.Stats()
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	core.Logger().Debug("frame",
		"fps", float64(l.frames)/elapsed.Seconds(),
		"quads", stats.QuadCount,
		"vertices", stats.TotalVertexCount(),
		"binds", stats.TextureBinds,
		"colors", stats.ColorChanges,
		"blends", stats.BlendChanges,
		"heapMB", float64(mem.HeapAlloc)/(1<<20),
		"goroutines", runtime.NumGoroutine(),
	)
	if m, ok := e.Textures.(*assets.TextureManager); ok {
		for _, t := range m.Resident() {
			core.Logger().Debug("texture", "key", t.Key, "refs", t.Refs, "w", t.Width, "h", t.Height)
		}
	}

	l.frames = 0
	l.lastLog = time.Now()
}

func (l *LayerDebug) OnEvent(e *core.Engine, ev core.Event) bool {
	if v, ok := ev.(core.EventKey); ok && v.Down && v.Key == core.KeyEscape {
		e.Window.RequestClose()
		return true
	}
	return false
}
