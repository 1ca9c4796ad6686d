package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hubastard/sprig/engine/assets"
	"github.com/hubastard/sprig/engine/core"
	glbackend "github.com/hubastard/sprig/engine/gfx/gl"
	"github.com/hubastard/sprig/engine/platform"
)

func main() {
	configPath := flag.String("config", "sandbox.toml", "path to the sandbox TOML config")
	flag.Parse()

	cfg, err := core.LoadConfig(*configPath)
	if err != nil {
		core.LogFatal("%v", err)
	}
	core.SetLogLevel(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := &core.LayerApp{}
	app.Layers.Push(&LayerSprites{})
	app.Layers.Push(&LayerDebug{})

	var win *platform.GLFWWindow
	newWindow := func(cfg core.Config) (core.Window, error) {
		w, err := platform.NewGLFWWindow(cfg, nil)
		win = w
		return w, err
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(win, cfg)
	}
	newTextures := func(r core.Renderer, cfg core.Config) (core.TextureProvider, error) {
		up, ok := r.(assets.Uploader)
		if !ok {
			return nil, fmt.Errorf("renderer %T cannot upload textures", r)
		}
		m := assets.NewTextureManager(cfg.AssetRoot, up)
		if cfg.HotReload {
			if err := m.Watch(ctx); err != nil {
				return nil, err
			}
		}
		return m, nil
	}

	err = core.Run(app, cfg, newWindow, newRenderer, newTextures)
	if win != nil {
		win.Destroy()
	}
	if err != nil {
		core.LogError("%v", err)
		os.Exit(1)
	}
}
