// Command spriteview shows a TOML sprite scene in an ebiten window, reloading
// textures when their files change.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hubastard/sprig/engine/assets"
	"github.com/hubastard/sprig/engine/core"
	"github.com/hubastard/sprig/engine/gfx/ebitenpipe"
	"github.com/hubastard/sprig/engine/gfx/paint"
	"github.com/hubastard/sprig/engine/stage"
)

func main() {
	var (
		scale    = flag.Int("scale", 4, "window pixels per scene pixel")
		watch    = flag.Bool("watch", true, "reload textures when their files change")
		logLevel = flag.String("log-level", "info", "debug, info, warn or error")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: spriteview [flags] scene.toml\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	core.SetLogLevel(*logLevel)

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(flag.Arg(0), *scale, *watch); err != nil {
		core.LogFatal("%v", err)
	}
}

func run(scenePath string, scale int, watch bool) error {
	sc, err := stage.LoadScene(scenePath)
	if err != nil {
		return err
	}
	root := sc.Textures
	if !filepath.IsAbs(root) {
		root = filepath.Join(filepath.Dir(scenePath), root)
	}

	pipe := ebitenpipe.New()
	if sc.Nearest {
		pipe.SetFilter(ebiten.FilterNearest)
	}
	textures := assets.NewTextureManager(root, pipe)
	defer textures.Close()

	if watch {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := textures.Watch(ctx); err != nil {
			return err
		}
	}

	loaded, err := sc.Load(textures)
	if err != nil {
		return err
	}
	defer loaded.Release()

	g := &viewer{
		scene:    sc,
		loaded:   loaded,
		textures: textures,
		pipe:     pipe,
		paint:    paint.NewState(pipe),
	}
	ebiten.SetWindowTitle("spriteview - " + filepath.Base(scenePath))
	ebiten.SetWindowSize(sc.Width*scale, sc.Height*scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
