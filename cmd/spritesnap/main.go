// Command spritesnap renders a TOML sprite scene to a PNG without a window.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/hubastard/sprig/engine/assets"
	"github.com/hubastard/sprig/engine/core"
	"github.com/hubastard/sprig/engine/gfx/paint"
	"github.com/hubastard/sprig/engine/gfx/raster"
	"github.com/hubastard/sprig/engine/stage"
)

func main() {
	var (
		out      = flag.String("o", "snap.png", "output PNG path")
		dryRun   = flag.Bool("dry-run", false, "log pipeline calls instead of rasterizing")
		logLevel = flag.String("log-level", "info", "debug, info, warn or error")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: spritesnap [flags] scene.toml\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	core.SetLogLevel(*logLevel)

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(flag.Arg(0), *out, *dryRun); err != nil {
		core.LogFatal("%v", err)
	}
}

func run(scenePath, out string, dryRun bool) error {
	sc, err := stage.LoadScene(scenePath)
	if err != nil {
		return err
	}
	root := sc.Textures
	if !filepath.IsAbs(root) {
		root = filepath.Join(filepath.Dir(scenePath), root)
	}

	pipe := raster.New(sc.Width, sc.Height)
	pipe.SetNearest(sc.Nearest)
	defer pipe.Shutdown()

	textures := assets.NewTextureManager(root, pipe)
	defer textures.Close()

	if dryRun {
		rec := &paint.Recorder{}
		ps := paint.NewState(rec)
		if err := sc.Draw(textures, ps); err != nil {
			return err
		}
		for i, c := range rec.Calls {
			core.Logger().Info(c.String(), "n", i, "kind", c.Kind)
		}
		st := ps.Stats()
		core.Logger().Info("dry run", "quads", st.QuadCount, "binds", st.TextureBinds, "calls", len(rec.Calls))
		return nil
	}

	pipe.Clear(sc.Background)
	ps := paint.NewState(pipe)
	if err := sc.Draw(textures, ps); err != nil {
		return err
	}
	return writePNG(out, pipe)
}

func writePNG(path string, pipe *raster.Pipeline) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	if err := png.Encode(f, pipe.Frame()); err != nil {
		f.Close()
		return fmt.Errorf("encode %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	core.LogInfo("wrote %s (%dx%d)", path, pipe.Frame().Bounds().Dx(), pipe.Frame().Bounds().Dy())
	return nil
}
