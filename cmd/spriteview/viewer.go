package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/hubastard/sprig/engine/assets"
	"github.com/hubastard/sprig/engine/gfx/ebitenpipe"
	"github.com/hubastard/sprig/engine/gfx/paint"
	"github.com/hubastard/sprig/engine/stage"
)

// viewer implements ebiten.Game over a loaded scene.
type viewer struct {
	scene    *stage.Scene
	loaded   *stage.Loaded
	textures *assets.TextureManager
	pipe     *ebitenpipe.Pipeline
	paint    *paint.State
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	// ebiten calls Update and Draw on one goroutine, so reloads are safe here
	v.textures.BeginFrame()
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(v.scene.Background.RGBA8())
	v.pipe.SetTarget(screen)
	v.paint.ResetStats()
	v.loaded.Draw(v.paint)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return v.scene.Width, v.scene.Height
}
