package main

import (
	"fmt"
	"math"

	"github.com/hubastard/sprig/engine/colors"
	"github.com/hubastard/sprig/engine/core"
	"github.com/hubastard/sprig/engine/gfx/paint"
	"github.com/hubastard/sprig/engine/gfx/sprite"
	"github.com/hubastard/sprig/engine/scene"
	"github.com/hubastard/sprig/engine/stage"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	tileSize  = 16
	tileCount = 4
	floorY    = 360

	groundHeight = 160
)

var groundColor = colors.Color{0.18, 0.14, 0.11, 1}

type projector interface {
	SetProjection(vp [16]float32)
}

// ------- A simple sprite Layer demo -------
type LayerSprites struct {
	cam  *scene.OrthoCamera2D
	ctrl *scene.OrthoController2D

	ground *sprite.Sprite
	tiles  []*sprite.Sprite
	hero   *sprite.Sprite
	mirror *sprite.Sprite
	star   *sprite.Sprite
	banner *sprite.Sprite
	oneUp  *OneUp

	reveal      *gween.Tween
	revealWidth float32
	angle       float32
	time        float32
}

func (l *LayerSprites) OnAttach(e *core.Engine) {
	w, h := e.Window.FramebufferSize()
	l.cam = scene.NewPixelCamera(w, h)
	l.ctrl = scene.NewOrthoController2D(l.cam)

	var err error
	if l.ground, err = newGround(e.Textures, w); err != nil {
		core.LogFatal("create ground: %v", err)
	}
	for i := range tileCount {
		t, err := sprite.NewSub(e.Textures, "tiles.png", i*tileSize, 0, tileSize, tileSize)
		if err != nil {
			core.LogFatal("load tile %d: %v", i, err)
		}
		l.tiles = append(l.tiles, t)
	}
	if l.hero, err = sprite.New(e.Textures, "hero.png"); err != nil {
		core.LogFatal("load hero: %v", err)
	}
	l.mirror = l.hero.Clone()
	l.mirror.HFlip()

	if l.star, err = sprite.New(e.Textures, "star.png"); err != nil {
		core.LogFatal("load star: %v", err)
	}
	if l.banner, err = sprite.New(e.Textures, "banner.png"); err != nil {
		core.LogFatal("load banner: %v", err)
	}
	if l.oneUp, err = NewOneUp(e.Textures, 420, floorY, Left); err != nil {
		core.LogFatal("load 1up: %v", err)
	}
	l.oneUp.SetBounds(320, 640)
	l.restartReveal()
}

// newGround uploads a solid band below the floor tiles as an in-memory texture.
func newGround(textures core.TextureProvider, width int) (*sprite.Sprite, error) {
	c, ok := textures.(stage.ImageCreator)
	if !ok {
		return nil, fmt.Errorf("texture provider %T cannot create images", textures)
	}
	tex, err := c.CreateFromImage(stage.SolidImage(width, groundHeight, groundColor))
	if err != nil {
		return nil, err
	}
	return sprite.FromTexture(tex), nil
}

func (l *LayerSprites) restartReveal() {
	l.reveal = gween.New(0, l.banner.Width(), 1.5, ease.OutCubic)
	l.revealWidth = 0
}

func (l *LayerSprites) OnDetach(e *core.Engine) {
	for _, t := range l.tiles {
		t.Release()
	}
	l.tiles = nil
	for _, s := range []*sprite.Sprite{l.ground, l.hero, l.mirror, l.star, l.banner} {
		if s != nil {
			s.Release()
		}
	}
	if l.oneUp != nil {
		l.oneUp.Release()
	}
}

func (l *LayerSprites) OnUpdate(e *core.Engine, dt float64) {
	step := float32(dt)
	l.ctrl.Update(e, step)
	l.time += step
	l.angle = float32(math.Mod(float64(l.angle+90*step), 360))

	if l.reveal != nil {
		var done bool
		l.revealWidth, done = l.reveal.Update(step)
		if done {
			l.reveal = nil
		}
	}
	l.oneUp.Update(step)

	if e.Input.WasPressed(core.KeyF) {
		l.hero.HFlip()
	}
	if e.Input.WasPressed(core.KeyR) {
		l.restartReveal()
	}
	if e.Input.WasPressed(core.KeySpace) {
		l.oneUp.Collect()
	}
}

func (l *LayerSprites) OnRender(e *core.Engine, alpha float64) {
	if p, ok := e.Renderer.(projector); ok {
		p.SetProjection(l.cam.VP())
	}
	ps := e.Paint

	l.ground.Draw(ps, 0, floorY+tileSize, 1, sprite.EffectNone)

	// floor strip, cycling through the tile set
	for i := range 40 {
		l.tiles[i%tileCount].Draw(ps, float32(i*tileSize), floorY, 1, sprite.EffectNone)
	}

	l.hero.Draw(ps, 64, floorY-l.hero.Height(), 1, sprite.EffectNone)
	l.mirror.Draw(ps, 104, floorY-l.mirror.Height(), 1, sprite.EffectNone)
	// ghost copy fades in and out
	ghost := 0.5 + 0.5*float32(math.Sin(float64(l.time*2)))
	l.hero.Draw(ps, 144, floorY-l.hero.Height(), ghost, sprite.EffectVFlip)

	pulse := colors.Yellow.WithAlpha(0.75)
	l.star.DrawTransformed(ps, 220, 200, 1, l.angle, pulse, paint.AdditiveBlend, sprite.EffectNone)
	l.star.DrawTransformed(ps, 260, 200, 0.5, -l.angle, colors.White, paint.DefaultBlend, sprite.EffectHFlip)

	if l.revealWidth > 0 {
		l.banner.DrawPart(ps, 0, 0, 64, 96, l.revealWidth, l.banner.Height(), 1, sprite.EffectNone)
	}

	l.oneUp.Draw(ps)

	// leave the pipeline as the next layer expects it
	ps.Restore()
}

func (l *LayerSprites) OnEvent(e *core.Engine, ev core.Event) bool {
	if v, ok := ev.(core.EventResize); ok {
		l.cam.SetViewportPixels(v.W, v.H)
	}
	return l.ctrl.HandleEvent(e, ev)
}
