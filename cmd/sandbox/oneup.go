package main

import (
	"github.com/hubastard/sprig/engine/core"
	"github.com/hubastard/sprig/engine/gfx/paint"
	"github.com/hubastard/sprig/engine/gfx/sprite"
)

type Direction int

const (
	Left Direction = iota
	Right
)

const (
	oneUpSpeed   = 100 // px/s
	oneUpJump    = 300 // px/s
	oneUpGravity = 1000
)

// OneUp is a bouncing extra-life pickup. It hops along the floor in its
// direction and turns around at the walls.
type OneUp struct {
	sprite *sprite.Sprite
	x, y   float32
	vx, vy float32

	floor      float32
	minX, maxX float32
	collected  bool
}

func NewOneUp(textures core.TextureProvider, x, floor float32, dir Direction) (*OneUp, error) {
	s, err := sprite.New(textures, "oneup.png")
	if err != nil {
		return nil, err
	}
	o := &OneUp{
		sprite: s,
		x:      x,
		y:      floor - s.Height(),
		vx:     oneUpSpeed,
		vy:     -oneUpJump,
		floor:  floor,
		maxX:   1 << 20,
	}
	if dir == Left {
		o.vx = -oneUpSpeed
	}
	return o, nil
}

// SetBounds limits horizontal travel; the pickup turns around at either edge.
func (o *OneUp) SetBounds(minX, maxX float32) { o.minX, o.maxX = minX, maxX }

func (o *OneUp) Update(dt float32) {
	if o.collected {
		return
	}
	o.vy += oneUpGravity * dt
	o.x += o.vx * dt
	o.y += o.vy * dt

	if bottom := o.y + o.sprite.Height(); bottom >= o.floor {
		o.y = o.floor - o.sprite.Height()
		o.vy = -oneUpJump
	}
	if o.x < o.minX {
		o.x, o.vx = o.minX, -o.vx
	}
	if right := o.x + o.sprite.Width(); right > o.maxX {
		o.x, o.vx = o.maxX-o.sprite.Width(), -o.vx
	}
}

func (o *OneUp) Draw(ps *paint.State) {
	if o.collected {
		return
	}
	effect := sprite.EffectNone
	if o.vx < 0 {
		effect = sprite.EffectHFlip
	}
	o.sprite.Draw(ps, o.x, o.y, 1, effect)
}

// Collect removes the pickup and drops its texture reference.
func (o *OneUp) Collect() {
	if o.collected {
		return
	}
	o.collected = true
	o.sprite.Release()
	core.LogInfo("1up collected")
}

func (o *OneUp) Collected() bool { return o.collected }

func (o *OneUp) Release() { o.sprite.Release() }
