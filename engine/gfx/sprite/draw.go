package sprite

import (
	"fmt"
	"math"
	"strings"

	"github.com/hubastard/sprig/engine/colors"
	"github.com/hubastard/sprig/engine/gfx/paint"
)

// Effect flips a single draw without touching the sprite.
type Effect uint8

const (
	EffectNone  Effect = 0
	EffectHFlip Effect = 1 << 0
	EffectVFlip Effect = 1 << 1
)

func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectHFlip:
		return "hflip"
	case EffectVFlip:
		return "vflip"
	case EffectHFlip | EffectVFlip:
		return "hflip|vflip"
	}
	return "invalid"
}

// ParseEffect accepts the names String produces, plus "" and "both".
func ParseEffect(s string) (Effect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return EffectNone, nil
	case "hflip":
		return EffectHFlip, nil
	case "vflip":
		return EffectVFlip, nil
	case "hflip|vflip", "vflip|hflip", "both":
		return EffectHFlip | EffectVFlip, nil
	}
	return EffectNone, fmt.Errorf("unknown effect %q", s)
}

// uvRect is a texture window for one draw call.
type uvRect struct {
	left, top, right, bottom float32
}

func (r uvRect) apply(e Effect) uvRect {
	if e&EffectHFlip != 0 {
		r.left, r.right = r.right, r.left
	}
	if e&EffectVFlip != 0 {
		r.top, r.bottom = r.bottom, r.top
	}
	return r
}

func (s *Sprite) window() uvRect {
	return uvRect{s.uvLeft, s.uvTop, s.uvRight, s.uvBottom}
}

func (s *Sprite) bind(ps *paint.State) {
	if s.texture == nil {
		panic("sprite: draw after Release")
	}
	ps.BindTexture(s.texture.Handle())
}

// Draw renders the sprite axis-aligned with its top-left corner at (x, y).
//
// The color is set to white at the given alpha and left that way; blend is
// not touched. Callers mixing Draw with their own paint changes must restore
// state themselves.
func (s *Sprite) Draw(ps *paint.State, x, y, alpha float32, effect Effect) {
	ps.SetColor(colors.White.WithAlpha(alpha))
	s.bind(ps)
	ps.Submit(axisQuad(x, y, x+s.width, y+s.height, s.window().apply(effect)))
}

// DrawTransformed renders the sprite rotated clockwise by angle degrees about
// its center, tinted and blended. The tint's alpha is multiplied by alpha.
// Color and blend are restored to opaque white and paint.DefaultBlend before
// returning.
func (s *Sprite) DrawTransformed(ps *paint.State, x, y, alpha, angle float32, tint colors.Color, blend paint.Blend, effect Effect) {
	s.bind(ps)
	ps.SetBlend(blend)
	ps.SetColor(tint.MulAlpha(alpha))
	ps.Submit(rotatedQuad(x, y, x+s.width, y+s.height, angle, s.window().apply(effect)))
	ps.Restore()
}

// DrawPart renders the (srcX, srcY, width, height) pixel window of the sprite
// at (dstX, dstY). Source pixels are in the sprite's own draw space, so the
// window follows any HFlip/VFlip already applied. State is left as in Draw.
// A sprite with no area draws nothing.
func (s *Sprite) DrawPart(ps *paint.State, srcX, srcY, dstX, dstY, width, height, alpha float32, effect Effect) {
	if s.width == 0 || s.height == 0 {
		return
	}
	base := s.window()
	uvW := base.right - base.left
	uvH := base.bottom - base.top

	part := uvRect{
		left:   base.left + uvW*srcX/s.width,
		top:    base.top + uvH*srcY/s.height,
		right:  base.left + uvW*(srcX+width)/s.width,
		bottom: base.top + uvH*(srcY+height)/s.height,
	}

	ps.SetColor(colors.White.WithAlpha(alpha))
	s.bind(ps)
	ps.Submit(axisQuad(dstX, dstY, dstX+width, dstY+height, part.apply(effect)))
}

func axisQuad(left, top, right, bottom float32, uv uvRect) paint.Quad {
	return paint.Quad{
		paint.TopLeft:     {X: left, Y: top, U: uv.left, V: uv.top},
		paint.TopRight:    {X: right, Y: top, U: uv.right, V: uv.top},
		paint.BottomRight: {X: right, Y: bottom, U: uv.right, V: uv.bottom},
		paint.BottomLeft:  {X: left, Y: bottom, U: uv.left, V: uv.bottom},
	}
}

// rotatedQuad rotates the corners of an axis-aligned quad about its center.
// With y pointing down a positive angle turns clockwise on screen.
func rotatedQuad(left, top, right, bottom, angle float32, uv uvRect) paint.Quad {
	q := axisQuad(left, top, right, bottom, uv)
	if angle == 0 {
		return q
	}

	cx := (left + right) / 2
	cy := (top + bottom) / 2
	rad := float64(angle) * math.Pi / 180
	sa := float32(math.Sin(rad))
	ca := float32(math.Cos(rad))

	for i := range q {
		dx := q[i].X - cx
		dy := q[i].Y - cy
		q[i].X = dx*ca - dy*sa + cx
		q[i].Y = dx*sa + dy*ca + cy
	}
	return q
}
