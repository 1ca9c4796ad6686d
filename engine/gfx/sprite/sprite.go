// Package sprite draws rectangular windows of shared textures.
package sprite

import (
	"errors"
	"fmt"

	"github.com/hubastard/sprig/engine/core"
)

// Sprite is a view onto a rectangle of a shared texture.
//
// Each live Sprite holds exactly one reference on its texture. A plain Go
// assignment (a := *b) does not take a reference: use Clone to copy and Assign
// to overwrite, and call Release when the sprite is no longer drawn.
type Sprite struct {
	texture core.Texture

	// Normalized window into the texture. Left may exceed right (and top may
	// exceed bottom) after HFlip/VFlip; that is how a flipped view is stored.
	uvLeft, uvTop     float32
	uvRight, uvBottom float32

	// Draw size in pixels, independent of the texture's pixel size.
	width, height float32
}

// New creates a sprite showing the whole image behind key.
func New(p core.TextureProvider, key string) (*Sprite, error) {
	tex, err := acquire(p, key)
	if err != nil {
		return nil, err
	}
	return FromTexture(tex), nil
}

// NewSub creates a sprite showing the pixel rectangle (x, y, w, h) of the
// texture behind key. The rectangle is not checked against the texture size.
func NewSub(p core.TextureProvider, key string, x, y, w, h int) (*Sprite, error) {
	tex, err := acquire(p, key)
	if err != nil {
		return nil, err
	}
	return FromTextureRect(tex, x, y, w, h), nil
}

func acquire(p core.TextureProvider, key string) (core.Texture, error) {
	tex, err := p.Acquire(key)
	switch {
	case err != nil && errors.Is(err, core.ErrTextureNotFound):
		return nil, fmt.Errorf("sprite %q: %w", key, err)
	case err != nil:
		return nil, fmt.Errorf("sprite %q: %w: %w", key, core.ErrTextureNotFound, err)
	case tex == nil:
		return nil, fmt.Errorf("sprite %q: %w", key, core.ErrTextureNotFound)
	}
	return tex, nil
}

// FromTexture takes a reference on t and views the whole image.
//
// Only the top-left edge is inset by half a texel; the texture's own
// UVRight/UVBottom already stop short of the padding on the other two edges.
func FromTexture(t core.Texture) *Sprite {
	t.Ref()
	return &Sprite{
		texture:  t,
		uvLeft:   0.5 / float32(t.Width()),
		uvTop:    0.5 / float32(t.Height()),
		uvRight:  t.UVRight(),
		uvBottom: t.UVBottom(),
		width:    float32(t.ImageWidth()),
		height:   float32(t.ImageHeight()),
	}
}

// FromTextureRect takes a reference on t and views the pixel rectangle (x, y, w, h).
//
// Every edge of an atlas cell borders another cell, so all four edges are
// inset half a texel inward.
func FromTextureRect(t core.Texture, x, y, w, h int) *Sprite {
	t.Ref()
	texW := float32(t.Width())
	texH := float32(t.Height())
	return &Sprite{
		texture:  t,
		uvLeft:   (float32(x) + 0.5) / texW,
		uvTop:    (float32(y) + 0.5) / texH,
		uvRight:  (float32(x+w) - 0.5) / texW,
		uvBottom: (float32(y+h) - 0.5) / texH,
		width:    float32(w),
		height:   float32(h),
	}
}

// Clone returns an independent copy holding its own texture reference.
func (s *Sprite) Clone() *Sprite {
	c := *s
	if c.texture != nil {
		c.texture.Ref()
	}
	return &c
}

// Assign makes s a copy of other. The new texture is referenced before the old
// one is released, so assigning a sprite to itself or to another view of the
// same texture never lets the count touch zero.
func (s *Sprite) Assign(other *Sprite) {
	if other.texture != nil {
		other.texture.Ref()
	}
	if s.texture != nil {
		s.texture.Unref()
	}
	*s = *other
}

// Release drops the texture reference. Further calls are no-ops.
func (s *Sprite) Release() {
	if s.texture == nil {
		return
	}
	s.texture.Unref()
	s.texture = nil
}

func (s *Sprite) Released() bool { return s.texture == nil }

// HFlip mirrors the sprite horizontally for every following draw.
func (s *Sprite) HFlip() {
	s.uvLeft, s.uvRight = s.uvRight, s.uvLeft
}

// VFlip mirrors the sprite vertically for every following draw.
func (s *Sprite) VFlip() {
	s.uvTop, s.uvBottom = s.uvBottom, s.uvTop
}

func (s *Sprite) Width() float32        { return s.width }
func (s *Sprite) Height() float32       { return s.height }
func (s *Sprite) Texture() core.Texture { return s.texture }

// UV returns the sprite's normalized window into its texture.
func (s *Sprite) UV() (left, top, right, bottom float32) {
	return s.uvLeft, s.uvTop, s.uvRight, s.uvBottom
}
