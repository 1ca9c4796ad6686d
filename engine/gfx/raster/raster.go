// Package raster is a software pipeline that draws sprite quads into an
// *image.RGBA frame buffer. It has no GPU requirements, which makes it the
// pipeline of choice for headless rendering and image-based tests.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/hubastard/sprig/engine/colors"
	"github.com/hubastard/sprig/engine/core"
	"github.com/hubastard/sprig/engine/gfx/paint"
)

// Pipeline implements core.Renderer and assets.Uploader on the CPU.
type Pipeline struct {
	dst      *image.RGBA
	textures map[uint32]*image.RGBA
	next     uint32

	bound  uint32
	color  colors.Color
	blend  paint.Blend
	interp draw.Transformer
	warned map[paint.Blend]bool
}

var _ core.Renderer = (*Pipeline)(nil)

// New creates a pipeline drawing into a transparent w x h frame buffer.
func New(w, h int) *Pipeline {
	return &Pipeline{
		dst:      image.NewRGBA(image.Rect(0, 0, w, h)),
		textures: make(map[uint32]*image.RGBA),
		next:     1,
		color:    colors.White,
		blend:    paint.DefaultBlend,
		interp:   draw.BiLinear,
		warned:   make(map[paint.Blend]bool),
	}
}

// SetNearest switches between nearest-neighbor and bilinear sampling.
func (p *Pipeline) SetNearest(nearest bool) {
	if nearest {
		p.interp = draw.NearestNeighbor
	} else {
		p.interp = draw.BiLinear
	}
}

// Frame returns the frame buffer. It is reallocated by Resize.
func (p *Pipeline) Frame() *image.RGBA { return p.dst }

func (p *Pipeline) Resize(w, h int) {
	if p.dst.Bounds().Dx() == w && p.dst.Bounds().Dy() == h {
		return
	}
	p.dst = image.NewRGBA(image.Rect(0, 0, w, h))
}

func (p *Pipeline) Clear(c colors.Color) {
	draw.Draw(p.dst, p.dst.Bounds(), image.NewUniform(c.RGBA8()), image.Point{}, draw.Src)
}

func (p *Pipeline) Shutdown() {
	clear(p.textures)
}

// --- assets.Uploader ---

func (p *Pipeline) UploadTexture(img *image.RGBA) (uint32, error) {
	if img.Bounds().Empty() {
		return 0, fmt.Errorf("raster: empty texture %v", img.Bounds())
	}
	cp := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Copy(cp, image.Point{}, img, img.Bounds(), draw.Src, nil)
	h := p.next
	p.next++
	p.textures[h] = cp
	return h, nil
}

func (p *Pipeline) DeleteTexture(handle uint32) {
	delete(p.textures, handle)
}

// --- paint.Pipeline ---

func (p *Pipeline) BindTexture(handle uint32) { p.bound = handle }
func (p *Pipeline) SetColor(c colors.Color)   { p.color = c }

func (p *Pipeline) SetBlendFunc(b paint.Blend) {
	p.blend = b
	if b != paint.DefaultBlend && b != paint.OpaqueBlend && !p.warned[b] {
		p.warned[b] = true
		core.LogWarn("raster: blend %s not supported, drawing with %s", b, paint.DefaultBlend)
	}
}

// SubmitQuad draws q as the affine image of its texture window. The source
// window is axis-aligned in texture space (only its edges may be swapped), so
// three corners fully determine the transform.
func (p *Pipeline) SubmitQuad(q paint.Quad) {
	tex, ok := p.textures[p.bound]
	if !ok {
		panic(fmt.Sprintf("raster: texture %d is not bound to an uploaded image", p.bound))
	}
	if p.color[3] <= 0 {
		return
	}

	tw, th := float64(tex.Bounds().Dx()), float64(tex.Bounds().Dy())
	s0x, s0y := float64(q[paint.TopLeft].U)*tw, float64(q[paint.TopLeft].V)*th
	s1x := float64(q[paint.TopRight].U) * tw
	s3y := float64(q[paint.BottomLeft].V) * th
	dsx, dsy := s1x-s0x, s3y-s0y
	if dsx == 0 || dsy == 0 {
		return
	}

	d0, d1, d3 := q[paint.TopLeft], q[paint.TopRight], q[paint.BottomLeft]
	// columns: how destination moves per source pixel along x and along y
	ax, ay := float64(d1.X-d0.X)/dsx, float64(d1.Y-d0.Y)/dsx
	bx, by := float64(d3.X-d0.X)/dsy, float64(d3.Y-d0.Y)/dsy
	s2d := f64.Aff3{
		ax, bx, float64(d0.X) - ax*s0x - bx*s0y,
		ay, by, float64(d0.Y) - ay*s0x - by*s0y,
	}

	sr := image.Rect(
		int(math.Floor(min(s0x, s1x))), int(math.Floor(min(s0y, s3y))),
		int(math.Ceil(max(s0x, s1x))), int(math.Ceil(max(s0y, s3y))),
	).Intersect(tex.Bounds())
	if sr.Empty() {
		return
	}

	var src image.Image = tex
	if p.color != colors.White {
		src = modulate(tex, sr, p.color)
	}
	op := draw.Over
	if p.blend == paint.OpaqueBlend {
		op = draw.Src
	}
	p.interp.Transform(p.dst, s2d, src, sr, op, nil)
}

// modulate returns the sr region of tex multiplied by c, keeping sr's coordinates.
func modulate(tex *image.RGBA, sr image.Rectangle, c colors.Color) *image.RGBA {
	out := image.NewRGBA(sr)
	r, g, b, a := c[0]*c[3], c[1]*c[3], c[2]*c[3], c[3]
	for y := sr.Min.Y; y < sr.Max.Y; y++ {
		for x := sr.Min.X; x < sr.Max.X; x++ {
			px := tex.RGBAAt(x, y)
			out.SetRGBA(x, y, color.RGBA{
				R: scale8(px.R, r),
				G: scale8(px.G, g),
				B: scale8(px.B, b),
				A: scale8(px.A, a),
			})
		}
	}
	return out
}

func scale8(v uint8, f float32) uint8 {
	x := float32(v)*max(0, min(f, 1)) + 0.5
	return uint8(x)
}
