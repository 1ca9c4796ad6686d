// Package ebitenpipe runs sprite draws on top of an ebiten game loop.
//
// Call SetTarget with the screen (or an offscreen image) at the start of
// Draw, then issue sprite draws through a paint.State wrapping the Pipeline.
package ebitenpipe

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hubastard/sprig/engine/colors"
	"github.com/hubastard/sprig/engine/gfx/paint"
)

// TL-TR-BR, TL-BR-BL
var quadIndices = []uint32{0, 1, 2, 0, 2, 3}

// Pipeline implements paint.Pipeline and assets.Uploader with ebiten images.
type Pipeline struct {
	target   *ebiten.Image
	textures map[uint32]*ebiten.Image
	next     uint32

	bound  uint32
	color  colors.Color
	blend  ebiten.Blend
	filter ebiten.Filter
	verts  [4]ebiten.Vertex
}

var _ paint.Pipeline = (*Pipeline)(nil)

func New() *Pipeline {
	return &Pipeline{
		textures: make(map[uint32]*ebiten.Image),
		next:     1,
		color:    colors.White,
		blend:    ebiten.BlendSourceOver,
		filter:   ebiten.FilterLinear,
	}
}

// SetTarget selects the image quads are drawn onto.
func (p *Pipeline) SetTarget(dst *ebiten.Image) { p.target = dst }

func (p *Pipeline) SetFilter(f ebiten.Filter) { p.filter = f }

func (p *Pipeline) UploadTexture(img *image.RGBA) (uint32, error) {
	if img.Bounds().Empty() {
		return 0, fmt.Errorf("ebitenpipe: empty texture %v", img.Bounds())
	}
	h := p.next
	p.next++
	p.textures[h] = ebiten.NewImageFromImage(img)
	return h, nil
}

func (p *Pipeline) DeleteTexture(handle uint32) {
	if img, ok := p.textures[handle]; ok {
		img.Deallocate()
		delete(p.textures, handle)
	}
}

func (p *Pipeline) BindTexture(handle uint32)  { p.bound = handle }
func (p *Pipeline) SetColor(c colors.Color)    { p.color = c }
func (p *Pipeline) SetBlendFunc(b paint.Blend) { p.blend = EbitenBlend(b) }

func (p *Pipeline) SubmitQuad(q paint.Quad) {
	if p.target == nil {
		panic("ebitenpipe: SubmitQuad without a target")
	}
	src, ok := p.textures[p.bound]
	if !ok {
		panic(fmt.Sprintf("ebitenpipe: texture %d is not uploaded", p.bound))
	}
	p.verts = quadVertices(q, src.Bounds(), p.color)
	var op ebiten.DrawTrianglesOptions
	op.Blend = p.blend
	op.Filter = p.filter
	p.target.DrawTriangles32(p.verts[:], quadIndices, src, &op)
}

// quadVertices maps normalized UVs onto the pixel bounds of the source image.
// Vertex colors are straight alpha, ebiten's default color scale mode.
func quadVertices(q paint.Quad, b image.Rectangle, c colors.Color) [4]ebiten.Vertex {
	var verts [4]ebiten.Vertex
	w, h := float32(b.Dx()), float32(b.Dy())
	for i, v := range q {
		verts[i] = ebiten.Vertex{
			DstX:   v.X,
			DstY:   v.Y,
			SrcX:   float32(b.Min.X) + v.U*w,
			SrcY:   float32(b.Min.Y) + v.V*h,
			ColorR: c[0],
			ColorG: c[1],
			ColorB: c[2],
			ColorA: c[3],
		}
	}
	return verts
}

// EbitenBlend converts a GL-style blend pair to ebiten's premultiplied blend.
// ebiten images are premultiplied, so a SrcAlpha source factor becomes One.
func EbitenBlend(b paint.Blend) ebiten.Blend {
	switch b {
	case paint.DefaultBlend:
		return ebiten.BlendSourceOver
	case paint.AdditiveBlend:
		return ebiten.BlendLighter
	case paint.OpaqueBlend:
		return ebiten.BlendCopy
	}
	src := b.Src
	if src == paint.SrcAlpha {
		src = paint.One
	}
	return ebiten.Blend{
		BlendFactorSourceRGB:        factor(src),
		BlendFactorSourceAlpha:      factor(src),
		BlendFactorDestinationRGB:   factor(b.Dst),
		BlendFactorDestinationAlpha: factor(b.Dst),
		BlendOperationRGB:           ebiten.BlendOperationAdd,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	}
}

func factor(f paint.BlendFactor) ebiten.BlendFactor {
	switch f {
	case paint.Zero:
		return ebiten.BlendFactorZero
	case paint.One:
		return ebiten.BlendFactorOne
	case paint.SrcColor:
		return ebiten.BlendFactorSourceColor
	case paint.OneMinusSrcColor:
		return ebiten.BlendFactorOneMinusSourceColor
	case paint.DstColor:
		return ebiten.BlendFactorDestinationColor
	case paint.OneMinusDstColor:
		return ebiten.BlendFactorOneMinusDestinationColor
	case paint.SrcAlpha:
		return ebiten.BlendFactorSourceAlpha
	case paint.OneMinusSrcAlpha:
		return ebiten.BlendFactorOneMinusSourceAlpha
	case paint.DstAlpha:
		return ebiten.BlendFactorDestinationAlpha
	case paint.OneMinusDstAlpha:
		return ebiten.BlendFactorOneMinusDestinationAlpha
	}
	panic(fmt.Sprintf("ebitenpipe: unknown blend factor %v", f))
}
