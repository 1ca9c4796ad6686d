package glbackend

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/hubastard/sprig/engine/colors"
	"github.com/hubastard/sprig/engine/core"
	"github.com/hubastard/sprig/engine/gfx/paint"
	"github.com/hubastard/sprig/engine/scene"
)

// RendererGL is an immediate-mode OpenGL 2.1 pipeline. Every method must run
// on the thread that owns the GL context.
type RendererGL struct {
	win      core.Window
	textures map[uint32]struct{}
	linear   bool
}

var (
	_ core.Renderer  = (*RendererGL)(nil)
	_ paint.Pipeline = (*RendererGL)(nil)
)

// NewRendererGL expects the window's GL context to be current and gl.Init to have run.
func NewRendererGL(win core.Window, _ core.Config) (*RendererGL, error) {
	r := &RendererGL{win: win, textures: make(map[uint32]struct{}), linear: true}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init() error {
	if v := gl.GetString(gl.VERSION); v == nil {
		return errors.New("gl: no current context")
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.TEXTURE_2D)
	gl.Enable(gl.BLEND)
	core.LogInfo("GL: %s (%s)", r.GPUVersion(), r.GPURenderer())
	return nil
}

// SetFiltering picks linear (default) or nearest sampling for textures uploaded afterwards.
func (r *RendererGL) SetFiltering(linear bool) { r.linear = linear }

func (r *RendererGL) Shutdown() {
	for h := range r.textures {
		r.DeleteTexture(h)
	}
}

// Resize sets the viewport and a pixel projection with the origin at the top left.
func (r *RendererGL) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
	r.SetProjection(scene.NewPixelCamera(w, h).VP())
}

// SetProjection loads a column-major view-projection matrix.
func (r *RendererGL) SetProjection(vp [16]float32) {
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadMatrixf(&vp[0])
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()
}

func (r *RendererGL) Clear(c colors.Color) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (r *RendererGL) GPUVendor() string   { return gl.GoStr(gl.GetString(gl.VENDOR)) }
func (r *RendererGL) GPURenderer() string { return gl.GoStr(gl.GetString(gl.RENDERER)) }
func (r *RendererGL) GPUVersion() string  { return gl.GoStr(gl.GetString(gl.VERSION)) }

// --- paint.Pipeline ---

func (r *RendererGL) BindTexture(handle uint32) {
	gl.BindTexture(gl.TEXTURE_2D, handle)
}

func (r *RendererGL) SetColor(c colors.Color) {
	gl.Color4f(c[0], c[1], c[2], c[3])
}

func (r *RendererGL) SetBlendFunc(b paint.Blend) {
	gl.BlendFunc(blendFactor(b.Src), blendFactor(b.Dst))
}

func (r *RendererGL) SubmitQuad(q paint.Quad) {
	gl.Begin(gl.QUADS)
	for _, v := range q {
		gl.TexCoord2f(v.U, v.V)
		gl.Vertex2f(v.X, v.Y)
	}
	gl.End()
}

// --- assets.Uploader ---

func (r *RendererGL) UploadTexture(img *image.RGBA) (uint32, error) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if img.Stride != w*4 {
		return 0, fmt.Errorf("gl: texture rows must be tightly packed (stride %d, width %d)", img.Stride, w)
	}
	var tex uint32
	gl.GenTextures(1, &tex)
	if tex == 0 {
		return 0, errors.New("gl: glGenTextures returned 0")
	}
	filter := int32(gl.LINEAR)
	if !r.linear {
		filter = gl.NEAREST
	}
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &tex)
		return 0, fmt.Errorf("gl: upload %dx%d texture: error 0x%x", w, h, code)
	}
	r.textures[tex] = struct{}{}
	return tex, nil
}

func (r *RendererGL) DeleteTexture(handle uint32) {
	if _, ok := r.textures[handle]; !ok {
		return
	}
	gl.DeleteTextures(1, &handle)
	delete(r.textures, handle)
}

func blendFactor(f paint.BlendFactor) uint32 {
	switch f {
	case paint.Zero:
		return gl.ZERO
	case paint.One:
		return gl.ONE
	case paint.SrcColor:
		return gl.SRC_COLOR
	case paint.OneMinusSrcColor:
		return gl.ONE_MINUS_SRC_COLOR
	case paint.DstColor:
		return gl.DST_COLOR
	case paint.OneMinusDstColor:
		return gl.ONE_MINUS_DST_COLOR
	case paint.SrcAlpha:
		return gl.SRC_ALPHA
	case paint.OneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case paint.DstAlpha:
		return gl.DST_ALPHA
	case paint.OneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	}
	panic(fmt.Sprintf("gl: unknown blend factor %v", f))
}
