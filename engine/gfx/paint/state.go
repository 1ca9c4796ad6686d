package paint

import "github.com/hubastard/sprig/engine/colors"

// Pipeline is the minimal immediate-mode submission API a backend must offer.
type Pipeline interface {
	BindTexture(handle uint32)
	SetColor(c colors.Color)
	SetBlendFunc(b Blend)
	SubmitQuad(q Quad)
}

// Statistics captures the counts generated during a frame.
type Statistics struct {
	QuadCount    int
	TextureBinds int
	ColorChanges int
	BlendChanges int
}

// TotalVertexCount reports vertices submitted this frame.
func (s Statistics) TotalVertexCount() int { return s.QuadCount * 4 }

// State is the paint state shared by everything drawing on one pipeline:
// the bound texture, draw color and blend function. Every change goes through
// State, which forwards it to the pipeline and remembers it, so callers can
// inspect what a draw left behind.
//
// State is owned by the render thread and is not safe for concurrent use.
type State struct {
	pipe    Pipeline
	texture uint32
	color   colors.Color
	blend   Blend
	stats   Statistics
}

// NewState puts the pipeline in the default state: opaque white, alpha blending.
func NewState(p Pipeline) *State {
	s := &State{pipe: p}
	s.Restore()
	s.stats = Statistics{}
	return s
}

func (s *State) Pipeline() Pipeline { return s.pipe }

func (s *State) Texture() uint32     { return s.texture }
func (s *State) Color() colors.Color { return s.color }
func (s *State) Blend() Blend        { return s.blend }

func (s *State) BindTexture(handle uint32) {
	s.pipe.BindTexture(handle)
	s.texture = handle
	s.stats.TextureBinds++
}

func (s *State) SetColor(c colors.Color) {
	s.pipe.SetColor(c)
	s.color = c
	s.stats.ColorChanges++
}

func (s *State) SetBlend(b Blend) {
	s.pipe.SetBlendFunc(b)
	s.blend = b
	s.stats.BlendChanges++
}

func (s *State) Submit(q Quad) {
	s.pipe.SubmitQuad(q)
	s.stats.QuadCount++
}

// Restore sets opaque white and the default blend function.
func (s *State) Restore() {
	s.SetColor(colors.White)
	s.SetBlend(DefaultBlend)
}

// IsDefault reports whether color and blend are what Restore leaves behind.
func (s *State) IsDefault() bool {
	return s.color == colors.White && s.blend == DefaultBlend
}

// Stats returns the statistics accumulated since the last ResetStats.
func (s *State) Stats() Statistics { return s.stats }

func (s *State) ResetStats() { s.stats = Statistics{} }
