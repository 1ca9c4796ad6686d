package paint

import (
	"fmt"

	"github.com/hubastard/sprig/engine/colors"
)

type CallKind uint8

const (
	CallBindTexture CallKind = iota
	CallSetColor
	CallSetBlend
	CallSubmitQuad
)

func (k CallKind) String() string {
	switch k {
	case CallBindTexture:
		return "bind"
	case CallSetColor:
		return "color"
	case CallSetBlend:
		return "blend"
	case CallSubmitQuad:
		return "quad"
	}
	return fmt.Sprintf("CallKind(%d)", uint8(k))
}

// Call is one recorded pipeline call; only the field matching Kind is set.
type Call struct {
	Kind    CallKind
	Texture uint32
	Color   colors.Color
	Blend   Blend
	Quad    Quad
}

func (c Call) String() string {
	switch c.Kind {
	case CallBindTexture:
		return fmt.Sprintf("bind %d", c.Texture)
	case CallSetColor:
		return fmt.Sprintf("color %v", c.Color)
	case CallSetBlend:
		return fmt.Sprintf("blend %s", c.Blend)
	default:
		return fmt.Sprintf("quad %v", c.Quad)
	}
}

// Recorder is a Pipeline that keeps every call in order instead of drawing.
type Recorder struct {
	Calls []Call
}

func (r *Recorder) BindTexture(handle uint32) {
	r.Calls = append(r.Calls, Call{Kind: CallBindTexture, Texture: handle})
}

func (r *Recorder) SetColor(c colors.Color) {
	r.Calls = append(r.Calls, Call{Kind: CallSetColor, Color: c})
}

func (r *Recorder) SetBlendFunc(b Blend) {
	r.Calls = append(r.Calls, Call{Kind: CallSetBlend, Blend: b})
}

func (r *Recorder) SubmitQuad(q Quad) {
	r.Calls = append(r.Calls, Call{Kind: CallSubmitQuad, Quad: q})
}

// Quads returns the submitted quads in order.
func (r *Recorder) Quads() []Quad {
	var out []Quad
	for _, c := range r.Calls {
		if c.Kind == CallSubmitQuad {
			out = append(out, c.Quad)
		}
	}
	return out
}

// Last returns the most recent call of the given kind.
func (r *Recorder) Last(kind CallKind) (Call, bool) {
	for i := len(r.Calls) - 1; i >= 0; i-- {
		if r.Calls[i].Kind == kind {
			return r.Calls[i], true
		}
	}
	return Call{}, false
}

func (r *Recorder) Reset() { r.Calls = r.Calls[:0] }
