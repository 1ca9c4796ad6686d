package paint

import "fmt"

// BlendFactor is one side of a blend function, mirroring the fixed-function GL factors.
type BlendFactor uint8

const (
	Zero BlendFactor = iota
	One
	SrcColor
	OneMinusSrcColor
	DstColor
	OneMinusDstColor
	SrcAlpha
	OneMinusSrcAlpha
	DstAlpha
	OneMinusDstAlpha
)

var factorNames = [...]string{
	Zero:             "zero",
	One:              "one",
	SrcColor:         "src_color",
	OneMinusSrcColor: "one_minus_src_color",
	DstColor:         "dst_color",
	OneMinusDstColor: "one_minus_dst_color",
	SrcAlpha:         "src_alpha",
	OneMinusSrcAlpha: "one_minus_src_alpha",
	DstAlpha:         "dst_alpha",
	OneMinusDstAlpha: "one_minus_dst_alpha",
}

func (f BlendFactor) String() string {
	if int(f) < len(factorNames) {
		return factorNames[f]
	}
	return fmt.Sprintf("BlendFactor(%d)", uint8(f))
}

// ParseBlendFactor is the inverse of String.
func ParseBlendFactor(s string) (BlendFactor, error) {
	for i, n := range factorNames {
		if n == s {
			return BlendFactor(i), nil
		}
	}
	return 0, fmt.Errorf("unknown blend factor %q", s)
}

// Blend is a source/destination factor pair.
type Blend struct {
	Src, Dst BlendFactor
}

var (
	DefaultBlend  = Blend{SrcAlpha, OneMinusSrcAlpha}
	AdditiveBlend = Blend{SrcAlpha, One}
	OpaqueBlend   = Blend{One, Zero}
)

func (b Blend) String() string { return b.Src.String() + "/" + b.Dst.String() }

// ParseBlend accepts a preset name (alpha, add, opaque) or "src/dst" factor names.
func ParseBlend(s string) (Blend, error) {
	switch s {
	case "", "alpha", "default":
		return DefaultBlend, nil
	case "add", "additive":
		return AdditiveBlend, nil
	case "opaque":
		return OpaqueBlend, nil
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '/' {
			continue
		}
		src, err := ParseBlendFactor(s[:i])
		if err != nil {
			return Blend{}, err
		}
		dst, err := ParseBlendFactor(s[i+1:])
		if err != nil {
			return Blend{}, err
		}
		return Blend{src, dst}, nil
	}
	return Blend{}, fmt.Errorf("unknown blend %q", s)
}
