// Package stage loads static sprite scenes from TOML and draws them through
// any paint pipeline.
package stage

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/hubastard/sprig/engine/colors"
	"github.com/hubastard/sprig/engine/core"
	"github.com/hubastard/sprig/engine/gfx/paint"
	"github.com/hubastard/sprig/engine/gfx/sprite"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/draw"
)

// ErrBadScene is wrapped by every validation error from ParseScene.
var ErrBadScene = errors.New("invalid scene")

// ImageCreator uploads in-memory images. Solid fills need it.
type ImageCreator interface {
	CreateFromImage(img *image.RGBA) (core.Texture, error)
}

// Scene is a static list of sprite draws rendered onto one canvas.
type Scene struct {
	Width      int          `toml:"width"`
	Height     int          `toml:"height"`
	Background colors.Color `toml:"background"`
	Textures   string       `toml:"textures"`
	Nearest    bool         `toml:"nearest"`
	Sprites    []SpriteDef  `toml:"sprite"`
}

// SpriteDef is one [[sprite]] entry. Angle, Tint or Blend select the
// transformed draw; Part selects a partial draw. Fill with Size replaces the
// texture key with a generated solid rectangle.
type SpriteDef struct {
	Key    string        `toml:"key"`
	Rect   *[4]int       `toml:"rect"` // x, y, w, h inside the image
	Fill   *colors.Color `toml:"fill"`
	Size   *[2]int       `toml:"size"` // w, h of a fill
	X      float32       `toml:"x"`
	Y      float32       `toml:"y"`
	Alpha  *float32      `toml:"alpha"`
	Angle  float32       `toml:"angle"` // degrees
	Tint   *colors.Color `toml:"tint"`
	Blend  string        `toml:"blend"`
	Effect string        `toml:"effect"`
	HFlip  bool          `toml:"hflip"`
	VFlip  bool          `toml:"vflip"`
	Part   *[4]float32   `toml:"part"` // srcX, srcY, w, h in sprite pixels
}

func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %q: %w", path, err)
	}
	return ParseScene(data)
}

func ParseScene(data []byte) (*Scene, error) {
	sc := &Scene{Width: 256, Height: 256, Background: colors.Transparent, Textures: "."}
	if err := toml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if sc.Width <= 0 || sc.Height <= 0 {
		return nil, fmt.Errorf("%w: canvas %dx%d", ErrBadScene, sc.Width, sc.Height)
	}
	for i, d := range sc.Sprites {
		if err := d.validate(); err != nil {
			return nil, fmt.Errorf("%w: sprite %d: %v", ErrBadScene, i, err)
		}
	}
	return sc, nil
}

func (d SpriteDef) validate() error {
	switch {
	case d.Fill == nil && d.Key == "":
		return errors.New("needs a key or a fill")
	case d.Fill != nil && (d.Key != "" || d.Rect != nil):
		return errors.New("fill cannot be combined with key or rect")
	case d.Fill != nil && (d.Size == nil || d.Size[0] <= 0 || d.Size[1] <= 0):
		return errors.New("fill needs a positive size")
	case d.Part != nil && d.transformed():
		return errors.New("part cannot be combined with angle, tint or blend")
	}
	if _, err := sprite.ParseEffect(d.Effect); err != nil {
		return err
	}
	if _, err := paint.ParseBlend(d.Blend); err != nil {
		return err
	}
	return nil
}

func (d SpriteDef) transformed() bool {
	return d.Angle != 0 || d.Tint != nil || d.Blend != ""
}

func (d SpriteDef) alpha() float32 {
	if d.Alpha == nil {
		return 1
	}
	return *d.Alpha
}

func (d SpriteDef) name() string {
	if d.Fill != nil {
		return fmt.Sprintf("fill %v", *d.Fill)
	}
	return d.Key
}

// Draw loads every sprite through p, draws the scene once onto ps and
// releases the sprites again.
func (sc *Scene) Draw(p core.TextureProvider, ps *paint.State) error {
	l, err := sc.Load(p)
	if err != nil {
		return err
	}
	defer l.Release()
	l.Draw(ps)
	return nil
}

// Loaded is a scene whose sprites hold their texture references until
// Release, for callers that draw it every frame.
type Loaded struct {
	defs    []SpriteDef
	sprites []*sprite.Sprite
}

// Load creates one sprite per entry. Persistent flips are applied here. On
// error every sprite created so far is released.
func (sc *Scene) Load(p core.TextureProvider) (*Loaded, error) {
	l := &Loaded{defs: sc.Sprites, sprites: make([]*sprite.Sprite, 0, len(sc.Sprites))}
	for i, d := range sc.Sprites {
		s, err := d.load(p)
		if err != nil {
			l.Release()
			return nil, fmt.Errorf("sprite %d (%s): %w", i, d.name(), err)
		}
		if d.HFlip {
			s.HFlip()
		}
		if d.VFlip {
			s.VFlip()
		}
		l.sprites = append(l.sprites, s)
	}
	return l, nil
}

// Draw renders every sprite in order and restores the paint state.
func (l *Loaded) Draw(ps *paint.State) {
	for i, s := range l.sprites {
		l.defs[i].draw(s, ps)
	}
	ps.Restore()
}

// Release drops every texture reference. Further calls are no-ops.
func (l *Loaded) Release() {
	for _, s := range l.sprites {
		s.Release()
	}
	l.sprites = nil
}

func (d SpriteDef) load(p core.TextureProvider) (*sprite.Sprite, error) {
	switch {
	case d.Fill != nil:
		c, ok := p.(ImageCreator)
		if !ok {
			return nil, fmt.Errorf("texture provider %T cannot create fills", p)
		}
		tex, err := c.CreateFromImage(SolidImage(d.Size[0], d.Size[1], *d.Fill))
		if err != nil {
			return nil, err
		}
		return sprite.FromTexture(tex), nil
	case d.Rect != nil:
		return sprite.NewSub(p, d.Key, d.Rect[0], d.Rect[1], d.Rect[2], d.Rect[3])
	default:
		return sprite.New(p, d.Key)
	}
}

func (d SpriteDef) draw(s *sprite.Sprite, ps *paint.State) {
	effect, _ := sprite.ParseEffect(d.Effect)
	switch {
	case d.Part != nil:
		s.DrawPart(ps, d.Part[0], d.Part[1], d.X, d.Y, d.Part[2], d.Part[3], d.alpha(), effect)
	case d.transformed():
		tint := colors.White
		if d.Tint != nil {
			tint = *d.Tint
		}
		blend, _ := paint.ParseBlend(d.Blend)
		s.DrawTransformed(ps, d.X, d.Y, d.alpha(), d.Angle, tint, blend, effect)
	default:
		s.Draw(ps, d.X, d.Y, d.alpha(), effect)
	}
}

// SolidImage returns a w x h image filled with c.
func SolidImage(w, h int, c colors.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c.RGBA8()), image.Point{}, draw.Src)
	return img
}
