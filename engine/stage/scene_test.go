package stage

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/hubastard/sprig/engine/assets"
	"github.com/hubastard/sprig/engine/colors"
	"github.com/hubastard/sprig/engine/core"
	"github.com/hubastard/sprig/engine/gfx/paint"
	"github.com/hubastard/sprig/engine/gfx/raster"
)

func writeSolidPNG(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestParseSceneDefaults(t *testing.T) {
	sc, err := ParseScene([]byte(`
[[sprite]]
key = "a.png"
x = 4.0
y = 8.0
`))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Width != 256 || sc.Height != 256 {
		t.Fatalf("default canvas: %dx%d", sc.Width, sc.Height)
	}
	if len(sc.Sprites) != 1 {
		t.Fatalf("want 1 sprite, got %d", len(sc.Sprites))
	}
	d := sc.Sprites[0]
	if d.alpha() != 1 || d.transformed() || d.Part != nil {
		t.Fatalf("unexpected defaults: %+v", d)
	}
}

func TestParseSceneRejects(t *testing.T) {
	cases := map[string]string{
		"no key":         "[[sprite]]\nx = 1.0\n",
		"bad effect":     "[[sprite]]\nkey = \"a.png\"\neffect = \"spin\"\n",
		"bad blend":      "[[sprite]]\nkey = \"a.png\"\nblend = \"screen\"\n",
		"part+angle":     "[[sprite]]\nkey = \"a.png\"\nangle = 10.0\npart = [0.0, 0.0, 4.0, 4.0]\n",
		"canvas":         "width = -1\n",
		"fill+key":       "[[sprite]]\nkey = \"a.png\"\nfill = [1.0, 1.0, 1.0, 1.0]\nsize = [4, 4]\n",
		"fill no size":   "[[sprite]]\nfill = [1.0, 1.0, 1.0, 1.0]\n",
		"fill zero size": "[[sprite]]\nfill = [1.0, 1.0, 1.0, 1.0]\nsize = [0, 4]\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseScene([]byte(src))
			if !errors.Is(err, ErrBadScene) {
				t.Fatalf("want ErrBadScene, got %v", err)
			}
		})
	}
}

func TestSceneDrawRecordsAndReleases(t *testing.T) {
	dir := t.TempDir()
	writeSolidPNG(t, filepath.Join(dir, "red.png"), 8, 8, color.NRGBA{255, 0, 0, 255})

	sc, err := ParseScene([]byte(`
width = 32
height = 32

[[sprite]]
fill = [0.0, 0.0, 1.0, 1.0]
size = [32, 4]
y = 28.0

[[sprite]]
key = "red.png"
x = 1.0
y = 2.0

[[sprite]]
key = "red.png"
x = 10.0
y = 10.0
angle = 30.0
blend = "add"

[[sprite]]
key = "red.png"
rect = [0, 0, 4, 4]
x = 20.0
y = 20.0
part = [0.0, 0.0, 2.0, 4.0]
`))
	if err != nil {
		t.Fatal(err)
	}

	pipe := raster.New(sc.Width, sc.Height)
	m := assets.NewTextureManager(dir, pipe)
	defer m.Close()

	rec := &paint.Recorder{}
	ps := paint.NewState(rec)
	rec.Reset()
	if err := sc.Draw(m, ps); err != nil {
		t.Fatal(err)
	}
	if got := len(rec.Quads()); got != 4 {
		t.Fatalf("want 4 quads, got %d", got)
	}
	if !ps.IsDefault() {
		t.Fatal("scene draw should leave the default paint state")
	}
	if res := m.Resident(); len(res) != 0 {
		t.Fatalf("every sprite is released after drawing, resident: %+v", res)
	}
}

func TestSceneFillRasterizes(t *testing.T) {
	sc, err := ParseScene([]byte(`
width = 16
height = 16

[[sprite]]
fill = [0.0, 1.0, 0.0, 1.0]
size = [8, 4]
x = 4.0
y = 6.0
`))
	if err != nil {
		t.Fatal(err)
	}
	pipe := raster.New(sc.Width, sc.Height)
	pipe.SetNearest(true)
	pipe.Clear(colors.Black)
	m := assets.NewTextureManager(t.TempDir(), pipe)
	defer m.Close()

	if err := sc.Draw(m, paint.NewState(pipe)); err != nil {
		t.Fatal(err)
	}
	if got := pipe.Frame().RGBAAt(8, 8); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("inside the fill = %v, want green", got)
	}
	if got := pipe.Frame().RGBAAt(8, 2); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("above the fill = %v, want black", got)
	}
}

// keyOnly serves no textures and cannot create images.
type keyOnly struct{}

func (keyOnly) Acquire(key string) (core.Texture, error) { return nil, core.ErrTextureNotFound }

func TestSceneFillNeedsImageCreator(t *testing.T) {
	sc, err := ParseScene([]byte("[[sprite]]\nfill = [1.0, 1.0, 1.0, 1.0]\nsize = [2, 2]\n"))
	if err != nil {
		t.Fatal(err)
	}
	if err := sc.Draw(keyOnly{}, paint.NewState(&paint.Recorder{})); err == nil {
		t.Fatal("expected error from a provider without CreateFromImage")
	}
}

func TestSceneDrawMissingTexture(t *testing.T) {
	sc, err := ParseScene([]byte("[[sprite]]\nkey = \"nope.png\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	m := assets.NewTextureManager(t.TempDir(), raster.New(4, 4))
	defer m.Close()
	err = sc.Draw(m, paint.NewState(&paint.Recorder{}))
	if !errors.Is(err, core.ErrTextureNotFound) {
		t.Fatalf("want ErrTextureNotFound, got %v", err)
	}
}

func TestSolidImage(t *testing.T) {
	img := SolidImage(3, 2, colors.Red)
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("bounds %v", b)
	}
	if got := img.RGBAAt(2, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("pixel %v", got)
	}
}

func TestLoadedHoldsReferencesUntilRelease(t *testing.T) {
	dir := t.TempDir()
	writeSolidPNG(t, filepath.Join(dir, "a.png"), 4, 4, color.NRGBA{255, 255, 255, 255})
	sc, err := ParseScene([]byte(`
[[sprite]]
key = "a.png"

[[sprite]]
key = "a.png"
hflip = true
`))
	if err != nil {
		t.Fatal(err)
	}
	m := assets.NewTextureManager(dir, raster.New(8, 8))
	defer m.Close()

	l, err := sc.Load(m)
	if err != nil {
		t.Fatal(err)
	}
	res := m.Resident()
	if len(res) != 1 || res[0].Refs != 2 {
		t.Fatalf("want a.png with 2 refs, got %+v", res)
	}

	rec := &paint.Recorder{}
	ps := paint.NewState(rec)
	for range 3 {
		l.Draw(ps)
	}
	if got := len(rec.Quads()); got != 6 {
		t.Fatalf("want 6 quads over 3 frames, got %d", got)
	}
	first, second := rec.Quads()[0], rec.Quads()[1]
	if first[paint.TopLeft].U != second[paint.TopRight].U {
		t.Error("hflip from the scene should persist on the loaded sprite")
	}

	l.Release()
	l.Release()
	if res := m.Resident(); len(res) != 0 {
		t.Fatalf("resident after release: %+v", res)
	}
}

func TestLoadFailureReleasesEarlierSprites(t *testing.T) {
	dir := t.TempDir()
	writeSolidPNG(t, filepath.Join(dir, "a.png"), 4, 4, color.NRGBA{255, 255, 255, 255})
	sc, err := ParseScene([]byte("[[sprite]]\nkey = \"a.png\"\n\n[[sprite]]\nkey = \"missing.png\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	m := assets.NewTextureManager(dir, raster.New(8, 8))
	defer m.Close()

	if _, err := sc.Load(m); err == nil {
		t.Fatal("expected error")
	}
	if res := m.Resident(); len(res) != 0 {
		t.Fatalf("failed load kept references: %+v", res)
	}
}
