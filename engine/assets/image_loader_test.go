package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}
}

func TestLoadImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "red.png")
	writePNG(t, path, 3, 5, color.NRGBA{255, 0, 0, 255})

	img, err := LoadImage(path)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 5 {
		t.Fatalf("size = %v", img.Bounds())
	}
	if img.Stride != 3*4 {
		t.Errorf("stride = %d, want tightly packed 12", img.Stride)
	}
	if got := img.RGBAAt(2, 4); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestLoadImageErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadImage(filepath.Join(dir, "nope.png")); err == nil {
		t.Error("expected error for missing file")
	}
	junk := filepath.Join(dir, "junk.png")
	if err := os.WriteFile(junk, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage(junk); err == nil {
		t.Error("expected error for undecodable file")
	}
}

func TestPadPow2(t *testing.T) {
	tests := []struct{ w, h, pw, ph int }{
		{64, 64, 64, 64},
		{100, 50, 128, 64},
		{1, 3, 1, 4},
		{129, 2, 256, 2},
	}
	for _, tt := range tests {
		src := image.NewRGBA(image.Rect(0, 0, tt.w, tt.h))
		src.SetRGBA(tt.w-1, tt.h-1, color.RGBA{0, 255, 0, 255})

		padded, iw, ih := PadPow2(src)
		if iw != tt.w || ih != tt.h {
			t.Errorf("%dx%d: image size = %dx%d", tt.w, tt.h, iw, ih)
		}
		if padded.Bounds().Dx() != tt.pw || padded.Bounds().Dy() != tt.ph {
			t.Errorf("%dx%d: padded to %v, want %dx%d", tt.w, tt.h, padded.Bounds(), tt.pw, tt.ph)
		}
		if got := padded.RGBAAt(tt.w-1, tt.h-1); got.G != 255 {
			t.Errorf("%dx%d: image pixel lost in padding: %v", tt.w, tt.h, got)
		}
		if tt.pw > tt.w {
			if got := padded.RGBAAt(tt.pw-1, 0); got.A != 0 {
				t.Errorf("%dx%d: padding not transparent: %v", tt.w, tt.h, got)
			}
		}
	}
}
