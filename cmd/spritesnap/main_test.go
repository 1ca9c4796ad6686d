package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
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

func TestRunWritesPNG(t *testing.T) {
	dir := t.TempDir()
	writeSolidPNG(t, filepath.Join(dir, "blue.png"), 4, 4, color.NRGBA{0, 0, 255, 255})
	scenePath := filepath.Join(dir, "scene.toml")
	src := `
width = 16
height = 8
background = [0.0, 0.0, 0.0, 1.0]
nearest = true

[[sprite]]
key = "blue.png"
x = 2.0
y = 2.0
`
	if err := os.WriteFile(scenePath, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.png")
	if err := run(scenePath, out, false); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Fatalf("canvas size %v", b)
	}
	if r, g, b, _ := img.At(3, 3).RGBA(); r != 0 || g != 0 || b>>8 < 200 {
		t.Fatalf("sprite pixel not blue: %d %d %d", r, g, b)
	}
	if r, g, b, _ := img.At(12, 6).RGBA(); r != 0 || g != 0 || b != 0 {
		t.Fatalf("background pixel not black: %d %d %d", r, g, b)
	}
}

func TestRunDryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	writeSolidPNG(t, filepath.Join(dir, "g.png"), 4, 4, color.NRGBA{0, 255, 0, 255})
	scenePath := filepath.Join(dir, "scene.toml")
	if err := os.WriteFile(scenePath, []byte("[[sprite]]\nkey = \"g.png\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.png")
	if err := run(scenePath, out, true); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("dry run wrote %s", out)
	}
}
