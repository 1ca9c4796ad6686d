package assets

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math/bits"
	"os"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// LoadImage decodes a PNG, JPEG, GIF, BMP or WebP file into tightly packed
// RGBA (stride == 4*w) with a top-left origin.
func LoadImage(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", path, err)
	}
	rgba := imageToRGBA(img)
	if rgba.Bounds().Empty() {
		return nil, fmt.Errorf("decode image %q: empty %s image", path, format)
	}
	return rgba, nil
}

func imageToRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Stride == m.Rect.Dx()*4 && m.Rect.Min == (image.Point{}) {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}

// PadPow2 copies img into the top-left of a transparent canvas whose sides are
// the next powers of two. It returns img itself when no padding is needed,
// along with the original image size.
func PadPow2(img *image.RGBA) (padded *image.RGBA, imageW, imageH int) {
	imageW, imageH = img.Bounds().Dx(), img.Bounds().Dy()
	w, h := nextPow2(imageW), nextPow2(imageH)
	if w == imageW && h == imageH {
		return img, imageW, imageH
	}
	padded = image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Copy(padded, image.Point{}, img, img.Bounds(), draw.Src, nil)
	return padded, imageW, imageH
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
