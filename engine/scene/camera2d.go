package scene

import "math"

// OrthoCamera2D maps world pixels to clip space with y pointing down.
// (X, Y) is the world point shown at the top-left corner of the viewport;
// Zoom scales about that corner.
type OrthoCamera2D struct {
	Width, Height float32
	X, Y          float32
	RotationRad   float32
	Zoom          float32 // 1 = one world pixel per screen pixel
	vp            [16]float32
	dirty         bool
}

// NewPixelCamera returns a camera that shows world pixel (0, 0) at the top-left
// and one world pixel per frame-buffer pixel.
func NewPixelCamera(width, height int) *OrthoCamera2D {
	c := &OrthoCamera2D{Width: float32(width), Height: float32(height), Zoom: 1}
	c.Recalculate()
	return c
}

func (c *OrthoCamera2D) SetViewportPixels(w, h int) {
	c.Width, c.Height = float32(w), float32(h)
	c.dirty = true
}

func (c *OrthoCamera2D) Move(dx, dy float32)      { c.X += dx; c.Y += dy; c.dirty = true }
func (c *OrthoCamera2D) SetPosition(x, y float32) { c.X, c.Y = x, y; c.dirty = true }
func (c *OrthoCamera2D) Rotate(dRad float32)      { c.RotationRad += dRad; c.dirty = true }
func (c *OrthoCamera2D) SetZoom(z float32) {
	if z < 0.05 {
		z = 0.05
	}
	c.Zoom = z
	c.dirty = true
}

func (c *OrthoCamera2D) VP() [16]float32 {
	if c.dirty {
		c.Recalculate()
	}
	return c.vp
}

// Project maps a world point to frame-buffer pixels.
func (c *OrthoCamera2D) Project(x, y float32) (float32, float32) {
	vp := c.VP()
	cx := vp[0]*x + vp[4]*y + vp[12]
	cy := vp[1]*x + vp[5]*y + vp[13]
	return (cx + 1) * 0.5 * c.Width, (1 - cy) * 0.5 * c.Height
}

func (c *OrthoCamera2D) Recalculate() {
	// top = 0, bottom = height flips y so it grows downwards
	proj := ortho(0, c.Width, c.Height, 0, -1, 1)

	// Column-vector math: view = S(zoom) · R(-rot) · T(-pos)
	view := mul(
		scale(c.Zoom, c.Zoom),
		mul(rotateZ(-c.RotationRad), translate(-c.X, -c.Y, 0)),
	)

	c.vp = mul(proj, view)
	c.dirty = false
}

// ---- tiny mat helpers (column-major, GLSL-style) ----

func translate(x, y, z float32) [16]float32 {
	return [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

func scale(sx, sy float32) [16]float32 {
	return [16]float32{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func rotateZ(a float32) [16]float32 {
	c := float32(math.Cos(float64(a)))
	s := float32(math.Sin(float64(a)))
	return [16]float32{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func ortho(l, r, b, t, n, f float32) [16]float32 {
	rl := 1 / (r - l)
	tb := 1 / (t - b)
	fn := 1 / (f - n)
	return [16]float32{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(r + l) * rl, -(t + b) * tb, -(f + n) * fn, 1,
	}
}

func mul(a, b [16]float32) [16]float32 {
	var out [16]float32
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i+4*j] = a[i+0]*b[0+4*j] + a[i+4]*b[1+4*j] + a[i+8]*b[2+4*j] + a[i+12]*b[3+4*j]
		}
	}
	return out
}
