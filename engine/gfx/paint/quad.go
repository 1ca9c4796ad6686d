package paint

// Vertex is a position in frame-buffer pixels plus a normalized texture coordinate.
type Vertex struct {
	X, Y float32
	U, V float32
}

// Corner indices into a Quad. The order is the winding every backend receives.
const (
	TopLeft = iota
	TopRight
	BottomRight
	BottomLeft
)

// Quad is one textured quad wound top-left, top-right, bottom-right, bottom-left.
type Quad [4]Vertex

// Bounds returns the axis-aligned pixel bounds of the quad's positions.
func (q Quad) Bounds() (minX, minY, maxX, maxY float32) {
	minX, minY = q[0].X, q[0].Y
	maxX, maxY = minX, minY
	for _, v := range q[1:] {
		minX = min(minX, v.X)
		minY = min(minY, v.Y)
		maxX = max(maxX, v.X)
		maxY = max(maxY, v.Y)
	}
	return minX, minY, maxX, maxY
}
