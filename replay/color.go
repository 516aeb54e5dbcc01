package replay

import "fmt"

// Shape is the glyph a tile is drawn with.
type Shape uint8

const (
	Square Shape = iota
	Circle
)

func (s Shape) String() string {
	switch s {
	case Square:
		return "square"
	case Circle:
		return "circle"
	default:
		return fmt.Sprintf("Shape(%d)", uint8(s))
	}
}

// shapeFromLetter maps the palette shape letter. Only 'c' selects a circle.
func shapeFromLetter(r rune) Shape {
	if r == 'c' {
		return Circle
	}
	return Square
}

// Color is a straight (non-premultiplied) RGBA color with components in [0,1].
// It implements image/color.Color so it can be handed to a renderer as-is.
type Color struct {
	R, G, B, A float32
}

// RGBA returns alpha-premultiplied 16-bit components.
func (c Color) RGBA() (r, g, b, a uint32) {
	alpha := unit(c.A)
	r = uint32(unit(c.R)*alpha*0xffff + 0.5)
	g = uint32(unit(c.G)*alpha*0xffff + 0.5)
	b = uint32(unit(c.B)*alpha*0xffff + 0.5)
	a = uint32(alpha*0xffff + 0.5)
	return
}

// RGB is an opaque background color.
type RGB struct {
	R, G, B float32
}

// RGBA returns 16-bit components with full alpha.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return Color{R: c.R, G: c.G, B: c.B, A: 1}.RGBA()
}

func unit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
