package viewer

import (
	"image/color"

	"github.com/Speedy-Consoles/ants-insight/replay"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Renderer draws a scene onto a target image.
type Renderer interface {
	Render(dst *ebiten.Image, scene *Scene)
}

// VectorRenderer draws scenes with ebiten's vector package: squares fill
// their cell, circles are inscribed in it, and lines run between cell
// centers.
type VectorRenderer struct {
	LineWidth float32
}

func (r *VectorRenderer) Render(dst *ebiten.Image, scene *Scene) {
	dst.Fill(color.Black)
	vector.DrawFilledRect(dst, scene.Board.X, scene.Board.Y, scene.Board.W, scene.Board.H, scene.Background, false)

	lineWidth := r.LineWidth
	if lineWidth <= 0 {
		lineWidth = max(1, scene.Board.W/float32(1000))
	}

	for i := range scene.Layers {
		bucket := &scene.Layers[i]
		for _, q := range bucket.Quads {
			switch q.Shape {
			case replay.Circle:
				radius := min(q.W, q.H) / 2
				vector.DrawFilledCircle(dst, q.X+q.W/2, q.Y+q.H/2, radius, q.Color, true)
			default:
				vector.DrawFilledRect(dst, q.X, q.Y, q.W, q.H, q.Color, false)
			}
		}
		for _, s := range bucket.Segments {
			vector.StrokeLine(dst, s.X1, s.Y1, s.X2, s.Y2, lineWidth, s.Color, true)
		}
	}
}
