package viewer

import (
	"github.com/Speedy-Consoles/ants-insight/playback"
	"github.com/Speedy-Consoles/ants-insight/projection"
	"github.com/Speedy-Consoles/ants-insight/replay"
)

// Viewport is the window size together with the board transform for it.
type Viewport struct {
	Width     int
	Height    int
	Transform projection.Transform
}

// Rect is an axis-aligned area in window pixels, y growing downwards.
type Rect struct {
	X, Y, W, H float32
}

// Quad is one tile ready to draw.
type Quad struct {
	Rect
	Shape replay.Shape
	Color replay.Color
}

// Segment is one line annotation ready to draw, from cell center to cell
// center.
type Segment struct {
	X1, Y1, X2, Y2 float32
	Color          replay.Color
}

// Bucket holds everything drawn on one layer.
type Bucket struct {
	Quads    []Quad
	Segments []Segment
}

// Scene is one turn resolved to pixel geometry, grouped by layer. Layer 0 is
// drawn first.
type Scene struct {
	Turn       int
	Board      Rect
	Background replay.RGB
	Layers     [replay.MaxLayers]Bucket
}

// Len returns the number of quads and segments in the scene.
func (s *Scene) Len() (quads, segments int) {
	for i := range s.Layers {
		quads += len(s.Layers[i].Quads)
		segments += len(s.Layers[i].Segments)
	}
	return quads, segments
}

// BuildScene resolves the tiles and lines of one turn that sit on visible
// layers into window pixels.
func BuildScene(r *replay.Replay, turn int, layers playback.Layers, vp Viewport) (*Scene, error) {
	tiles, err := r.Tiles(turn)
	if err != nil {
		return nil, err
	}
	lines, err := r.Lines(turn)
	if err != nil {
		return nil, err
	}

	board := r.Board()
	scene := &Scene{
		Turn:       turn,
		Background: board.Background,
		Board:      cellRect(vp, board.Rows, 0, 0, board.Rows, board.Cols),
	}

	for tile := range tiles {
		if !layers.Visible(tile.Layer) {
			continue
		}
		bucket := &scene.Layers[tile.Layer]
		bucket.Quads = append(bucket.Quads, Quad{
			Rect:  cellRect(vp, board.Rows, tile.Row, tile.Col, 1, 1),
			Shape: tile.Shape,
			Color: tile.Color,
		})
	}

	for line := range lines {
		if !layers.Visible(line.Layer) {
			continue
		}
		x1, y1 := cellCenter(vp, board.Rows, line.R1, line.C1)
		x2, y2 := cellCenter(vp, board.Rows, line.R2, line.C2)
		bucket := &scene.Layers[line.Layer]
		bucket.Segments = append(bucket.Segments, Segment{
			X1: x1, Y1: y1, X2: x2, Y2: y2,
			Color: line.Color,
		})
	}

	return scene, nil
}

// cellRect returns the pixel rectangle covering rows x cols cells whose top
// left cell is (row, col).
func cellRect(vp Viewport, boardRows, row, col, rows, cols int) Rect {
	// top-left corner in grid space is the lower-left corner of the cell
	// above, because grid y grows upwards
	gx, gy := projection.Cell(boardRows, row, col)
	nx0, ny0 := vp.Transform.Apply(gx, gy+1)
	nx1, ny1 := vp.Transform.Apply(gx+float64(cols), gy+1-float64(rows))
	x0, y0 := projection.ToPixels(nx0, ny0, vp.Width, vp.Height)
	x1, y1 := projection.ToPixels(nx1, ny1, vp.Width, vp.Height)
	return Rect{X: float32(x0), Y: float32(y0), W: float32(x1 - x0), H: float32(y1 - y0)}
}

func cellCenter(vp Viewport, boardRows, row, col int) (float32, float32) {
	gx, gy := projection.CellCenter(boardRows, row, col)
	nx, ny := vp.Transform.Apply(gx, gy)
	x, y := projection.ToPixels(nx, ny, vp.Width, vp.Height)
	return float32(x), float32(y)
}
