// Package projection maps board grid space onto normalized device
// coordinates with letterboxing, so the board keeps its aspect ratio in any
// viewport.
//
// Grid space has its origin at the bottom-left corner of the board: column c
// spans x in [c, c+1] and row r spans y in [rows-r-1, rows-r], so row 0 ends
// up at the top of the screen.
package projection

// Transform is an axis-aligned affine map from grid space to NDC.
type Transform struct {
	ScaleX  float64
	ScaleY  float64
	OffsetX float64
	OffsetY float64
}

// Compute fits a rows x cols board into a width x height viewport.
//
// When the viewport is wider than the board the board fills the height and
// is centered horizontally; otherwise it fills the width and is centered
// vertically. A board with zero columns has ratio 0 and follows the same
// formulas. Boards without rows, and column-less boards in a viewport
// without height, have no finite fit and yield the zero Transform.
func Compute(rows, cols, width, height int) Transform {
	boardW := float64(max(cols, 0))
	boardH := float64(max(rows, 0))

	screenRatio := 0.0
	if height != 0 {
		screenRatio = float64(width) / float64(height)
	}

	if boardH == 0 || (boardW == 0 && screenRatio <= 0) {
		return Transform{}
	}
	boardRatio := boardW / boardH

	if screenRatio > boardRatio {
		return Transform{
			ScaleX:  2 / (boardH * screenRatio),
			ScaleY:  2 / boardH,
			OffsetX: -boardRatio / screenRatio,
			OffsetY: -1,
		}
	}
	return Transform{
		ScaleX:  2 / boardW,
		ScaleY:  2 / boardW * screenRatio,
		OffsetX: -1,
		OffsetY: -screenRatio / boardRatio,
	}
}

// Apply maps a grid space point to NDC.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return x*t.ScaleX + t.OffsetX, y*t.ScaleY + t.OffsetY
}

// Cell returns the grid space position of the lower-left corner of a cell.
func Cell(rows, row, col int) (float64, float64) {
	return float64(col), float64(rows - row - 1)
}

// CellCenter returns the grid space position of the middle of a cell.
func CellCenter(rows, row, col int) (float64, float64) {
	x, y := Cell(rows, row, col)
	return x + 0.5, y + 0.5
}

// Matrix returns the transform as a column-major 4x4 matrix, the layout
// shader uniforms expect.
func (t Transform) Matrix() [16]float32 {
	return [16]float32{
		float32(t.ScaleX), 0, 0, 0,
		0, float32(t.ScaleY), 0, 0,
		0, 0, 1, 0,
		float32(t.OffsetX), float32(t.OffsetY), 0, 1,
	}
}

// ToPixels converts NDC to window pixels, y growing downwards.
func ToPixels(nx, ny float64, width, height int) (float64, float64) {
	return (nx + 1) / 2 * float64(width), (1 - ny) / 2 * float64(height)
}

// Calculator caches the last computed Transform so frames that keep the same
// board and viewport size reuse it.
type Calculator struct {
	rows, cols    int
	width, height int
	transform     Transform
	valid         bool
}

// Update returns the transform for the given sizes and whether it had to be
// recomputed.
func (c *Calculator) Update(rows, cols, width, height int) (Transform, bool) {
	if c.valid && c.rows == rows && c.cols == cols && c.width == width && c.height == height {
		return c.transform, false
	}
	c.rows, c.cols = rows, cols
	c.width, c.height = width, height
	c.transform = Compute(rows, cols, width, height)
	c.valid = true
	return c.transform, true
}

// Transform returns the cached transform.
func (c *Calculator) Transform() Transform {
	return c.transform
}

// Size returns the viewport size of the cached transform.
func (c *Calculator) Size() (int, int) {
	return c.width, c.height
}
