// Package replay holds the immutable model of a recorded game: board
// metadata, the symbol palette and the per-turn tile and line records.
//
// Tiles and lines are stored as compact records and resolved against the
// palette every time they are iterated. Nothing in a Replay changes after
// Parse returns, so it can be read from anywhere without locking.
package replay

import (
	"fmt"
	"iter"
)

// Board describes the grid every turn is drawn on.
type Board struct {
	Rows       int
	Cols       int
	Layers     int
	Background RGB
}

// Tile is a resolved palette symbol sitting on one grid cell.
type Tile struct {
	Row   int
	Col   int
	Layer int
	Shape Shape
	Color Color
}

// Line is a resolved connector between two grid cells.
type Line struct {
	R1, C1 int
	R2, C2 int
	Layer  int
	Color  Color
}

type tileRecord struct {
	position uint32
	slot     uint16
}

type lineRecord struct {
	r1, c1 uint32
	r2, c2 uint32
	slot   uint16
}

type turn struct {
	tiles []tileRecord
	lines []lineRecord
}

// Replay is the loaded turn store.
type Replay struct {
	board   Board
	palette *Palette
	turns   []turn
	source  string
}

// Board returns the board metadata.
func (r *Replay) Board() Board {
	return r.board
}

// Palette returns the palette shared by every turn.
func (r *Replay) Palette() *Palette {
	return r.palette
}

// Source is the file the replay was loaded from, empty for Parse.
func (r *Replay) Source() string {
	return r.source
}

// TurnCount is always at least one for a loaded replay.
func (r *Replay) TurnCount() int {
	return len(r.turns)
}

func (r *Replay) turn(index int) (*turn, error) {
	if index < 0 || index >= len(r.turns) {
		return nil, fmt.Errorf("%w: turn %d of %d", ErrIndexOutOfRange, index, len(r.turns))
	}
	return &r.turns[index], nil
}

// Tiles returns the tiles of one turn in file order. The sequence holds no
// cursor of its own: ranging over it again starts from the beginning.
func (r *Replay) Tiles(index int) (iter.Seq[Tile], error) {
	t, err := r.turn(index)
	if err != nil {
		return nil, err
	}
	records := t.tiles
	cols := uint32(r.board.Cols)
	palette := r.palette

	return func(yield func(Tile) bool) {
		for _, rec := range records {
			e := palette.Entry(int(rec.slot))
			tile := Tile{
				Row:   int(rec.position / cols),
				Col:   int(rec.position % cols),
				Layer: e.Layer,
				Shape: e.Shape,
				Color: e.Color,
			}
			if !yield(tile) {
				return
			}
		}
	}, nil
}

// Lines returns the connectors of one turn in file order.
func (r *Replay) Lines(index int) (iter.Seq[Line], error) {
	t, err := r.turn(index)
	if err != nil {
		return nil, err
	}
	records := t.lines
	palette := r.palette

	return func(yield func(Line) bool) {
		for _, rec := range records {
			e := palette.Entry(int(rec.slot))
			line := Line{
				R1:    int(rec.r1),
				C1:    int(rec.c1),
				R2:    int(rec.r2),
				C2:    int(rec.c2),
				Layer: e.Layer,
				Color: e.Color,
			}
			if !yield(line) {
				return
			}
		}
	}, nil
}

// TileCount returns the number of tile records in a turn.
func (r *Replay) TileCount(index int) (int, error) {
	t, err := r.turn(index)
	if err != nil {
		return 0, err
	}
	return len(t.tiles), nil
}

// LineCount returns the number of line records in a turn.
func (r *Replay) LineCount(index int) (int, error) {
	t, err := r.turn(index)
	if err != nil {
		return 0, err
	}
	return len(t.lines), nil
}
