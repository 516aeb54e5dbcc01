package replay

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseString(t *testing.T, src string) *Replay {
	t.Helper()
	r, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.NotNil(t, r)
	return r
}

func collectTiles(t *testing.T, r *Replay, turn int) []Tile {
	t.Helper()
	seq, err := r.Tiles(turn)
	require.NoError(t, err)
	var tiles []Tile
	for tile := range seq {
		tiles = append(tiles, tile)
	}
	return tiles
}

func TestParseSingleTurn(t *testing.T) {
	r := parseString(t, "2 2\nA 1 0 0 1 0\nturn\nAA\nAA\nend\n")

	assert.Equal(t, 1, r.TurnCount())
	assert.Equal(t, Board{Rows: 2, Cols: 2, Layers: 1}, r.Board())

	tiles := collectTiles(t, r, 0)
	require.Len(t, tiles, 4)

	seen := make(map[[2]int]bool)
	for _, tile := range tiles {
		assert.Equal(t, Circle, tile.Shape)
		assert.Equal(t, Color{R: 1, G: 0, B: 0, A: 1}, tile.Color)
		assert.Equal(t, 0, tile.Layer)
		seen[[2]int{tile.Row, tile.Col}] = true
	}
	assert.Equal(t, map[[2]int]bool{{0, 0}: true, {0, 1}: true, {1, 0}: true, {1, 1}: true}, seen)
}

func TestParseFullFormat(t *testing.T) {
	src := `3 4 2
0.1 0.2 0.3
a c 1 0 0 1 1
b s 0 1 0 1 0
w 0 0 1 0.5
turn
b. .. .a ba
.. bb .. ..
.. .. .. a.
line 0 0 2 3 a
score 10 12
turn
.. .. .. ..
.. .. .. ..
.. .. .. b.
end
`
	r := parseString(t, src)

	assert.Equal(t, Board{Rows: 3, Cols: 4, Layers: 2, Background: RGB{R: 0.1, G: 0.2, B: 0.3}}, r.Board())
	assert.Equal(t, 3, r.Palette().Len())
	assert.Equal(t, 2, r.TurnCount())

	w, err := r.Palette().Lookup('w')
	require.NoError(t, err)
	assert.Equal(t, Circle, w.Shape, "absent shape letter defaults to circle")
	assert.Equal(t, 0, w.Layer)

	tiles := collectTiles(t, r, 0)
	assert.Equal(t, []Tile{
		{Row: 0, Col: 0, Layer: 0, Shape: Square, Color: Color{G: 1, A: 1}},
		{Row: 0, Col: 2, Layer: 1, Shape: Circle, Color: Color{R: 1, A: 1}},
		{Row: 0, Col: 3, Layer: 0, Shape: Square, Color: Color{G: 1, A: 1}},
		{Row: 0, Col: 3, Layer: 1, Shape: Circle, Color: Color{R: 1, A: 1}},
		{Row: 1, Col: 1, Layer: 0, Shape: Square, Color: Color{G: 1, A: 1}},
		{Row: 1, Col: 1, Layer: 0, Shape: Square, Color: Color{G: 1, A: 1}},
		{Row: 2, Col: 3, Layer: 1, Shape: Circle, Color: Color{R: 1, A: 1}},
	}, tiles)

	lines, err := r.Lines(0)
	require.NoError(t, err)
	var got []Line
	for l := range lines {
		got = append(got, l)
	}
	assert.Equal(t, []Line{{R1: 0, C1: 0, R2: 2, C2: 3, Layer: 1, Color: Color{R: 1, A: 1}}}, got)

	n, err := r.LineCount(1)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = r.TileCount(1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestParseSparseCells(t *testing.T) {
	src := "2 3\nx 1 1 1 1\nturn\n. x .\nx . .\nturn\n. . .\n. . .\nend\n"
	r := parseString(t, src)

	assert.Len(t, collectTiles(t, r, 0), 2)
	assert.Empty(t, collectTiles(t, r, 1))
}

func TestParsePackedRows(t *testing.T) {
	r := parseString(t, "2 3 2\nx 1 1 1 1\ny 1 1 1 1 4\nturn\nx.y..x\n......\nend\n")

	tiles := collectTiles(t, r, 0)
	require.Len(t, tiles, 3)
	assert.Equal(t, [2]int{0, 0}, [2]int{tiles[0].Row, tiles[0].Col})
	assert.Equal(t, [2]int{0, 1}, [2]int{tiles[1].Row, tiles[1].Col})
	assert.Equal(t, 4, tiles[1].Layer)
	assert.Equal(t, [2]int{0, 2}, [2]int{tiles[2].Row, tiles[2].Col})
}

func TestParseImplicitEnd(t *testing.T) {
	r := parseString(t, "1 1\nx 1 1 1 1\nturn\nx\nturn\n.\n")
	assert.Equal(t, 2, r.TurnCount())
}

func TestParseIgnoresAnnotations(t *testing.T) {
	r := parseString(t, "1 1\nx 1 1 1 1\nturn\nx\nfood 3\n\nplayer 1 wins\nturn\nx\nend\n")
	assert.Equal(t, 2, r.TurnCount())
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"empty", "", ErrMalformedHeader},
		{"header words", "two 2\n", ErrMalformedHeader},
		{"header fields", "2\n", ErrMalformedHeader},
		{"negative rows", "-1 2\n", ErrMalformedHeader},
		{"too many layers", "2 2 11\n", ErrInvalidLayer},
		{"zero layers", "2 2 0\n", ErrMalformedHeader},
		{"palette color", "1 1\nx 1 1 z 1\nturn\nx\nend\n", ErrMalformedPalette},
		{"palette layer", "1 1\nx c 1 1 1 1 10\nturn\nx\nend\n", ErrInvalidLayer},
		{"palette fields", "1 1\nx 1 1\nturn\nx\nend\n", ErrMalformedPalette},
		{"palette symbol", "1 1\nxy 1 1 1 1\nturn\nx\nend\n", ErrMalformedPalette},
		{"palette dot", "1 1\n. 1 1 1 1\nturn\nx\nend\n", ErrMalformedPalette},
		{"duplicate symbol", "1 1\nx 1 1 1 1\nx 0 0 0 1\nturn\nx\nend\n", ErrDuplicateSymbol},
		{"no turn", "1 1\nx 1 1 1 1\n", ErrMalformedPalette},
		{"unknown symbol", "1 2\nx 1 1 1 1\nturn\nx x\nturn\nx q\nend\n", ErrUnknownSymbol},
		{"short row", "1 3\nx 1 1 1 1\nturn\nx x\nend\n", ErrMalformedGrid},
		{"truncated grid", "2 1\nx 1 1 1 1\nturn\nx\n", ErrMalformedGrid},
		{"line outside", "2 2\nx 1 1 1 1\nturn\nx x\nx x\nline 0 0 2 0 x\nend\n", ErrIndexOutOfRange},
		{"line malformed", "2 2\nx 1 1 1 1\nturn\nx x\nx x\nline 0 0 1\nend\n", ErrMalformedGrid},
		{"line symbol", "2 2\nx 1 1 1 1\nturn\nx x\nx x\nline 0 0 1 1 y\nend\n", ErrUnknownSymbol},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := Parse(strings.NewReader(c.src))
			require.Error(t, err)
			assert.Nil(t, r)
			assert.ErrorIs(t, err, c.want)

			var perr *ParseError
			assert.True(t, errors.As(err, &perr))
		})
	}
}

func TestParseErrorLine(t *testing.T) {
	_, err := Parse(strings.NewReader("1 2\nx 1 1 1 1\nturn\nx x\nturn\nx ?\nend\n"))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 6, perr.Line)
	assert.Contains(t, perr.Error(), "line 6")
}

func TestTilesRestartable(t *testing.T) {
	r := parseString(t, "2 2\na 1 0 0 1\nb s 0 1 0 1 2\nturn\nab .\nb ba\nend\n")

	seq, err := r.Tiles(0)
	require.NoError(t, err)

	var first, second []Tile
	for tile := range seq {
		first = append(first, tile)
		if len(first) == 2 {
			break
		}
	}
	first = first[:0]
	for tile := range seq {
		first = append(first, tile)
	}
	for tile := range seq {
		second = append(second, tile)
	}

	assert.Len(t, first, 5)
	assert.Equal(t, first, second)
	assert.Equal(t, first, collectTiles(t, r, 0))
}

func TestTurnIndexOutOfRange(t *testing.T) {
	r := parseString(t, "1 1\nx 1 1 1 1\nturn\nx\nend\n")

	for _, idx := range []int{-1, 1, 100} {
		_, err := r.Tiles(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		_, err = r.Lines(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		_, err = r.TileCount(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.replay")
	require.NoError(t, os.WriteFile(path, []byte("1 1\nx 1 1 1 1\nturn\nx\nend\n"), 0o644))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, r.Source())

	_, err = Load(filepath.Join(dir, "missing.replay"))
	assert.ErrorIs(t, err, ErrIO)
}

func TestSummarize(t *testing.T) {
	r := parseString(t, "1 3\na 1 1 1 1 2\nb s 1 1 1 1\nturn\na b ab\nline 0 0 0 2 a\nturn\n. . b\nend\n")

	s := Summarize(r)
	assert.Equal(t, 2, s.Turns)
	assert.Equal(t, 2, s.PaletteSize)
	assert.Equal(t, 1, s.MinTiles)
	assert.Equal(t, 4, s.MaxTiles)
	assert.InDelta(t, 2.5, s.AvgTiles, 1e-9)
	assert.Equal(t, 5, s.TotalTiles)
	assert.Equal(t, 1, s.TotalLines)
	assert.Equal(t, 2, s.TilesPerLayer[2])
	assert.Equal(t, 3, s.TilesPerLayer[0])
	assert.Equal(t, 3, s.TilesPerShape[Square])
	assert.Equal(t, 2, s.TilesPerShape[Circle])
}
