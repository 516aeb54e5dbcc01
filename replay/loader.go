package replay

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	keywordTurn = "turn"
	keywordEnd  = "end"
	keywordLine = "line"

	maxLineBytes = 64 << 20
)

// Load reads and parses the replay file at path.
func Load(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()

	r, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.source = path
	return r, nil
}

// Parse reads a complete replay from r. Any malformed input fails the whole
// load; the returned error is a *ParseError wrapping one of the Err* values.
func Parse(r io.Reader) (*Replay, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	p := &parser{
		scanner: scanner,
		palette: NewPalette(),
	}
	if err := p.parse(); err != nil {
		return nil, err
	}

	return &Replay{
		board:   p.board,
		palette: p.palette,
		turns:   p.turns,
	}, nil
}

type parser struct {
	scanner *bufio.Scanner
	line    int

	pushed     []string
	havePushed bool

	board   Board
	palette *Palette
	turns   []turn
}

// next returns the fields of the next line. ok is false at end of input.
func (p *parser) next() (fields []string, ok bool, err error) {
	if p.havePushed {
		p.havePushed = false
		return p.pushed, true, nil
	}
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return nil, false, p.fail(ErrIO, "%v", err)
		}
		return nil, false, nil
	}
	p.line++
	return strings.Fields(p.scanner.Text()), true, nil
}

// nextNonBlank skips empty lines.
func (p *parser) nextNonBlank() ([]string, bool, error) {
	for {
		fields, ok, err := p.next()
		if err != nil || !ok {
			return nil, ok, err
		}
		if len(fields) > 0 {
			return fields, true, nil
		}
	}
}

func (p *parser) unread(fields []string) {
	p.pushed = fields
	p.havePushed = true
}

func (p *parser) fail(kind error, format string, args ...any) error {
	return &ParseError{
		Line:   p.line,
		Err:    kind,
		Detail: fmt.Sprintf(format, args...),
	}
}

func (p *parser) parse() error {
	if err := p.parseHeader(); err != nil {
		return err
	}
	if err := p.parseBackground(); err != nil {
		return err
	}
	if err := p.parsePalette(); err != nil {
		return err
	}
	return p.parseTurns()
}

func (p *parser) parseHeader() error {
	fields, ok, err := p.nextNonBlank()
	if err != nil {
		return err
	}
	if !ok {
		return p.fail(ErrMalformedHeader, "empty input")
	}
	if len(fields) != 2 && len(fields) != 3 {
		return p.fail(ErrMalformedHeader, "want <rows> <cols> [<layers>], got %d fields", len(fields))
	}

	rows, err := strconv.Atoi(fields[0])
	if err != nil || rows < 0 {
		return p.fail(ErrMalformedHeader, "rows %q", fields[0])
	}
	cols, err := strconv.Atoi(fields[1])
	if err != nil || cols < 0 {
		return p.fail(ErrMalformedHeader, "cols %q", fields[1])
	}
	if int64(rows)*int64(cols) > math.MaxUint32 {
		return p.fail(ErrMalformedHeader, "board %dx%d too large", rows, cols)
	}

	layers := 1
	if len(fields) == 3 {
		layers, err = strconv.Atoi(fields[2])
		if err != nil || layers < 1 {
			return p.fail(ErrMalformedHeader, "layers %q", fields[2])
		}
		if layers > MaxLayers {
			return p.fail(ErrInvalidLayer, "%d layers declared, at most %d supported", layers, MaxLayers)
		}
	}

	p.board = Board{
		Rows:   rows,
		Cols:   cols,
		Layers: layers,
	}
	return nil
}

// parseBackground consumes an optional line of exactly three floats.
func (p *parser) parseBackground() error {
	fields, ok, err := p.nextNonBlank()
	if err != nil || !ok {
		return err
	}
	if len(fields) != 3 {
		p.unread(fields)
		return nil
	}

	var rgb [3]float32
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			p.unread(fields)
			return nil
		}
		rgb[i] = float32(v)
	}
	p.board.Background = RGB{R: rgb[0], G: rgb[1], B: rgb[2]}
	return nil
}

func (p *parser) parsePalette() error {
	for {
		fields, ok, err := p.nextNonBlank()
		if err != nil {
			return err
		}
		if !ok {
			return p.fail(ErrMalformedPalette, "input ended before the first %q marker", keywordTurn)
		}
		if fields[0] == keywordTurn {
			return nil
		}
		if err := p.parseEntry(fields); err != nil {
			return err
		}
	}
}

func (p *parser) parseEntry(fields []string) error {
	symbol, size := utf8.DecodeRuneInString(fields[0])
	if size != len(fields[0]) || symbol == utf8.RuneError {
		return p.fail(ErrMalformedPalette, "symbol %q must be a single character", fields[0])
	}
	if symbol == EmptySymbol {
		return p.fail(ErrMalformedPalette, "symbol %q is reserved for empty cells", symbol)
	}

	shape := Circle
	var colorFields []string
	layerField := ""

	switch len(fields) {
	case 5:
		colorFields = fields[1:5]
	case 6:
		if isNumber(fields[1]) {
			colorFields = fields[1:5]
			layerField = fields[5]
		} else {
			shape = shapeFromLetter([]rune(fields[1])[0])
			colorFields = fields[2:6]
		}
	case 7:
		shape = shapeFromLetter([]rune(fields[1])[0])
		colorFields = fields[2:6]
		layerField = fields[6]
	default:
		return p.fail(ErrMalformedPalette, "want <symbol> [<shape>] <r> <g> <b> <a> [<layer>], got %d fields", len(fields))
	}

	var rgba [4]float32
	for i, f := range colorFields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return p.fail(ErrMalformedPalette, "color component %q of symbol %q", f, symbol)
		}
		rgba[i] = float32(v)
	}

	layer := 0
	if layerField != "" {
		v, err := strconv.Atoi(layerField)
		if err != nil {
			return p.fail(ErrMalformedPalette, "layer %q of symbol %q", layerField, symbol)
		}
		layer = v
	}

	if p.palette.Len() > math.MaxUint16 {
		return p.fail(ErrMalformedPalette, "more than %d palette entries", math.MaxUint16+1)
	}
	color := Color{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	if _, err := p.palette.Insert(symbol, shape, color, layer); err != nil {
		return &ParseError{Line: p.line, Err: err}
	}
	return nil
}

func (p *parser) parseTurns() error {
	for {
		t, err := p.parseGrid()
		if err != nil {
			return err
		}

		more, err := p.parseAnnotations(&t)
		if err != nil {
			return err
		}
		p.turns = append(p.turns, t)
		if !more {
			return nil
		}
	}
}

func (p *parser) parseGrid() (turn, error) {
	var t turn
	if n := len(p.turns); n > 0 {
		t.tiles = make([]tileRecord, 0, len(p.turns[n-1].tiles))
	}

	for row := 0; row < p.board.Rows; row++ {
		fields, ok, err := p.next()
		if err != nil {
			return t, err
		}
		if !ok {
			return t, p.fail(ErrMalformedGrid, "input ended in row %d of turn %d", row, len(p.turns))
		}
		if err := p.parseRow(&t, row, fields); err != nil {
			return t, err
		}
	}
	return t, nil
}

func (p *parser) parseRow(t *turn, row int, fields []string) error {
	cols := p.board.Cols

	if len(fields) == cols {
		for col, cell := range fields {
			if err := p.parseCell(t, row, col, cell); err != nil {
				return err
			}
		}
		return nil
	}

	// Packed row: cells written back to back, one character per layer.
	packed := []rune(strings.Join(fields, ""))
	width := p.board.Layers
	if len(packed) != cols*width {
		return p.fail(ErrMalformedGrid, "row %d has %d cells, want %d", row, len(fields), cols)
	}
	for col := 0; col < cols; col++ {
		if err := p.parseCell(t, row, col, string(packed[col*width:(col+1)*width])); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseCell(t *turn, row, col int, cell string) error {
	position := uint32(row*p.board.Cols + col)
	for _, symbol := range cell {
		if symbol == EmptySymbol {
			continue
		}
		slot, err := p.palette.Slot(symbol)
		if err != nil {
			return &ParseError{
				Line:   p.line,
				Err:    err,
				Detail: fmt.Sprintf("row %d col %d", row, col),
			}
		}
		t.tiles = append(t.tiles, tileRecord{position: position, slot: uint16(slot)})
	}
	return nil
}

// parseAnnotations consumes lines up to the next marker. It reports whether
// another turn follows.
func (p *parser) parseAnnotations(t *turn) (bool, error) {
	for {
		fields, ok, err := p.nextNonBlank()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}

		switch fields[0] {
		case keywordEnd:
			return false, nil
		case keywordTurn:
			return true, nil
		case keywordLine:
			if err := p.parseLine(t, fields); err != nil {
				return false, err
			}
		}
	}
}

func (p *parser) parseLine(t *turn, fields []string) error {
	if len(fields) != 6 {
		return p.fail(ErrMalformedGrid, "want line <r1> <c1> <r2> <c2> <symbol>, got %d fields", len(fields))
	}

	var coords [4]uint32
	for i, f := range fields[1:5] {
		v, err := strconv.Atoi(f)
		if err != nil || v < 0 {
			return p.fail(ErrMalformedGrid, "line coordinate %q", f)
		}
		limit := p.board.Rows
		if i%2 == 1 {
			limit = p.board.Cols
		}
		if v >= limit {
			return p.fail(ErrIndexOutOfRange, "line coordinate %d outside %dx%d board", v, p.board.Rows, p.board.Cols)
		}
		coords[i] = uint32(v)
	}

	symbol, size := utf8.DecodeRuneInString(fields[5])
	if size != len(fields[5]) {
		return p.fail(ErrMalformedGrid, "line symbol %q must be a single character", fields[5])
	}
	slot, err := p.palette.Slot(symbol)
	if err != nil {
		return &ParseError{Line: p.line, Err: err}
	}

	t.lines = append(t.lines, lineRecord{
		r1:   coords[0],
		c1:   coords[1],
		r2:   coords[2],
		c2:   coords[3],
		slot: uint16(slot),
	})
	return nil
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
