package replay

import (
	"fmt"
	"iter"

	"github.com/kamstrup/intmap"
)

// MaxLayers is the fixed number of semantic layers every format revision
// supports. Layer values are always in [0, MaxLayers).
const MaxLayers = 10

// EmptySymbol marks "no tile on this layer" inside a grid cell.
const EmptySymbol = '.'

// Entry is one palette slot.
type Entry struct {
	Symbol rune
	Shape  Shape
	Color  Color
	Layer  int
}

// Palette maps replay symbols to how they are drawn. Slots are assigned in
// insertion order and never change once assigned.
type Palette struct {
	entries []Entry
	index   *intmap.Map[rune, int]
}

// NewPalette creates an empty palette.
func NewPalette() *Palette {
	return &Palette{
		index: intmap.New[rune, int](32),
	}
}

// Insert adds a symbol and returns its slot.
func (p *Palette) Insert(symbol rune, shape Shape, color Color, layer int) (int, error) {
	if layer < 0 || layer >= MaxLayers {
		return 0, fmt.Errorf("%w: %d for symbol %q", ErrInvalidLayer, layer, symbol)
	}
	if p.index.Has(symbol) {
		return 0, fmt.Errorf("%w: %q", ErrDuplicateSymbol, symbol)
	}

	slot := len(p.entries)
	p.entries = append(p.entries, Entry{
		Symbol: symbol,
		Shape:  shape,
		Color:  color,
		Layer:  layer,
	})
	p.index.Put(symbol, slot)
	return slot, nil
}

// Slot returns the slot assigned to symbol.
func (p *Palette) Slot(symbol rune) (int, error) {
	slot, ok := p.index.Get(symbol)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSymbol, symbol)
	}
	return slot, nil
}

// Lookup returns the entry for symbol.
func (p *Palette) Lookup(symbol rune) (Entry, error) {
	slot, err := p.Slot(symbol)
	if err != nil {
		return Entry{}, err
	}
	return p.entries[slot], nil
}

// Entry returns the entry stored in slot. Slots come from Insert or Slot, so
// an invalid slot is a programming error.
func (p *Palette) Entry(slot int) Entry {
	return p.entries[slot]
}

// Len returns the number of entries.
func (p *Palette) Len() int {
	return len(p.entries)
}

// Entries iterates the palette in slot order.
func (p *Palette) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range p.entries {
			if !yield(e) {
				return
			}
		}
	}
}
