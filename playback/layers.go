package playback

import (
	"fmt"
	"strings"

	"github.com/Speedy-Consoles/ants-insight/replay"
)

// Layers is the set of visible layers. The zero value shows every layer.
type Layers struct {
	hidden uint16
}

func checkLayer(layer int) {
	if layer < 0 || layer >= replay.MaxLayers {
		panic(fmt.Errorf("%w: layer %d", replay.ErrIndexOutOfRange, layer))
	}
}

// Toggle flips the visibility of one layer.
func (l *Layers) Toggle(layer int) {
	checkLayer(layer)
	l.hidden ^= 1 << layer
}

// Visible reports whether tiles and lines on layer should be drawn.
func (l Layers) Visible(layer int) bool {
	checkLayer(layer)
	return l.hidden&(1<<layer) == 0
}

// Set forces a layer visible or hidden.
func (l *Layers) Set(layer int, visible bool) {
	checkLayer(layer)
	if visible {
		l.hidden &^= 1 << layer
	} else {
		l.hidden |= 1 << layer
	}
}

// Hidden lists the hidden layers in ascending order.
func (l Layers) Hidden() []int {
	var out []int
	for layer := range replay.MaxLayers {
		if !l.Visible(layer) {
			out = append(out, layer)
		}
	}
	return out
}

// String renders one character per layer: its digit when visible, '-' when
// hidden.
func (l Layers) String() string {
	var b strings.Builder
	for layer := range replay.MaxLayers {
		if l.Visible(layer) {
			b.WriteByte(byte('0' + layer))
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}
