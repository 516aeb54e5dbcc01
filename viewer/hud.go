package viewer

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// HUD draws the status line in the top-left corner.
type HUD struct {
	face  text.Face
	color color.Color
}

// NewHUD loads the Go regular font at the given size.
func NewHUD(size float64, clr color.Color) (*HUD, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("viewer: load hud font: %w", err)
	}
	return &HUD{
		face:  &text.GoTextFace{Source: src, Size: size},
		color: clr,
	}, nil
}

// Draw writes status at the top-left corner of dst.
func (h *HUD) Draw(dst *ebiten.Image, status string) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 6)
	op.ColorScale.ScaleWithColor(h.color)
	text.Draw(dst, status, h.face, op)
}
