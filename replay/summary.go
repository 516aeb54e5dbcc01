package replay

// Summary aggregates record counts over a whole replay.
type Summary struct {
	Board       Board
	PaletteSize int
	Turns       int

	MinTiles int
	MaxTiles int
	AvgTiles float64

	TotalTiles    int
	TotalLines    int
	TilesPerLayer [MaxLayers]int
	TilesPerShape map[Shape]int
}

// Summarize walks every turn once.
func Summarize(r *Replay) Summary {
	s := Summary{
		Board:         r.board,
		PaletteSize:   r.palette.Len(),
		Turns:         len(r.turns),
		TilesPerShape: make(map[Shape]int),
	}

	for i, t := range r.turns {
		n := len(t.tiles)
		if i == 0 || n < s.MinTiles {
			s.MinTiles = n
		}
		if n > s.MaxTiles {
			s.MaxTiles = n
		}
		s.TotalTiles += n
		s.TotalLines += len(t.lines)

		for _, rec := range t.tiles {
			e := r.palette.Entry(int(rec.slot))
			s.TilesPerLayer[e.Layer]++
			s.TilesPerShape[e.Shape]++
		}
	}

	if s.Turns > 0 {
		s.AvgTiles = float64(s.TotalTiles) / float64(s.Turns)
	}
	return s
}
