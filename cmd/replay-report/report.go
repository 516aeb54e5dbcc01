package main

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/Speedy-Consoles/ants-insight/replay"
	"github.com/Speedy-Consoles/ants-insight/tick"
)

// Report is the data rendered by Generate.
type Report struct {
	Source  string
	Summary replay.Summary
	Palette []replay.Entry

	// Playback is set when the replay was played headless.
	Playback *PlaybackRun
}

// PlaybackRun is the outcome of a headless playback.
type PlaybackRun struct {
	Speed       float64
	Duration    time.Duration
	TotalTime   time.Duration
	Frames      int64
	StartTurn   int
	EndTurn     int
	Transitions []Transition
	UpdateTime  Stats
	Systems     []tick.SystemStats
}

// Transition records when autoplay moved to a turn.
type Transition struct {
	Turn int
	At   time.Duration
}

// Stats summarizes duration samples.
type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

// Finalize computes Min, Max and Avg from Samples.
func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// NewReport summarizes r. Playback is left nil.
func NewReport(r *replay.Replay) *Report {
	report := &Report{
		Source:  r.Source(),
		Summary: replay.Summarize(r),
	}
	for e := range r.Palette().Entries() {
		report.Palette = append(report.Palette, e)
	}
	return report
}

// Generate writes the report as markdown.
func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Replay Report{{if .Source}}: {{.Source}}{{end}}

## Board
- **Size:** {{.Summary.Board.Rows}} rows x {{.Summary.Board.Cols}} cols
- **Layers:** {{.Summary.Board.Layers}}
- **Background:** {{rgb .Summary.Board.Background}}
- **Turns:** {{.Summary.Turns}}

## Palette ({{.Summary.PaletteSize}} symbols)
| Symbol | Shape | Color | Layer |
|---|---|---|---|
{{- range .Palette}}
| {{printf "%c" .Symbol}} | {{.Shape}} | {{rgba .Color}} | {{.Layer}} |
{{- end}}

## Records
- **Tiles:** {{.Summary.TotalTiles}} total, per turn min {{.Summary.MinTiles}} / avg {{printf "%.1f" .Summary.AvgTiles}} / max {{.Summary.MaxTiles}}
- **Lines:** {{.Summary.TotalLines}}
- **Tiles per layer:**{{range $layer, $n := .Summary.TilesPerLayer}}{{if $n}} {{$layer}}={{$n}}{{end}}{{end}}
- **Tiles per shape:**{{range $shape, $n := .Summary.TilesPerShape}} {{$shape}}={{$n}}{{end}}
{{with .Playback}}
## Headless Playback
- **Speed:** {{printf "%.1f" .Speed}} ({{turnsPerSecond .Speed}} turns/s)
- **Requested Duration:** {{.Duration}}
- **Total Time:** {{.TotalTime}}
- **Frames:** {{.Frames}}
- **Turns:** {{.StartTurn}} -> {{.EndTurn}} ({{len .Transitions}} transitions)
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

| System | Executions | Avg | Max |
|---|---|---|---|
{{- range .Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{- end}}
{{end}}`

	fm := template.FuncMap{
		"rgb": func(c replay.RGB) string {
			return fmt.Sprintf("(%.2f, %.2f, %.2f)", c.R, c.G, c.B)
		},
		"rgba": func(c replay.Color) string {
			return fmt.Sprintf("(%.2f, %.2f, %.2f, %.2f)", c.R, c.G, c.B, c.A)
		},
		"turnsPerSecond": func(speed float64) string {
			return fmt.Sprintf("%.1f", 2*speed)
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
