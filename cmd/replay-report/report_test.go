package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Speedy-Consoles/ants-insight/replay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeTurns = `1 2
a 1 1 1 1
b s 0 0 1 1 3
turn
a .
turn
. a
line 0 0 0 1 b
turn
a b
end
`

func writeReplay(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.replay")
	require.NoError(t, os.WriteFile(path, []byte(threeTurns), 0o644))
	return path
}

func TestGenerate(t *testing.T) {
	r, err := replay.Load(writeReplay(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewReport(r).Generate(&buf))
	out := buf.String()

	assert.Contains(t, out, "# Replay Report: ")
	assert.Contains(t, out, "- **Size:** 1 rows x 2 cols")
	assert.Contains(t, out, "- **Turns:** 3")
	assert.Contains(t, out, "## Palette (2 symbols)")
	assert.Contains(t, out, "| a | circle | (1.00, 1.00, 1.00, 1.00) | 0 |")
	assert.Contains(t, out, "| b | square | (0.00, 0.00, 1.00, 1.00) | 3 |")
	assert.Contains(t, out, "- **Tiles:** 4 total, per turn min 1 / avg 1.3 / max 2")
	assert.Contains(t, out, "- **Lines:** 1")
	assert.Contains(t, out, "- **Tiles per layer:** 0=3 3=1")
	assert.Contains(t, out, "- **Tiles per shape:** square=1 circle=3")
	assert.NotContains(t, out, "Headless Playback")
}

func TestReportOncePlaysHeadless(t *testing.T) {
	var buf bytes.Buffer
	err := reportOnce(context.Background(), &buf, options{
		path:  writeReplay(t),
		play:  5 * time.Second,
		speed: 50,
		tps:   1000,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "## Headless Playback")
	assert.Contains(t, out, "- **Speed:** 50.0 (100.0 turns/s)")
	assert.Contains(t, out, "- **Turns:** 0 -> 2 (2 transitions)")
	assert.Contains(t, out, "| playbackSystem |")
	assert.Contains(t, out, "| updateSampler |")
}

func TestReportOnceMissingFile(t *testing.T) {
	var buf bytes.Buffer
	err := reportOnce(context.Background(), &buf, options{path: filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}
