package cellui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsWindow(t *testing.T) {
	var w window
	assert.Equal(t, Stats{}, w.stats())

	w.incr()
	w.incr()
	assert.Equal(t, Stats{Min: 2, Max: 2, Avg: 2}, w.stats())

	for i := 0; i < StatsWindow; i++ {
		w.push(i)
	}
	// the early sample has rolled out
	assert.Equal(t, Stats{Min: 0, Max: StatsWindow - 1, Avg: (StatsWindow - 1) / 2}, w.stats())
}

func TestMetricsRenderer(t *testing.T) {
	stats := &FrameStats{}
	m := NewMetricsRenderer(stats, NullRenderer{})

	s := NewScreen(Size{Width: 4, Height: 2})
	s.Canvas().Text(Pos{}, "ab", DefaultStyle().Foreground(Red))
	s.Canvas().Text(Pos{X: 1, Y: 1}, "c", DefaultStyle().Foreground(Red))
	require.NoError(t, s.EndFrame(m))

	assert.Equal(t, 1, stats.Frames())
	assert.Equal(t, 3, stats.Get(CountWrite).Max)
	assert.Equal(t, 1, stats.Get(CountSetFG).Max)
	// first cell, second row, and parking the cursor
	assert.Equal(t, 3, stats.Get(CountMove).Max)
	assert.Zero(t, stats.Get(CountClear).Max)

	require.NoError(t, s.EndFrame(m))
	assert.Equal(t, 1, stats.Frames(), "an empty frame never begins")
}

func TestFrameStatsTable(t *testing.T) {
	stats := &FrameStats{}
	stats.NewFrame()
	stats.count(CountWrite)
	stats.count(CountWrite)
	stats.NewFrame()
	stats.count(CountMove)

	table := stats.Table(CountWrite, CountMove)
	assert.Equal(t, "write | 0 | 2 | 1\nmoves | 0 | 1 | 0\n", table)
	assert.Len(t, strings.Split(strings.TrimSpace(stats.Table()), "\n"), int(numCounters))
}

func TestStatsTableWidget(t *testing.T) {
	stats := &FrameStats{}
	stats.NewFrame()
	stats.count(CountWrite)

	app := NewApp(Size{Width: 30, Height: 4})
	var id WidgetID
	require.NoError(t, app.Step(nil, NullRenderer{}, func(term *Term) {
		Column(term.Tree(), func(t *Tree) {
			id = StatsTable(t, stats, CountWrite).ID
		})
	}))

	assert.Equal(t, V(18, 1), app.Layout().Get(id).Rect.Size())
	assert.Equal(t, "write | 1 | 1 | 1", app.Screen().Buffer().GetLine(0))
}
