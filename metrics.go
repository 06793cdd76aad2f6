package cellui

import (
	"fmt"
	"strings"
)

// StatsWindow is the number of frames MetricsRenderer keeps.
const StatsWindow = 30

// Stats summarises one counter over the sample window.
type Stats struct {
	Min, Max, Avg int
}

// window is a fixed-size ring of per-frame samples.
type window struct {
	samples [StatsWindow]int
	start   int
	n       int
}

func (w *window) push(v int) {
	if w.n < len(w.samples) {
		w.samples[(w.start+w.n)%len(w.samples)] = v
		w.n++
		return
	}
	w.samples[w.start] = v
	w.start = (w.start + 1) % len(w.samples)
}

func (w *window) incr() {
	if w.n == 0 {
		w.push(0)
	}
	w.samples[(w.start+w.n-1)%len(w.samples)]++
}

func (w *window) stats() Stats {
	if w.n == 0 {
		return Stats{}
	}
	s := Stats{Min: int(^uint(0) >> 1)}
	total := 0
	for i := 0; i < w.n; i++ {
		v := w.samples[(w.start+i)%len(w.samples)]
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
		total += v
	}
	s.Avg = total / w.n
	return s
}

// Counter identifies a renderer command counted by FrameStats.
type Counter uint8

const (
	CountWrite Counter = iota
	CountMove
	CountSetFG
	CountSetBG
	CountSetAttr
	CountResetFG
	CountResetBG
	CountResetAttr
	CountClear
	numCounters
)

var counterNames = [numCounters]string{
	"write", "moves", "set_fg", "set_bg", "set_attr",
	"reset_fg", "reset_bg", "reset_attr", "clears",
}

func (c Counter) String() string {
	if c < numCounters {
		return counterNames[c]
	}
	return fmt.Sprintf("Counter(%d)", c)
}

// FrameStats holds per-frame command counts for the last StatsWindow frames.
type FrameStats struct {
	counters [numCounters]window
	frames   int
}

// NewFrame starts a new sample for every counter.
func (f *FrameStats) NewFrame() {
	for i := range f.counters {
		f.counters[i].push(0)
	}
	f.frames++
}

// Frames returns the number of frames recorded since creation.
func (f *FrameStats) Frames() int {
	return f.frames
}

// Get returns the summary for one counter.
func (f *FrameStats) Get(c Counter) Stats {
	return f.counters[c].stats()
}

func (f *FrameStats) count(c Counter) {
	f.counters[c].incr()
}

// Table formats the selected counters as aligned "name | min | max | avg"
// lines. With no counters given, all are included.
func (f *FrameStats) Table(counters ...Counter) string {
	if len(counters) == 0 {
		for c := Counter(0); c < numCounters; c++ {
			counters = append(counters, c)
		}
	}
	var label, lo, hi, avg int
	for _, c := range counters {
		s := f.Get(c)
		label = max(label, len(c.String()))
		lo = max(lo, len(fmt.Sprint(s.Min)))
		hi = max(hi, len(fmt.Sprint(s.Max)))
		avg = max(avg, len(fmt.Sprint(s.Avg)))
	}
	var sb strings.Builder
	for _, c := range counters {
		s := f.Get(c)
		fmt.Fprintf(&sb, "%-*s | %-*d | %-*d | %-*d\n", label, c, lo, s.Min, hi, s.Max, avg, s.Avg)
	}
	return sb.String()
}

// Draw paints the stats table in white on black at the top-left of c.
func (f *FrameStats) Draw(c *Canvas, counters ...Counter) {
	table := strings.TrimRight(f.Table(counters...), "\n")
	if strings.TrimSpace(table) == "" {
		return
	}
	lines := strings.Split(table, "\n")
	width := 0
	for _, l := range lines {
		width = max(width, len(l)+1)
	}
	origin := c.Area().Min
	area := CellRectOf(origin, Size{Width: width, Height: len(lines)})
	c.FillRect(area, Black)
	style := Style{FG: White, BG: Black}
	for i, l := range lines {
		c.Crop(area).Text(Pos{X: origin.X, Y: origin.Y + i}, l, style)
	}
}

// MetricsRenderer counts the commands passing through to an inner renderer.
type MetricsRenderer struct {
	Renderer
	Stats *FrameStats
}

// NewMetricsRenderer wraps r, recording into stats.
func NewMetricsRenderer(stats *FrameStats, r Renderer) *MetricsRenderer {
	return &MetricsRenderer{Renderer: r, Stats: stats}
}

func (m *MetricsRenderer) Begin() error {
	m.Stats.NewFrame()
	return m.Renderer.Begin()
}

func (m *MetricsRenderer) ClearScreen() error {
	m.Stats.count(CountClear)
	return m.Renderer.ClearScreen()
}

func (m *MetricsRenderer) MoveTo(p Pos) error {
	m.Stats.count(CountMove)
	return m.Renderer.MoveTo(p)
}

func (m *MetricsRenderer) SetFG(c Color) error {
	m.Stats.count(CountSetFG)
	return m.Renderer.SetFG(c)
}

func (m *MetricsRenderer) SetBG(c Color) error {
	m.Stats.count(CountSetBG)
	return m.Renderer.SetBG(c)
}

func (m *MetricsRenderer) SetAttr(a Attribute) error {
	m.Stats.count(CountSetAttr)
	return m.Renderer.SetAttr(a)
}

func (m *MetricsRenderer) ResetFG() error {
	m.Stats.count(CountResetFG)
	return m.Renderer.ResetFG()
}

func (m *MetricsRenderer) ResetBG() error {
	m.Stats.count(CountResetBG)
	return m.Renderer.ResetBG()
}

func (m *MetricsRenderer) ResetAttr() error {
	m.Stats.count(CountResetAttr)
	return m.Renderer.ResetAttr()
}

func (m *MetricsRenderer) Write(r rune) error {
	m.Stats.count(CountWrite)
	return m.Renderer.Write(r)
}

// StatsProps selects which counters a stats overlay shows.
type StatsProps struct {
	Stats    *FrameStats
	Counters []Counter
}

type statsWidget struct {
	Base
	props StatsProps
	lines []string
}

func (w *statsWidget) Update(_ *Tree, props StatsProps) NoResponse {
	w.props = props
	w.lines = nil
	if props.Stats != nil {
		if table := strings.TrimRight(props.Stats.Table(props.Counters...), "\n"); table != "" {
			w.lines = strings.Split(table, "\n")
		}
	}
	return NoResponse{}
}

func (w *statsWidget) Layout(_ *LayoutCtx, c Constraints) Vec2 {
	var width int
	for _, l := range w.lines {
		width = max(width, len(l)+1)
	}
	return c.Constrain(V(float32(width), float32(len(w.lines))))
}

func (w *statsWidget) Paint(ctx *PaintCtx) {
	if w.props.Stats != nil {
		w.props.Stats.Draw(ctx.Canvas(), w.props.Counters...)
	}
}

// StatsTable declares a widget showing the per-frame renderer counts.
func StatsTable(t *Tree, stats *FrameStats, counters ...Counter) Response[NoResponse] {
	return Show[statsWidget, StatsProps, NoResponse](t, StatsProps{Stats: stats, Counters: counters})
}
