package cellui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputDecoder(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []TermEvent
	}{
		{"rune", "q", []TermEvent{KeyInput{Key: Char('q')}}},
		{"uppercase drops shift", "A", []TermEvent{KeyInput{Key: Char('A')}}},
		{"ctrl", "\x03", []TermEvent{KeyInput{Key: Char('c'), Mods: ModCtrl}}},
		{"enter", "\r", []TermEvent{KeyInput{Key: Named(KeyEnter)}}},
		{"arrow", "\x1b[A", []TermEvent{KeyInput{Key: Named(KeyUp)}}},
		{"backtab", "\x1b[Z", []TermEvent{KeyInput{Key: Named(KeyBackTab)}}},
		{"function key", "\x1bOP", []TermEvent{KeyInput{Key: Function(1)}}},
		{"several at once", "ab", []TermEvent{KeyInput{Key: Char('a')}, KeyInput{Key: Char('b')}}},
		{
			"sgr click",
			"\x1b[<0;5;3M\x1b[<0;5;3m",
			[]TermEvent{
				MouseInput{Kind: PointerHeld, Pos: Pos{X: 4, Y: 2}, Origin: Pos{X: 4, Y: 2}, Button: ButtonPrimary},
				MouseInput{Kind: PointerClick, Pos: Pos{X: 4, Y: 2}, Origin: Pos{X: 4, Y: 2}, Button: ButtonPrimary},
			},
		},
		{
			"sgr drag",
			"\x1b[<0;1;1M\x1b[<32;4;1M\x1b[<0;4;1m",
			[]TermEvent{
				MouseInput{Kind: PointerHeld, Pos: Pos{}, Origin: Pos{}, Button: ButtonPrimary},
				MouseInput{Kind: PointerDragStart, Pos: Pos{X: 3}, Origin: Pos{}, Button: ButtonPrimary},
				MouseInput{Kind: PointerDrag, Pos: Pos{X: 3}, Origin: Pos{}, Delta: Pos{X: 3}, Button: ButtonPrimary},
				MouseInput{Kind: PointerDragRelease, Pos: Pos{X: 3}, Origin: Pos{}, Delta: Pos{X: 3}, Button: ButtonPrimary},
			},
		},
		{
			"wheel",
			"\x1b[<64;3;2M",
			[]TermEvent{MouseInput{Kind: PointerScroll, Pos: Pos{X: 2, Y: 1}, Origin: Pos{X: 2, Y: 1}, Delta: Pos{Y: -1}, Button: ButtonPrimary}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d inputDecoder
			assert.Equal(t, tt.want, d.Feed([]byte(tt.in)))
		})
	}
}

func TestInputDecoderKeepsMouseStateAcrossFeeds(t *testing.T) {
	var d inputDecoder
	assert.Len(t, d.Feed([]byte("\x1b[<0;2;2M")), 1)
	got := d.Feed([]byte("\x1b[<0;2;2m"))
	if assert.Len(t, got, 1) {
		assert.Equal(t, PointerClick, got[0].(MouseInput).Kind)
	}
}

func TestTerminalFilter(t *testing.T) {
	term := &Terminal{cfg: DefaultConfig().WithCtrlZSwitches(true)}

	assert.Equal(t, Quit{}, term.filter(KeyInput{Key: Char('c'), Mods: ModCtrl}))
	assert.Equal(t, switchScreen{}, term.filter(KeyInput{Key: Char('z'), Mods: ModCtrl}))
	assert.Equal(t, KeyInput{Key: Char('c')}, term.filter(KeyInput{Key: Char('c')}))

	term.cfg = term.cfg.WithCtrlCQuits(false)
	assert.Equal(t, KeyInput{Key: Char('c'), Mods: ModCtrl}, term.filter(KeyInput{Key: Char('c'), Mods: ModCtrl}))
}
