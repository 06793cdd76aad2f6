package cellui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeybind(t *testing.T) {
	tests := []struct {
		in   string
		want Keybind
	}{
		{"q", Bind(Char('q'), ModNone)},
		{"ctrl+c", Bind(Char('c'), ModCtrl)},
		{"Ctrl+Alt+x", Bind(Char('x'), ModCtrl|ModAlt)},
		{"meta+f4", Bind(Function(4), ModAlt)},
		{"shift+tab", Bind(Named(KeyBackTab), ModNone)},
		{"space", Bind(Char(' '), ModNone)},
		{"ctrl++", Bind(Char('+'), ModCtrl)},
		{"escape", Bind(Named(KeyEscape), ModNone)},
		{"pgdown", Bind(Named(KeyPageDown), ModNone)},
		{" enter ", Bind(Named(KeyEnter), ModNone)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKeybind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "hyper+x", "ctrl+", "f25", "nosuchkey"} {
		t.Run("invalid "+bad, func(t *testing.T) {
			_, err := ParseKeybind(bad)
			assert.Error(t, err)
		})
	}
}

func TestKeybindString(t *testing.T) {
	assert.Equal(t, "ctrl+alt+shift+x", Bind(Char('x'), ModCtrl|ModAlt|ModShift).String())
	assert.Equal(t, "space", Bind(Char(' '), ModNone).String())
	assert.Equal(t, "f12", Bind(Function(12), ModNone).String())
	assert.Equal(t, "backtab", MustKeybind("shift+tab").String())
}

func TestKeybindMatches(t *testing.T) {
	b := MustKeybind("ctrl+r")
	assert.True(t, b.Matches(Char('r'), ModCtrl))
	assert.False(t, b.Matches(Char('r'), ModNone))
	assert.False(t, b.Matches(Char('r'), ModCtrl|ModShift))
	assert.True(t, KeyPressed{Key: Char('r'), Mods: ModCtrl}.Keybind() == b)

	assert.Panics(t, func() { MustKeybind("ctrl+") })
}
