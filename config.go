package cellui

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config controls how Run drives the terminal.
type Config struct {
	HideCursor    bool   `toml:"hide_cursor"`
	MouseCapture  bool   `toml:"mouse_capture"`
	CtrlCQuits    bool   `toml:"ctrl_c_quits"`
	CtrlZSwitches bool   `toml:"ctrl_z_switches"`
	UseAltScreen  bool   `toml:"use_alt_screen"`
	Title         string `toml:"title"`
	Theme         string `toml:"theme"`

	// FPS is the fixed frame rate. Zero draws a frame only when input
	// arrives.
	FPS int `toml:"fps"`
}

// EnvFPS overrides Config.FPS when set.
const EnvFPS = "CELLUI_FPS"

// ErrInvalidConfig is returned for configuration values that cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

// DefaultConfig hides the cursor, captures the mouse, quits on ctrl-c, uses
// the alternate screen and draws reactively.
func DefaultConfig() Config {
	return Config{
		HideCursor:   true,
		MouseCapture: true,
		CtrlCQuits:   true,
		UseAltScreen: true,
	}
}

func (c Config) WithHideCursor(b bool) Config    { c.HideCursor = b; return c }
func (c Config) WithMouseCapture(b bool) Config  { c.MouseCapture = b; return c }
func (c Config) WithCtrlCQuits(b bool) Config    { c.CtrlCQuits = b; return c }
func (c Config) WithCtrlZSwitches(b bool) Config { c.CtrlZSwitches = b; return c }
func (c Config) WithAltScreen(b bool) Config     { c.UseAltScreen = b; return c }
func (c Config) WithTitle(title string) Config   { c.Title = title; return c }
func (c Config) WithFPS(fps int) Config          { c.FPS = fps; return c }
func (c Config) WithTheme(name string) Config    { c.Theme = name; return c }

// FrameInterval returns the fixed timer period, or zero when reactive.
func (c Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.FPS)
}

// Validate reports values Run cannot use.
func (c Config) Validate() error {
	if c.FPS < 0 || c.FPS > 1000 {
		return fmt.Errorf("%w: fps %d out of range [0, 1000]", ErrInvalidConfig, c.FPS)
	}
	_, err := ThemeByName(c.Theme)
	return err
}

// LoadConfig reads a TOML file over DefaultConfig and then applies the
// environment. Unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalidConfig, path, strings.Join(keys, ", "))
		}
	}

	cfg, err := cfg.FromEnv()
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// FromEnv applies CELLUI_FPS.
func (c Config) FromEnv() (Config, error) {
	v, ok := os.LookupEnv(EnvFPS)
	if !ok || v == "" {
		return c, nil
	}
	fps, err := strconv.Atoi(v)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, EnvFPS, v, err)
	}
	c.FPS = fps
	return c, nil
}
