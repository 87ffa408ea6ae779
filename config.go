package quickswipe

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes environment overrides, e.g. QUICKSWIPE_TOUCH_SLOP.
const EnvPrefix = "QUICKSWIPE_"

// Config holds the tunables of the gesture pipeline. The slop multipliers and
// the cancel debounce are empirically tuned.
type Config struct {
	TouchSlop                  float64 `koanf:"touch_slop" toml:"touch_slop"`
	GesturalSlopMultiplier     float64 `koanf:"gestural_slop_multiplier" toml:"gestural_slop_multiplier"`
	TwoButtonSlopMultiplier    float64 `koanf:"two_button_slop_multiplier" toml:"two_button_slop_multiplier"`
	CancelDebounceMs           int     `koanf:"cancel_debounce_ms" toml:"cancel_debounce_ms"`
	MotionPauseMinDisplacement float64 `koanf:"motion_pause_min_displacement" toml:"motion_pause_min_displacement"`
	PauseSpeed                 float64 `koanf:"pause_speed" toml:"pause_speed"`
	VelocityHorizonMs          int     `koanf:"velocity_horizon_ms" toml:"velocity_horizon_ms"`
	NavMode                    string  `koanf:"nav_mode" toml:"nav_mode"`
	NavBar                     string  `koanf:"nav_bar" toml:"nav_bar"`
}

// DefaultConfig returns the stock tunables.
func DefaultConfig() Config {
	return Config{
		TouchSlop:                  24,
		GesturalSlopMultiplier:     DefaultGesturalSlopMultiplier,
		TwoButtonSlopMultiplier:    DefaultTwoButtonSlopMultiplier,
		CancelDebounceMs:           int(DefaultCancelDebounce / time.Millisecond),
		MotionPauseMinDisplacement: 48,
		PauseSpeed:                 DefaultPauseSpeed,
		VelocityHorizonMs:          int(DefaultVelocityHorizon / time.Millisecond),
		NavMode:                    NavModeGestural.String(),
		NavBar:                     NavBarBottom.String(),
	}
}

func (c Config) defaultsMap() map[string]any {
	return map[string]any{
		"touch_slop":                    c.TouchSlop,
		"gestural_slop_multiplier":      c.GesturalSlopMultiplier,
		"two_button_slop_multiplier":    c.TwoButtonSlopMultiplier,
		"cancel_debounce_ms":            c.CancelDebounceMs,
		"motion_pause_min_displacement": c.MotionPauseMinDisplacement,
		"pause_speed":                   c.PauseSpeed,
		"velocity_horizon_ms":           c.VelocityHorizonMs,
		"nav_mode":                      c.NavMode,
		"nav_bar":                       c.NavBar,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.TouchSlop <= 0 {
		c.TouchSlop = d.TouchSlop
	}
	if c.GesturalSlopMultiplier <= 0 {
		c.GesturalSlopMultiplier = d.GesturalSlopMultiplier
	}
	if c.TwoButtonSlopMultiplier <= 0 {
		c.TwoButtonSlopMultiplier = d.TwoButtonSlopMultiplier
	}
	if c.CancelDebounceMs <= 0 {
		c.CancelDebounceMs = d.CancelDebounceMs
	}
	if c.PauseSpeed <= 0 {
		c.PauseSpeed = d.PauseSpeed
	}
	if c.VelocityHorizonMs <= 0 {
		c.VelocityHorizonMs = d.VelocityHorizonMs
	}
	return c
}

// CancelDebounce returns the delayed-cancel interval.
func (c Config) CancelDebounce() time.Duration {
	return time.Duration(c.CancelDebounceMs) * time.Millisecond
}

// VelocityHorizon returns the velocity sample window.
func (c Config) VelocityHorizon() time.Duration {
	return time.Duration(c.VelocityHorizonMs) * time.Millisecond
}

// Mode parses NavMode.
func (c Config) Mode() (NavMode, error) {
	switch strings.ToLower(c.NavMode) {
	case "", "gestural":
		return NavModeGestural, nil
	case "two_button", "2button":
		return NavModeTwoButton, nil
	}
	return 0, fmt.Errorf("unknown nav_mode %q", c.NavMode)
}

// BarPosition parses NavBar.
func (c Config) BarPosition() (NavBarPosition, error) {
	switch strings.ToLower(c.NavBar) {
	case "", "bottom":
		return NavBarBottom, nil
	case "left":
		return NavBarLeft, nil
	case "right":
		return NavBarRight, nil
	}
	return 0, fmt.Errorf("unknown nav_bar %q", c.NavBar)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if c.TouchSlop <= 0 {
		errs = append(errs, fmt.Errorf("touch_slop must be positive, got %v", c.TouchSlop))
	}
	if c.GesturalSlopMultiplier <= 0 {
		errs = append(errs, fmt.Errorf("gestural_slop_multiplier must be positive, got %v", c.GesturalSlopMultiplier))
	}
	if c.TwoButtonSlopMultiplier <= 0 {
		errs = append(errs, fmt.Errorf("two_button_slop_multiplier must be positive, got %v", c.TwoButtonSlopMultiplier))
	}
	if c.CancelDebounceMs < 0 {
		errs = append(errs, fmt.Errorf("cancel_debounce_ms must not be negative, got %d", c.CancelDebounceMs))
	}
	if _, err := c.Mode(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.BarPosition(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// LoadConfig layers defaults, the TOML file at path (skipped when path is
// empty or missing) and QUICKSWIPE_* environment variables.
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(DefaultConfig().defaultsMap(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return Config{}, fmt.Errorf("failed to load config from %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to stat config %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// WriteTOML encodes c as TOML.
func (c Config) WriteTOML(w io.Writer) error {
	enc := gotoml.NewEncoder(w)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// --- Environment from config ---

// ConfigEnvironment serves Environment from a Config and a rotation source.
type ConfigEnvironment struct {
	Config   Config
	Rotation func() int // nil: always 0
}

// TouchSlop returns the configured base touch slop.
func (e ConfigEnvironment) TouchSlop() float64 { return e.Config.withDefaults().TouchSlop }

// MotionPauseMinDisplacement returns the configured minimum upward distance
// before a pause may be detected.
func (e ConfigEnvironment) MotionPauseMinDisplacement() float64 {
	return e.Config.MotionPauseMinDisplacement
}

// DisplayRotation returns the current display rotation.
func (e ConfigEnvironment) DisplayRotation() int {
	if e.Rotation == nil {
		return 0
	}
	return e.Rotation()
}
