package quickswipe

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 100*time.Millisecond, cfg.CancelDebounce())
	assert.Equal(t, DefaultVelocityHorizon, cfg.VelocityHorizon())
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quickswipe.toml")
	content := `
touch_slop = 10
two_button_slop_multiplier = 4
nav_mode = "two_button"
nav_bar = "left"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("QUICKSWIPE_CANCEL_DEBOUNCE_MS", "250")
	t.Setenv("QUICKSWIPE_TOUCH_SLOP", "12")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 12.0, cfg.TouchSlop, "env overrides file")
	assert.Equal(t, 4.0, cfg.TwoButtonSlopMultiplier)
	assert.Equal(t, DefaultGesturalSlopMultiplier, cfg.GesturalSlopMultiplier)
	assert.Equal(t, 250*time.Millisecond, cfg.CancelDebounce())

	mode, err := cfg.Mode()
	require.NoError(t, err)
	assert.Equal(t, NavModeTwoButton, mode)
	bar, err := cfg.BarPosition()
	require.NoError(t, err)
	assert.Equal(t, NavBarLeft, bar)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("touch_slop = -1\nnav_bar = \"top\"\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "touch_slop")
	assert.Contains(t, err.Error(), "nav_bar")
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("touch_slop = = 3"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero slop", func(c *Config) { c.TouchSlop = 0 }, false},
		{"negative debounce", func(c *Config) { c.CancelDebounceMs = -5 }, false},
		{"zero multiplier", func(c *Config) { c.GesturalSlopMultiplier = 0 }, false},
		{"bad mode", func(c *Config) { c.NavMode = "three_button" }, false},
		{"mode alias", func(c *Config) { c.NavMode = "2button" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestConfigWriteTOMLLoadsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TouchSlop = 16
	cfg.NavBar = "right"

	var buf bytes.Buffer
	require.NoError(t, cfg.WriteTOML(&buf))
	assert.True(t, strings.Contains(buf.String(), "touch_slop = 16"), buf.String())

	path := filepath.Join(t.TempDir(), "out.toml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfigEnvironment(t *testing.T) {
	env := ConfigEnvironment{Config: Config{MotionPauseMinDisplacement: 30}}
	assert.Equal(t, DefaultConfig().TouchSlop, env.TouchSlop())
	assert.Equal(t, 30.0, env.MotionPauseMinDisplacement())
	assert.Equal(t, 0, env.DisplayRotation())

	env.Rotation = func() int { return 1 }
	assert.Equal(t, 1, env.DisplayRotation())
}

func TestConsumerUsesConfiguredMultipliers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TwoButtonSlopMultiplier = 4
	c := NewSwipeConsumer(ConsumerConfig{
		Device:     &fakeDevice{navBar: NavBarBottom},
		Env:        &fakeEnv{slop: 10},
		Animations: newFakeAnimations(false),
		Gesture:    NewGestureState(NavBarBottom, NavModeTwoButton),
		NewHandler: func(*GestureState, time.Duration) InteractionHandler { return &fakeHandler{} },
		Settings:   cfg,
		Logger:     zerolog.Nop(),
	})
	assert.Equal(t, 400.0, c.Thresholds().SquaredTouchSlop)
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, 0)
	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())
	log.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	log = NewLogger(&buf, 2)
	log.Debug().Msg("detail")
	assert.Contains(t, buf.String(), "detail")
	log.Trace().Msg("trace")
	assert.NotContains(t, buf.String(), "trace")
}
