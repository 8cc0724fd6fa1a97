package game

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DefaultIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfig_ValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"zero arena":       func(c *Config) { c.ArenaRadius = 0 },
		"negative margin":  func(c *Config) { c.PileMargin = -1 },
		"negative gap":     func(c *Config) { c.PileGap = -3 },
		"no discs":         func(c *Config) { c.DiscsPerPile = 0 },
		"zero min radius":  func(c *Config) { c.MinRadius = 0 },
		"inverted range":   func(c *Config) { c.MinRadius, c.MaxRadius = 30, 20 },
		"disc fills arena": func(c *Config) { c.MaxRadius = 200 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestConfig_RegisterFlags(t *testing.T) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("discs", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-arena", "250", "-discs", "5", "-seed", "9", "-verbose"}))

	assert.Equal(t, 250.0, cfg.ArenaRadius)
	assert.Equal(t, 5, cfg.DiscsPerPile)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.True(t, cfg.VerboseLog)
	assert.Equal(t, DefaultPileMargin, cfg.PileMargin)
	assert.Equal(t, DefaultMaxRadius, cfg.MaxRadius)
}
