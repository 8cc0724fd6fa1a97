package game

import (
	"errors"
	"flag"
	"fmt"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Defaults describe the standard table: a 200-unit arena with the two
// piles hanging 64 units outside it.
const (
	DefaultArenaRadius  = 200.0
	DefaultPileMargin   = 6.0
	DefaultPileGap      = 64.0
	DefaultDiscsPerPile = 8
	DefaultMinRadius    = 5
	DefaultMaxRadius    = 50
)

// Config holds the table dimensions and pile generation parameters.
type Config struct {
	ArenaRadius  float64 // playable circle, centred on the origin
	PileMargin   float64 // vertical gap between stacked pile discs
	PileGap      float64 // horizontal gap between arena rim and each pile
	DiscsPerPile int
	MinRadius    int // inclusive bounds for random disc sizes
	MaxRadius    int
	Seed         int64 // 0 picks a time-based seed
	VerboseLog   bool  // record per-frame drag entries in the MatchLog
}

// DefaultConfig returns the standard two-pile, eight-disc setup.
func DefaultConfig() Config {
	return Config{
		ArenaRadius:  DefaultArenaRadius,
		PileMargin:   DefaultPileMargin,
		PileGap:      DefaultPileGap,
		DiscsPerPile: DefaultDiscsPerPile,
		MinRadius:    DefaultMinRadius,
		MaxRadius:    DefaultMaxRadius,
	}
}

// Validate reports the first inconsistent field.
func (c Config) Validate() error {
	switch {
	case c.ArenaRadius <= 0:
		return fmt.Errorf("%w: arena radius %.1f must be positive", ErrInvalidConfig, c.ArenaRadius)
	case c.PileMargin < 0:
		return fmt.Errorf("%w: pile margin %.1f must not be negative", ErrInvalidConfig, c.PileMargin)
	case c.PileGap < 0:
		return fmt.Errorf("%w: pile gap %.1f must not be negative", ErrInvalidConfig, c.PileGap)
	case c.DiscsPerPile <= 0:
		return fmt.Errorf("%w: discs per pile %d must be positive", ErrInvalidConfig, c.DiscsPerPile)
	case c.MinRadius <= 0 || c.MaxRadius < c.MinRadius:
		return fmt.Errorf("%w: disc radius range [%d,%d] is empty or not positive", ErrInvalidConfig, c.MinRadius, c.MaxRadius)
	case float64(c.MaxRadius) >= c.ArenaRadius:
		return fmt.Errorf("%w: max disc radius %d does not fit arena radius %.1f", ErrInvalidConfig, c.MaxRadius, c.ArenaRadius)
	}
	return nil
}

// RegisterFlags binds the fields of c to command-line flags on fs, using the
// current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.Float64Var(&c.ArenaRadius, "arena", c.ArenaRadius, "arena radius")
	fs.Float64Var(&c.PileMargin, "margin", c.PileMargin, "gap between stacked pile discs")
	fs.Float64Var(&c.PileGap, "pile-gap", c.PileGap, "gap between the arena rim and each pile")
	fs.IntVar(&c.DiscsPerPile, "discs", c.DiscsPerPile, "discs per player")
	fs.IntVar(&c.MinRadius, "min-radius", c.MinRadius, "smallest disc radius")
	fs.IntVar(&c.MaxRadius, "max-radius", c.MaxRadius, "largest disc radius")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "pile RNG seed (0 = time based)")
	fs.BoolVar(&c.VerboseLog, "verbose", c.VerboseLog, "log every drag frame")
}
