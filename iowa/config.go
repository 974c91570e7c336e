package iowa

import (
	"fmt"

	"iowa-lite/deck"
)

const (
	DefaultStartingBalance int64 = 2000
	DefaultMaxTrials             = 100
)

type Config struct {
	Layout Layout

	// nil => DefaultStartingBalance; 0 is a valid balance
	StartingBalance *int64
	// 0 => DefaultMaxTrials
	MaxTrials       int

	// Weighted draws with replacement instead of dealing finite decks.
	Weighted  bool
	OnExhaust deck.ExhaustPolicy

	// Session seed; deck i is seeded with Seed+i (nil => random).
	Seed *int64
}

// BalanceOf returns a pointer suitable for Config.StartingBalance.
func BalanceOf(v int64) *int64 { return &v }

func (c Config) withDefaults() Config {
	if c.Layout == nil {
		c.Layout = StandardLayout()
	}
	if c.StartingBalance == nil {
		c.StartingBalance = BalanceOf(DefaultStartingBalance)
	}
	if c.MaxTrials == 0 {
		c.MaxTrials = DefaultMaxTrials
	}
	return c
}

func (c Config) validate() error {
	if err := c.Layout.validate(); err != nil {
		return err
	}
	if c.MaxTrials < 0 {
		return fmt.Errorf("MaxTrials must be >= 0")
	}
	if *c.StartingBalance < 0 {
		return fmt.Errorf("StartingBalance must be >= 0")
	}
	return nil
}
