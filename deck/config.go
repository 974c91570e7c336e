package deck

import "math"

// ExhaustPolicy decides what a FiniteDeck does once every card in the
// current permutation has been pulled.
type ExhaustPolicy byte

const (
	// Reshuffle re-permutes both lists and keeps dealing (default).
	Reshuffle ExhaustPolicy = 0
	// Lock refuses further pulls with an ExhaustionError.
	Lock ExhaustPolicy = 1
)

var ExhaustPolicyDictionary = map[ExhaustPolicy]string{
	Reshuffle: "reshuffle",
	Lock:      "lock",
}

func (p ExhaustPolicy) String() string {
	if s, ok := ExhaustPolicyDictionary[p]; ok {
		return s
	}
	return "unknown"
}

type Config struct {
	// Possible amounts. A constant amount is a one-element slice.
	WinAmounts  []int64
	LossAmounts []int64

	// Relative weights parallel to the amounts. nil => uniform (weighted
	// deck) or "synthesise from the other side" (finite deck).
	WinWeights  []int
	LossWeights []int

	// Finite decks only.
	OnExhaust ExhaustPolicy

	// RNG seed (nil => non-deterministic)
	Seed *int64
}

// SeedOf returns a pointer suitable for Config.Seed.
func SeedOf(v int64) *int64 { return &v }

// Scalar is shorthand for a single constant amount.
func Scalar(v int64) []int64 { return []int64{v} }

func (c Config) validate() error {
	if len(c.WinAmounts) == 0 {
		return errValidation("at least one win amount is required")
	}
	if len(c.LossAmounts) == 0 {
		return errValidation("at least one loss amount is required")
	}
	if c.WinWeights != nil && len(c.WinAmounts) != len(c.WinWeights) {
		return errValidation("the number of win amounts (%d) must match the number of win weights (%d)",
			len(c.WinAmounts), len(c.WinWeights))
	}
	if c.LossWeights != nil && len(c.LossAmounts) != len(c.LossWeights) {
		return errValidation("the number of loss amounts (%d) must match the number of loss weights (%d)",
			len(c.LossAmounts), len(c.LossWeights))
	}
	if err := checkWeights("win", c.WinWeights); err != nil {
		return err
	}
	if err := checkWeights("loss", c.LossWeights); err != nil {
		return err
	}
	if c.OnExhaust != Reshuffle && c.OnExhaust != Lock {
		return errValidation("unknown exhaust policy %d", c.OnExhaust)
	}
	return nil
}

func checkWeights(side string, ws []int) error {
	if ws == nil {
		return nil
	}
	total := 0
	for i, w := range ws {
		if w < 0 {
			return errValidation("%s weight %d is negative (%d)", side, i, w)
		}
		if total > math.MaxInt-w {
			return errValidation("%s weights overflow", side)
		}
		total += w
	}
	if total == 0 {
		return errValidation("%s weights must not all be zero", side)
	}
	return nil
}
