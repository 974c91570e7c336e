package deck

import (
	"iowa-lite/card"
)

// State 牌堆状态
type State byte

const (
	StateActive               State = 0 // cards remain in the current permutation
	StateExhaustedReshuffling State = 1 // last card dealt, lists were re-permuted
	StateExhaustedLocked      State = 2 // spent; further pulls fail
)

var StateDictionary = map[State]string{
	StateActive:               "active",
	StateExhaustedReshuffling: "exhausted_reshuffling",
	StateExhaustedLocked:      "exhausted_locked",
}

func (s State) String() string { return StateDictionary[s] }

// MaxFiniteDeckSize bounds the number of literal cards a finite deck holds.
const MaxFiniteDeckSize = 1 << 20

// FiniteDeck deals from a fixed multiset without replacement.
//
// Wins and losses are permuted independently, so after a shuffle a given win
// is not tied to any particular loss.
type FiniteDeck struct {
	base

	wins      card.AmountList
	losses    card.AmountList
	onExhaust ExhaustPolicy
}

// MakeFiniteDeck expands (amount, weight) pairs into literal cards.
//
// At least one side must carry weights; the other side is then a single
// amount repeated to the same total card count.
func MakeFiniteDeck(cfg Config) (*FiniteDeck, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.WinWeights == nil && cfg.LossWeights == nil {
		return nil, errValidation("deck size cannot be determined without some weights")
	}

	winWeights, lossWeights := cfg.WinWeights, cfg.LossWeights
	if winWeights == nil {
		if len(cfg.WinAmounts) != 1 {
			return nil, errValidation("win amounts without weights must be a single amount, got %d", len(cfg.WinAmounts))
		}
		winWeights = []int{card.SumWeights(lossWeights)}
	}
	if lossWeights == nil {
		if len(cfg.LossAmounts) != 1 {
			return nil, errValidation("loss amounts without weights must be a single amount, got %d", len(cfg.LossAmounts))
		}
		lossWeights = []int{card.SumWeights(winWeights)}
	}

	if n := card.SumWeights(winWeights); n > MaxFiniteDeckSize {
		return nil, errValidation("finite deck of %d win cards exceeds %d", n, MaxFiniteDeckSize)
	}
	if n := card.SumWeights(lossWeights); n > MaxFiniteDeckSize {
		return nil, errValidation("finite deck of %d loss cards exceeds %d", n, MaxFiniteDeckSize)
	}

	wins := card.Expand(cfg.WinAmounts, winWeights)
	losses := card.Expand(cfg.LossAmounts, lossWeights)
	return NewFiniteDeck(wins, losses, cfg.OnExhaust, cfg.Seed)
}

// NewFiniteDeck builds a deck from materialised card lists. wins[i] and
// losses[i] only describe the i-th card until the first shuffle, which
// happens here.
func NewFiniteDeck(wins, losses []int64, onExhaust ExhaustPolicy, seed *int64) (*FiniteDeck, error) {
	if len(wins) != len(losses) {
		return nil, errValidation("wins (%d) and losses (%d) must be the same length for a finite deck",
			len(wins), len(losses))
	}
	if len(wins) == 0 {
		return nil, errValidation("finite deck has no cards")
	}
	if onExhaust != Reshuffle && onExhaust != Lock {
		return nil, errValidation("unknown exhaust policy %d", onExhaust)
	}

	d := &FiniteDeck{
		base:      newBase(seed),
		onExhaust: onExhaust,
	}
	d.wins.Init(wins)
	d.losses.Init(losses)
	d.draw = d.drawFinite
	d.shuffle()
	return d, nil
}

// Size is the number of cards in one full permutation.
func (d *FiniteDeck) Size() int { return d.wins.Count() }

func (d *FiniteDeck) Policy() ExhaustPolicy { return d.onExhaust }

func (d *FiniteDeck) shuffle() {
	d.wins.Shuffle(d.rng)
	d.losses.Shuffle(d.rng)
}

// drawFinite runs after base.Pull has counted this pull, hence the -1.
func (d *FiniteDeck) drawFinite() (card.Card, error) {
	size := d.Size()
	if d.onExhaust == Lock && d.numPulls > size {
		return card.Card{}, &ExhaustionError{Pull: d.numPulls, Size: size}
	}

	slot := (d.numPulls - 1) % size
	c := card.Card{Win: d.wins[slot], Loss: d.losses[slot]}

	if slot == size-1 && d.onExhaust == Reshuffle {
		d.shuffle()
	}
	return c, nil
}

// State reports where the deck stands after the most recent pull.
func (d *FiniteDeck) State() State {
	size := d.Size()
	switch {
	case d.numPulls < size:
		return StateActive
	case d.onExhaust == Lock:
		return StateExhaustedLocked
	case d.numPulls%size == 0:
		return StateExhaustedReshuffling
	default:
		return StateActive
	}
}

// Remaining is the number of cards left before the next exhaustion.
func (d *FiniteDeck) Remaining() int {
	size := d.Size()
	if d.onExhaust == Lock {
		if d.numPulls >= size {
			return 0
		}
		return size - d.numPulls
	}
	return size - d.numPulls%size
}

// Composition returns the deck's win and loss multisets. Order is not
// meaningful.
func (d *FiniteDeck) Composition() (wins, losses map[int64]int) {
	return card.Multiset(d.wins), card.Multiset(d.losses)
}
