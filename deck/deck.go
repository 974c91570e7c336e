package deck

import (
	"math/rand"
	randv2 "math/rand/v2"

	"iowa-lite/card"
)

// Deck is a source of repeated (win, loss) draws.
//
// The set of variants is closed: *WeightedDeck and *FiniteDeck. A Deck is not
// safe for concurrent use; callers serialise Pull on a given instance.
// Distinct decks share no state, including their random sources.
type Deck interface {
	// Pull draws one card. The pull count is incremented even when the draw
	// fails.
	Pull() (card.Card, error)
	// NumPulls is the number of Pull calls made so far.
	NumPulls() int
	// Seed returns the seed of the deck's private generator. The flag is
	// false when no seed was supplied and one was drawn at construction.
	Seed() (int64, bool)

	sealed()
}

// base carries what every variant shares: the pull counter and the
// exclusively owned generator. Variants install their draw at construction.
type base struct {
	numPulls int
	seed     int64
	seeded   bool
	rng      *rand.Rand
	draw     func() (card.Card, error)
}

func newBase(seed *int64) base {
	b := base{}
	if seed != nil {
		b.seed = *seed
		b.seeded = true
	} else {
		// two decks built in the same clock tick must still differ
		b.seed = randv2.Int64()
	}
	b.rng = rand.New(rand.NewSource(b.seed))
	return b
}

func (b *base) Pull() (card.Card, error) {
	b.numPulls++
	if b.draw == nil {
		return card.Card{}, ErrNotImplemented
	}
	return b.draw()
}

func (b *base) NumPulls() int { return b.numPulls }

func (b *base) Seed() (int64, bool) { return b.seed, b.seeded }

func (b *base) sealed() {}

// Make builds a FiniteDeck when finite is set, otherwise a WeightedDeck.
func Make(cfg Config, finite bool) (Deck, error) {
	if finite {
		d, err := MakeFiniteDeck(cfg)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
	d, err := MakeDeck(cfg)
	if err != nil {
		return nil, err
	}
	return d, nil
}
