package deck

import (
	"sort"

	"iowa-lite/card"
)

// WeightedDeck never runs out: every pull draws a win and a loss
// independently, with replacement, from fixed distributions.
type WeightedDeck struct {
	base

	winAmounts  []int64
	lossAmounts []int64
	winCum      []int // nil => uniform
	lossCum     []int
}

// MakeDeck builds an infinite deck. Absent weights mean a uniform choice.
func MakeDeck(cfg Config) (*WeightedDeck, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	d := &WeightedDeck{
		base:        newBase(cfg.Seed),
		winAmounts:  append([]int64(nil), cfg.WinAmounts...),
		lossAmounts: append([]int64(nil), cfg.LossAmounts...),
		winCum:      cumulative(cfg.WinWeights),
		lossCum:     cumulative(cfg.LossWeights),
	}
	d.draw = d.drawWeighted
	return d, nil
}

func (d *WeightedDeck) drawWeighted() (card.Card, error) {
	win := d.choose(d.winAmounts, d.winCum)
	loss := d.choose(d.lossAmounts, d.lossCum)
	return card.Card{Win: win, Loss: loss}, nil
}

func (d *WeightedDeck) choose(amounts []int64, cum []int) int64 {
	if cum == nil {
		return amounts[d.rng.Intn(len(amounts))]
	}
	r := d.rng.Intn(cum[len(cum)-1])
	// first index whose running total exceeds r; zero-weight entries never win
	i := sort.Search(len(cum), func(i int) bool { return cum[i] > r })
	return amounts[i]
}

func cumulative(ws []int) []int {
	if ws == nil {
		return nil
	}
	out := make([]int, len(ws))
	total := 0
	for i, w := range ws {
		total += w
		out[i] = total
	}
	return out
}
