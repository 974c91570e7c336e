package participant

import (
	"math"
	"math/rand"

	"iowa-lite/iowa"
)

// RuleDecider learns from the running per-deck totals in the session view:
// untried decks are sampled first, then it mostly exploits the deck with the
// best loss-adjusted mean.
type RuleDecider struct {
	Persona *Persona
	rng     *rand.Rand
}

func NewRuleDecider(persona *Persona, seed int64) *RuleDecider {
	return &RuleDecider{
		Persona: persona,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

func (d *RuleDecider) Name() string { return d.Persona.ID }

func (d *RuleDecider) Choose(view iowa.Snapshot) int {
	p := d.Persona.Profile
	enabled := view.EnabledDecks()

	if d.rng.Float64() < clamp01(p.Exploration) {
		return enabled[d.rng.Intn(len(enabled))]
	}

	best, bestScore := enabled[0], math.Inf(-1)
	for _, idx := range enabled {
		score := d.score(view.Decks[idx], p)
		if score > bestScore {
			best, bestScore = idx, score
		}
	}
	return best
}

func (d *RuleDecider) score(ds iowa.DeckSnapshot, p Profile) float64 {
	if ds.Pulls == 0 {
		// optimistic: try every deck at least once
		return math.MaxFloat64
	}
	n := float64(ds.Pulls)
	mean := float64(ds.Net)/n - clamp01(p.LossAversion)*float64(ds.Losses)/n
	noise := (d.rng.Float64() - 0.5) * clamp01(p.Randomness) * 100
	return mean + noise
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
