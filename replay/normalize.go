package replay

import (
	"fmt"
	"strings"

	"iowa-lite/deck"
	"iowa-lite/iowa"
)

type normalizedSpec struct {
	cfg     iowa.Config
	layout  iowa.Layout
	choices []int
}

func normalizeSpec(spec RunSpec) (normalizedSpec, error) {
	var out normalizedSpec

	out.layout = iowa.Layout(spec.Layout)
	if len(out.layout) == 0 {
		out.layout = iowa.StandardLayout()
	}
	if spec.StartingBalance != nil && *spec.StartingBalance < 0 {
		return out, &ReplayError{StepIndex: -1, Reason: "invalid_balance", Message: "starting_balance must be >= 0"}
	}
	if len(spec.Choices) == 0 {
		return out, &ReplayError{StepIndex: -1, Reason: "invalid_choices", Message: "at least one choice is required"}
	}

	out.choices = make([]int, 0, len(spec.Choices))
	for i, raw := range spec.Choices {
		idx := resolveDeck(out.layout, raw)
		if idx < 0 {
			return out, &ReplayError{StepIndex: int32(i), Reason: "unknown_deck", Message: fmt.Sprintf("no deck named %q", raw)}
		}
		out.choices = append(out.choices, idx)
	}

	policy := deck.Reshuffle
	if spec.Lock {
		policy = deck.Lock
	}
	out.cfg = iowa.Config{
		Layout:          out.layout,
		StartingBalance: spec.StartingBalance,
		MaxTrials:       len(out.choices),
		Weighted:        spec.Weighted,
		OnExhaust:       policy,
		Seed:            deck.SeedOf(spec.Seed),
	}
	return out, nil
}

// resolveDeck accepts a deck name in any case.
func resolveDeck(layout iowa.Layout, raw string) int {
	name := strings.TrimSpace(raw)
	if idx := layout.Index(name); idx >= 0 {
		return idx
	}
	for i, s := range layout {
		if strings.EqualFold(s.Name, name) {
			return i
		}
	}
	return -1
}
