package iowa

import (
	"fmt"

	"iowa-lite/deck"
)

// DeckSpec describes one selectable deck on the table.
type DeckSpec struct {
	Name        string  `json:"name"`
	WinAmounts  []int64 `json:"win_amounts"`
	LossAmounts []int64 `json:"loss_amounts"`
	WinWeights  []int   `json:"win_weights,omitempty"`
	LossWeights []int   `json:"loss_weights,omitempty"`
}

// Layout is the ordered set of decks offered to the participant.
type Layout []DeckSpec

// StandardLayout returns the classic four decks. A and B pay more per card
// but lose money over ten cards; C and D pay less and come out ahead.
func StandardLayout() Layout {
	return Layout{
		{Name: "A", WinAmounts: deck.Scalar(100), LossAmounts: []int64{0, 150, 200, 250, 300, 350}, LossWeights: []int{5, 1, 1, 1, 1, 1}},
		{Name: "B", WinAmounts: deck.Scalar(100), LossAmounts: []int64{0, 1250}, LossWeights: []int{9, 1}},
		{Name: "C", WinAmounts: deck.Scalar(50), LossAmounts: []int64{0, 25, 50, 75}, LossWeights: []int{4, 3, 2, 1}},
		{Name: "D", WinAmounts: deck.Scalar(50), LossAmounts: []int64{0, 250}, LossWeights: []int{9, 1}},
	}
}

func (s DeckSpec) deckConfig(policy deck.ExhaustPolicy, seed int64) deck.Config {
	return deck.Config{
		WinAmounts:  s.WinAmounts,
		LossAmounts: s.LossAmounts,
		WinWeights:  s.WinWeights,
		LossWeights: s.LossWeights,
		OnExhaust:   policy,
		Seed:        deck.SeedOf(seed),
	}
}

func (l Layout) validate() error {
	if len(l) == 0 {
		return fmt.Errorf("layout has no decks")
	}
	seen := make(map[string]bool, len(l))
	for i, s := range l {
		if s.Name == "" {
			return fmt.Errorf("deck %d has no name", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate deck name %q", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// Index returns the position of the named deck, or -1.
func (l Layout) Index(name string) int {
	for i, s := range l {
		if s.Name == name {
			return i
		}
	}
	return -1
}
