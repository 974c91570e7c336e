package participant

import (
	"context"
	"errors"
	"fmt"

	"iowa-lite/deck"
	"iowa-lite/iowa"
)

// ErrDeciderStuck is returned by Run when a Decider keeps picking decks the
// session refuses.
var ErrDeciderStuck = errors.New("decider keeps choosing unavailable decks")

// Run lets d play s until the session finishes or ctx is done. It returns
// the outcomes of this call in order.
//
// Deck exhaustion is not fatal: the session has already disabled the deck,
// so the participant simply picks again. More refusals in a row than there
// are decks ends the run with ErrDeciderStuck.
func Run(ctx context.Context, s *iowa.Session, d Decider) ([]iowa.Outcome, error) {
	var outcomes []iowa.Outcome
	refused := 0
	for {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		view := s.Snapshot()
		if view.Phase == iowa.PhaseFinished {
			return outcomes, nil
		}

		idx := d.Choose(view)
		out, err := s.Choose(idx)
		switch {
		case err == nil:
			outcomes = append(outcomes, out)
			refused = 0
		case errors.Is(err, deck.ErrDeckExhausted), errors.Is(err, iowa.ErrDeckDisabled):
			refused++
			if refused > len(view.Decks) {
				return outcomes, fmt.Errorf("%w: %s after trial %d", ErrDeciderStuck, d.Name(), view.Trials)
			}
		default:
			return outcomes, fmt.Errorf("trial %d (%s): %w", view.Trials, d.Name(), err)
		}
	}
}
