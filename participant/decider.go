package participant

import (
	"math/rand"

	"iowa-lite/iowa"
)

// Decider picks the next deck for a simulated participant.
type Decider interface {
	// Choose is called once per trial with the current session view and
	// returns a deck index. It is only called while some deck is enabled.
	Choose(view iowa.Snapshot) int
	// Name returns a human-readable identifier for logs and exports.
	Name() string
}

// RandomDecider picks uniformly among the enabled decks.
type RandomDecider struct {
	rng *rand.Rand
}

func NewRandomDecider(seed int64) *RandomDecider {
	return &RandomDecider{rng: rand.New(rand.NewSource(seed))}
}

func (d *RandomDecider) Name() string { return "random" }

func (d *RandomDecider) Choose(view iowa.Snapshot) int {
	enabled := view.EnabledDecks()
	return enabled[d.rng.Intn(len(enabled))]
}

// ScriptedDecider replays a fixed sequence of deck indices, cycling when it
// runs out. Disabled entries are skipped.
type ScriptedDecider struct {
	script []int
	pos    int
}

func NewScriptedDecider(script []int) *ScriptedDecider {
	return &ScriptedDecider{script: append([]int(nil), script...)}
}

func (d *ScriptedDecider) Name() string { return "scripted" }

func (d *ScriptedDecider) Choose(view iowa.Snapshot) int {
	for tries := 0; tries < len(d.script); tries++ {
		idx := d.script[d.pos%len(d.script)]
		d.pos++
		if idx >= 0 && idx < len(view.Decks) && view.Decks[idx].Enabled {
			return idx
		}
	}
	// nothing in the script is playable; fall back to the first enabled deck
	return view.EnabledDecks()[0]
}
