package iowa

type DeckSnapshot struct {
	Index    int
	Name     string
	Pulls    int // recorded trials from this deck
	Net      int64
	Losses   int64
	Enabled  bool
	Lifetime int // pulls including undone ones
}

type Snapshot struct {
	SessionID string
	Phase     Phase
	Balance   int64
	Trials    int
	MaxTrials int
	Decks     []DeckSnapshot
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID: s.id,
		Phase:     s.phase(),
		Balance:   s.balance,
		Trials:    s.recorder.NumTrials(),
		MaxTrials: s.cfg.MaxTrials,
		Decks:     make([]DeckSnapshot, len(s.decks)),
	}
	for i, d := range s.decks {
		snap.Decks[i] = DeckSnapshot{
			Index:    i,
			Name:     s.cfg.Layout[i].Name,
			Enabled:  !s.disabled[i],
			Lifetime: d.NumPulls(),
		}
	}
	for _, rec := range s.recorder.Records() {
		i := s.cfg.Layout.Index(rec.Deck)
		if i < 0 {
			continue
		}
		snap.Decks[i].Pulls++
		snap.Decks[i].Net += rec.Net
		snap.Decks[i].Losses += rec.Loss
	}
	return snap
}

// EnabledDecks lists the indices that can still be chosen.
func (snap Snapshot) EnabledDecks() []int {
	out := make([]int, 0, len(snap.Decks))
	for _, d := range snap.Decks {
		if d.Enabled {
			out = append(out, d.Index)
		}
	}
	return out
}
