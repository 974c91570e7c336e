package replay

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"iowa-lite/deck"
	"iowa-lite/iowa"
	"iowa-lite/trial"
)

// GenerateTape rebuilds the session described by spec and replays its
// choices. The same spec always yields the same tape.
func GenerateTape(spec RunSpec) (*Tape, error) {
	ns, err := normalizeSpec(spec)
	if err != nil {
		return nil, err
	}

	session, err := iowa.NewSession(ns.cfg, trial.NewRecorder[trial.IowaRecord]())
	if err != nil {
		return nil, &ReplayError{StepIndex: -1, Reason: "invalid_layout", Message: err.Error()}
	}

	b := newTapeBuilder()
	if err := b.addSessionStart(session, ns); err != nil {
		return nil, err
	}

	enabled := enabledSet(session.Snapshot())
	for step, idx := range ns.choices {
		out, err := session.Choose(idx)
		if err != nil {
			return nil, stepError(step, err)
		}
		if err := b.addPull(out); err != nil {
			return nil, err
		}

		after := enabledSet(session.Snapshot())
		for i, was := range enabled {
			if was && !after[i] {
				if err := b.addDeckLocked(i, ns.layout[i].Name, session.Snapshot().Decks[i].Lifetime); err != nil {
					return nil, err
				}
			}
		}
		enabled = after
	}

	if err := b.addSessionEnd(session); err != nil {
		return nil, err
	}

	return &Tape{
		TapeVersion:  TapeVersion,
		Seed:         session.Seed(),
		FinalBalance: session.Balance(),
		Events:       b.events,
	}, nil
}

// DecodeEvent unpacks the envelope carried by e.
func DecodeEvent(e Event) (*structpb.Struct, error) {
	bin, err := base64.StdEncoding.DecodeString(e.EnvelopeB64)
	if err != nil {
		return nil, fmt.Errorf("decode envelope %d: %w", e.Seq, err)
	}
	out := &structpb.Struct{}
	if err := proto.Unmarshal(bin, out); err != nil {
		return nil, fmt.Errorf("unmarshal envelope %d: %w", e.Seq, err)
	}
	return out, nil
}

func stepError(step int, err error) *ReplayError {
	reason := "pull_failed"
	switch {
	case errors.Is(err, iowa.ErrDeckDisabled):
		reason = "deck_disabled"
	case errors.Is(err, deck.ErrDeckExhausted):
		reason = "deck_exhausted"
	case errors.Is(err, iowa.ErrSessionFinished):
		reason = "session_finished"
	}
	return &ReplayError{StepIndex: int32(step), Reason: reason, Message: err.Error()}
}

func enabledSet(snap iowa.Snapshot) []bool {
	out := make([]bool, len(snap.Decks))
	for i, d := range snap.Decks {
		out[i] = d.Enabled
	}
	return out
}

type tapeBuilder struct {
	seq    uint64
	events []Event
}

func newTapeBuilder() *tapeBuilder {
	return &tapeBuilder{events: make([]Event, 0, 16)}
}

func (b *tapeBuilder) addSessionStart(s *iowa.Session, ns normalizedSpec) error {
	names := make([]any, 0, len(ns.layout))
	for _, d := range ns.layout {
		names = append(names, d.Name)
	}
	return b.push("sessionStart", map[string]any{
		// decimal string: a NumberValue is a float64 and loses seeds above 2^53
		"seed":            strconv.FormatInt(s.Seed(), 10),
		"decks":           names,
		"weighted":        ns.cfg.Weighted,
		"onExhaust":       ns.cfg.OnExhaust.String(),
		"startingBalance": s.Balance(),
		"maxTrials":       len(ns.choices),
	})
}

func (b *tapeBuilder) addPull(out iowa.Outcome) error {
	return b.push("pull", map[string]any{
		"trial":     out.Trial,
		"deck":      out.Deck,
		"deckIndex": out.DeckIndex,
		"win":       out.Card.Win,
		"loss":      out.Card.Loss,
		"net":       out.Card.Net(),
		"balance":   out.Balance,
	})
}

func (b *tapeBuilder) addDeckLocked(idx int, name string, pulls int) error {
	return b.push("deckLocked", map[string]any{
		"deck":      name,
		"deckIndex": idx,
		"pulls":     pulls,
	})
}

func (b *tapeBuilder) addSessionEnd(s *iowa.Session) error {
	snap := s.Snapshot()
	return b.push("sessionEnd", map[string]any{
		"balance": snap.Balance,
		"trials":  snap.Trials,
		"phase":   snap.Phase.String(),
	})
}

func (b *tapeBuilder) push(typ string, fields map[string]any) error {
	b.seq++
	fields["type"] = typ
	fields["seq"] = b.seq
	st, err := structpb.NewStruct(fields)
	if err != nil {
		return &ReplayError{StepIndex: -1, Reason: "encode_failed", Message: err.Error()}
	}
	// map entries must be ordered for tapes to compare byte for byte
	bin, err := proto.MarshalOptions{Deterministic: true}.Marshal(st)
	if err != nil {
		return &ReplayError{StepIndex: -1, Reason: "encode_failed", Message: err.Error()}
	}
	b.events = append(b.events, Event{
		Type:        typ,
		Seq:         b.seq,
		Value:       st,
		EnvelopeB64: base64.StdEncoding.EncodeToString(bin),
	})
	return nil
}
