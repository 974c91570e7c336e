package iowa

import (
	"errors"
	"fmt"
	randv2 "math/rand/v2"
	"time"

	"github.com/google/uuid"

	"iowa-lite/card"
	"iowa-lite/deck"
	"iowa-lite/trial"
)

// Phase 会话阶段
type Phase byte

const (
	PhaseRunning  Phase = 0
	PhaseFinished Phase = 1
)

var PhaseDictionary = map[Phase]string{
	PhaseRunning:  "running",
	PhaseFinished: "finished",
}

func (p Phase) String() string { return PhaseDictionary[p] }

// Outcome is what the participant sees after picking a deck.
type Outcome struct {
	Trial     int
	DeckIndex int
	Deck      string
	Card      card.Card
	Balance   int64
	Finished  bool
}

// Session runs one Iowa Gambling Task: the participant repeatedly picks a
// deck, the deck pays out a (win, loss) card and the balance moves by the net.
//
// A Session is driven by one caller at a time, like the decks it owns.
type Session struct {
	id       string
	cfg      Config
	seed     int64
	decks    []deck.Deck
	disabled []bool
	balance  int64
	recorder *trial.Recorder[trial.IowaRecord]

	started time.Time
	now     func() time.Time
}

// NewSession builds the decks for cfg.Layout and an empty run. When rec is
// nil a fresh recorder is used.
func NewSession(cfg Config, rec *trial.Recorder[trial.IowaRecord]) (*Session, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	seed := randv2.Int64()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	if rec == nil {
		rec = trial.NewRecorder[trial.IowaRecord]()
	}

	s := &Session{
		id:       uuid.NewString(),
		cfg:      cfg,
		seed:     seed,
		decks:    make([]deck.Deck, len(cfg.Layout)),
		disabled: make([]bool, len(cfg.Layout)),
		balance:  *cfg.StartingBalance,
		recorder: rec,
		now:      time.Now,
	}
	for i, spec := range cfg.Layout {
		d, err := deck.Make(spec.deckConfig(cfg.OnExhaust, seed+int64(i)), !cfg.Weighted)
		if err != nil {
			return nil, fmt.Errorf("deck %s: %w", spec.Name, err)
		}
		s.decks[i] = d
	}
	s.started = s.now()
	return s, nil
}

func (s *Session) ID() string { return s.id }

// Seed is the session seed actually used, supplied or drawn.
func (s *Session) Seed() int64 { return s.seed }

func (s *Session) Layout() Layout { return s.cfg.Layout }

func (s *Session) Recorder() *trial.Recorder[trial.IowaRecord] { return s.recorder }

func (s *Session) Balance() int64 { return s.balance }

// Choose pulls one card from deck idx and records the trial.
//
// A locked finite deck is disabled once its last card has been dealt; later
// picks fail with ErrDeckDisabled. Should a pull still hit exhaustion, the
// ExhaustionError is returned and nothing is recorded.
func (s *Session) Choose(idx int) (Outcome, error) {
	if s.phase() == PhaseFinished {
		return Outcome{}, ErrSessionFinished
	}
	if idx < 0 || idx >= len(s.decks) {
		return Outcome{}, fmt.Errorf("%w: %d", ErrUnknownDeck, idx)
	}
	name := s.cfg.Layout[idx].Name
	if s.disabled[idx] {
		return Outcome{}, fmt.Errorf("%w: %s", ErrDeckDisabled, name)
	}

	c, err := s.decks[idx].Pull()
	if err != nil {
		if errors.Is(err, deck.ErrDeckExhausted) {
			s.disabled[idx] = true
		}
		return Outcome{}, fmt.Errorf("deck %s: %w", name, err)
	}

	if fd, ok := s.decks[idx].(*deck.FiniteDeck); ok && fd.State() == deck.StateExhaustedLocked {
		s.disabled[idx] = true
	}

	s.balance += c.Net()
	rec := s.recorder.Add(trial.IowaRecord{
		Deck:      name,
		Win:       c.Win,
		Loss:      c.Loss,
		Net:       c.Net(),
		Balance:   s.balance,
		ElapsedMS: s.now().Sub(s.started).Milliseconds(),
	})

	return Outcome{
		Trial:     rec.Trial,
		DeckIndex: idx,
		Deck:      name,
		Card:      c,
		Balance:   s.balance,
		Finished:  s.phase() == PhaseFinished,
	}, nil
}

// ChooseByName is Choose for a deck name.
func (s *Session) ChooseByName(name string) (Outcome, error) {
	idx := s.cfg.Layout.Index(name)
	if idx < 0 {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownDeck, name)
	}
	return s.Choose(idx)
}

// Undo removes the last recorded trial and restores the balance. The deck
// that dealt it is not rewound.
func (s *Session) Undo() (trial.IowaRecord, error) {
	last, ok := s.recorder.Last()
	if !ok {
		return trial.IowaRecord{}, ErrNothingToUndo
	}
	s.recorder.RemoveLast()
	s.balance -= last.Net
	return last, nil
}

func (s *Session) phase() Phase {
	if s.recorder.NumTrials() >= s.cfg.MaxTrials {
		return PhaseFinished
	}
	for _, off := range s.disabled {
		if !off {
			return PhaseRunning
		}
	}
	return PhaseFinished
}
