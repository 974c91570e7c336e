package replay

import (
	"google.golang.org/protobuf/types/known/structpb"

	"iowa-lite/iowa"
)

const TapeVersion = 1

// RunSpec describes a seeded session and the deck picked on every trial.
type RunSpec struct {
	Layout          []iowa.DeckSpec `json:"layout,omitempty"`
	Seed            int64           `json:"seed"`
	Weighted        bool            `json:"weighted,omitempty"`
	Lock            bool            `json:"lock,omitempty"`
	StartingBalance *int64          `json:"starting_balance,omitempty"`
	Choices         []string        `json:"choices"`
}

type Tape struct {
	TapeVersion  int     `json:"tape_version"`
	Seed         int64   `json:"seed"`
	FinalBalance int64   `json:"final_balance"`
	Events       []Event `json:"events"`
}

type Event struct {
	Type        string           `json:"type"`
	Seq         uint64           `json:"seq"`
	Value       *structpb.Struct `json:"-"`
	EnvelopeB64 string           `json:"envelope_b64,omitempty"`
}
