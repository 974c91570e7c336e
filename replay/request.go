package replay

import (
	"encoding/json"
	"errors"
)

type Request struct {
	Spec RunSpec `json:"spec"`
}

type Response struct {
	OK    bool         `json:"ok"`
	Tape  *WireTape    `json:"tape,omitempty"`
	Error *ReplayError `json:"error,omitempty"`
}

// HandleRequest decodes a JSON Request and generates its tape. Failures are
// reported in the Response, never returned.
func HandleRequest(raw []byte) Response {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return Response{
			OK:    false,
			Error: &ReplayError{StepIndex: -1, Reason: "invalid_json", Message: err.Error()},
		}
	}

	tape, err := GenerateTape(req.Spec)
	if err != nil {
		var replayErr *ReplayError
		if errors.As(err, &replayErr) {
			return Response{OK: false, Error: replayErr}
		}
		return Response{
			OK:    false,
			Error: &ReplayError{StepIndex: -1, Reason: "replay_generation_failed", Message: err.Error()},
		}
	}
	return Response{OK: true, Tape: ToWireTape(tape)}
}

// MustJSON marshals v, falling back to an encoded marshal_failed Response.
func MustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		fallback := Response{
			OK:    false,
			Error: &ReplayError{StepIndex: -1, Reason: "marshal_failed", Message: err.Error()},
		}
		b2, _ := json.Marshal(fallback)
		return b2
	}
	return b
}
