package iowa

import "errors"

var (
	ErrSessionFinished = errors.New("session finished")
	ErrUnknownDeck     = errors.New("unknown deck")
	ErrDeckDisabled    = errors.New("deck disabled")
	ErrNothingToUndo   = errors.New("no trial to undo")
)
