package trial

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Record is one row of trial data of kind T.
type Record[T any] interface {
	Columns() []string
	Values() []string
	// WithTrial returns a copy carrying the given 0-based trial index.
	WithTrial(idx int) T
}

// Recorder keeps the trial-by-trial data of one experiment run, in order.
// It is not safe for concurrent use.
type Recorder[T Record[T]] struct {
	data     []T
	trialIdx int
}

func NewRecorder[T Record[T]]() *Recorder[T] {
	return &Recorder[T]{}
}

// Add appends rec, stamping it with the next trial index, and returns the
// stamped record.
func (r *Recorder[T]) Add(rec T) T {
	stamped := rec.WithTrial(r.trialIdx)
	r.data = append(r.data, stamped)
	r.trialIdx++
	return stamped
}

// RemoveLast drops the most recent trial. It reports false when there was
// nothing to remove.
func (r *Recorder[T]) RemoveLast() bool {
	if len(r.data) == 0 {
		return false
	}
	r.data = r.data[:len(r.data)-1]
	r.trialIdx--
	return true
}

func (r *Recorder[T]) NumTrials() int {
	return r.trialIdx
}

func (r *Recorder[T]) Last() (T, bool) {
	var zero T
	if len(r.data) == 0 {
		return zero, false
	}
	return r.data[len(r.data)-1], true
}

// Records returns a copy of the recorded trials.
func (r *Recorder[T]) Records() []T {
	out := make([]T, len(r.data))
	copy(out, r.data)
	return out
}

// WriteCSV writes a header row followed by one row per trial.
func (r *Recorder[T]) WriteCSV(w io.Writer) error {
	var zero T
	cw := csv.NewWriter(w)
	if err := cw.Write(zero.Columns()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range r.data {
		if err := cw.Write(rec.Values()); err != nil {
			return fmt.Errorf("write trial: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
