package engine

import "fmt"

// InputError marks a request that cannot produce any schedule: unknown
// site, empty roster, no active positions. It aborts the whole operation
// and is never retried; every other failure mode degrades gracefully.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return e.Reason
}

func inputErrorf(format string, args ...any) *InputError {
	return &InputError{Reason: fmt.Sprintf(format, args...)}
}
