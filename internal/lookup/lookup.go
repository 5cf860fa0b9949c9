// Package lookup resolves a numeric row index to previously recorded
// questionnaire answers, used to pre-fill the screening wizard.
package lookup

import (
	"context"
	"errors"
)

// ErrNotFound means the index has no record. It is an expected outcome,
// not a failure: the caller reports it and leaves the session untouched.
var ErrNotFound = errors.New("record not found")

// Record is one stored set of answers keyed by question id.
type Record struct {
	Answers map[string]bool
}

type Source interface {
	FindByIndex(ctx context.Context, index int) (Record, error)
}
