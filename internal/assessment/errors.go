package assessment

import "fmt"

// RefusedError reports a step-exit precondition that was not met. It is
// always recoverable: the session is left unchanged and the same step is
// re-rendered. Answered/Total are set for questionnaire refusals.
type RefusedError struct {
	Reason   string
	Answered int
	Total    int
}

func (e *RefusedError) Error() string {
	if e.Total > 0 {
		return fmt.Sprintf("%s (%d/%d completed)", e.Reason, e.Answered, e.Total)
	}
	return e.Reason
}

func refuse(format string, args ...any) error {
	return &RefusedError{Reason: fmt.Sprintf(format, args...)}
}
