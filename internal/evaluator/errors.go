package evaluator

import (
	"fmt"
)

// ConditionError ties a failure to the operating condition that caused it.
type ConditionError struct {
	Index int
	Name  string
	Err   error
}

func (e *ConditionError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("condition %q: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("condition %d: %v", e.Index, e.Err)
}

func (e *ConditionError) Unwrap() error {
	return e.Err
}
