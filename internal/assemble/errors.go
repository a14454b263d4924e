package assemble

import "fmt"

// InvariantError reports that post-assembly validation found a structurally
// invalid graph. It signals a logic fault in a transform, not bad user input,
// and is never silently corrected.
type InvariantError struct {
	GraphID string
	Err     error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("graph %s violates a structural invariant: %v", e.GraphID, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}
