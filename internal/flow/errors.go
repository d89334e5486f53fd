package flow

import "fmt"

// ValidationError is a local guard failure: the screen's inputs do not permit
// advancing. Fully recoverable by re-entering input.
type ValidationError struct {
	Title  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Reason)
}

// PermissionError means an OS-level capability was denied (image file not
// readable, location lookup refused). The action aborts; the user can retry
// or take the manual path.
type PermissionError struct {
	Capability string
	Reason     string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("%s permission: %s", e.Capability, e.Reason)
}
