package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrClassificationAmbiguous means the response carried no usable signal
	// to tell a directory from a file.
	ErrClassificationAmbiguous = errors.New("classification ambiguous: no content-type header")

	// ErrPathCollision means two remote entries map to the same local path.
	ErrPathCollision = errors.New("local path collision")
)

// InputValidationError rejects a malformed remote URL or local directory
// before any network activity.
type InputValidationError struct {
	Field string
	Value string
	Hint  string
}

func (e *InputValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s %q", e.Field, e.Value)
	if e.Hint != "" {
		msg += ": " + e.Hint
	}
	return msg
}

// TransportError wraps a failed request (DNS, refused connection, timeout).
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UnexpectedStatus is a non-2xx response for one node.
type UnexpectedStatus struct {
	URL        string
	StatusCode int
}

func (e *UnexpectedStatus) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
}

// ToolMissing means the version-control tool is not installed or runnable.
type ToolMissing struct {
	Tool string
	Err  error
}

func (e *ToolMissing) Error() string {
	return fmt.Sprintf("%s not found or not runnable: %v", e.Tool, e.Err)
}

func (e *ToolMissing) Unwrap() error { return e.Err }

// RebuildFailed means the tool ran but could not restore the work tree.
type RebuildFailed struct {
	Dir    string
	Output string
	Err    error
}

func (e *RebuildFailed) Error() string {
	msg := fmt.Sprintf("rebuild in %s failed: %v", e.Dir, e.Err)
	if e.Output != "" {
		msg += "\n" + e.Output
	}
	return msg
}

func (e *RebuildFailed) Unwrap() error { return e.Err }
