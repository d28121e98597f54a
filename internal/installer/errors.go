package installer

import "fmt"

// CopyFailedError reports a payload file that could not be copied. The rest
// of its collection is skipped.
type CopyFailedError struct {
	File  string
	Cause error
}

func (e *CopyFailedError) Error() string {
	return fmt.Sprintf("copy failed for %s: %v", e.File, e.Cause)
}

func (e *CopyFailedError) Unwrap() error { return e.Cause }
