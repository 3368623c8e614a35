package scanner

import "fmt"

// ScanError reports a scan-level fatal condition, such as a scope root
// that cannot be resolved. Individual file problems are warnings, not
// ScanErrors.
type ScanError struct {
	Scope string
	Err   error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scanning scope %s: %v", e.Scope, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}
