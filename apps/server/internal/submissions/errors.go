package submissions

import "fmt"

// EmptySubmissionError is returned when the uploaded file carries no bytes.
type EmptySubmissionError struct{}

// Error implements the error interface.
func (EmptySubmissionError) Error() string {
	return "submission file is empty"
}

// RemoteRejectedError is returned when the hosting API answered the write with
// a non-success status (authorization failure, path conflict, malformed input).
// It carries the remote status and message verbatim so the caller can diagnose.
type RemoteRejectedError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e RemoteRejectedError) Error() string {
	return fmt.Sprintf("archive rejected write (status %d): %s", e.StatusCode, e.Message)
}

// ArchiveUnavailableError is returned when the hosting API could not be
// reached at all (DNS failure, timeout, connection refused).
type ArchiveUnavailableError struct {
	Err error
}

// Error implements the error interface.
func (e ArchiveUnavailableError) Error() string {
	return fmt.Sprintf("archive unreachable: %v", e.Err)
}

// Unwrap exposes the underlying transport error.
func (e ArchiveUnavailableError) Unwrap() error { return e.Err }
