package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDraftNotFound       = errors.New("draft not found")
	ErrImageNotFound       = errors.New("image not found on draft")
	ErrSubmissionInFlight  = errors.New("submission already in progress")
	ErrDraftAlreadyCreated = errors.New("draft has already been submitted")
)

// ValidationError is raised by local checks before any network call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UploadError wraps a single file's upload failure. A failing file aborts the
// rest of its batch; files that already finished are not rolled back.
type UploadError struct {
	Filename string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %v", e.Filename, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// SubmissionError carries the server-reported failure of the project-creation
// call. The draft is preserved so the user can retry.
type SubmissionError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "project creation failed"
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
