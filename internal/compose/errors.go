package compose

import "errors"

// User-facing validation messages
const (
	MsgEmptyDraft        = "Please add some text or select an image"
	MsgNotLoggedIn       = "User not logged in. Please log in first."
	MsgMissingFields     = "Please fill in all fields."
	MsgMissingCredential = "Please fill in both email and password fields."
)

// ErrSubmissionInProgress is returned when Submit is called while another
// attempt is still active.
var ErrSubmissionInProgress = errors.New("submission already in progress")

// ValidationError reports input that was rejected locally. No network call
// is made after a validation failure.
type ValidationError struct {
	Message string
	// SizeMB is the estimated encoded size for oversized images, else 0
	SizeMB float64
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AuthError reports a missing or incomplete session
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsAuth reports whether err is an AuthError
func IsAuth(err error) bool {
	var a *AuthError
	return errors.As(err, &a)
}
