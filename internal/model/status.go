package model

// SubmissionState represents the current step of a post submission attempt
type SubmissionState string

const (
	// SubmissionIdle means no submission is in progress
	SubmissionIdle SubmissionState = "Idle"

	// SubmissionValidating means the draft is being checked for submittability
	SubmissionValidating SubmissionState = "Validating"

	// SubmissionAuthenticating means the session record is being read
	SubmissionAuthenticating SubmissionState = "Authenticating"

	// SubmissionEncoding means the request body is being assembled
	SubmissionEncoding SubmissionState = "Encoding"

	// SubmissionSending means the request is on the wire
	SubmissionSending SubmissionState = "Sending"

	// SubmissionSucceeded means the server accepted the post
	SubmissionSucceeded SubmissionState = "Succeeded"

	// SubmissionFailed means the attempt ended with an error
	SubmissionFailed SubmissionState = "Failed"
)

// String returns the string representation of SubmissionState
func (s SubmissionState) String() string {
	return string(s)
}

// IsActive returns true while an attempt is between Idle and a terminal state
func (s SubmissionState) IsActive() bool {
	return s == SubmissionValidating || s == SubmissionAuthenticating ||
		s == SubmissionEncoding || s == SubmissionSending
}

// IsFinished returns true for terminal states (succeeded or failed)
func (s SubmissionState) IsFinished() bool {
	return s == SubmissionSucceeded || s == SubmissionFailed
}
