package compose

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/ytget/scrolly/internal/model"
)

// Snapshot is the state reported to the update callback
type Snapshot struct {
	State     model.SubmissionState
	Draft     model.PostDraft
	AttemptID string
	Err       error
}

// Result is the terminal outcome of one Submit call
type Result struct {
	AttemptID string
	State     model.SubmissionState
	Err       error
}

// OK reports whether the submission succeeded
func (r Result) OK() bool {
	return r.State == model.SubmissionSucceeded
}

// Orchestrator owns a post draft and runs submission attempts for it.
// Failed attempts are terminal and leave the draft unchanged.
type Orchestrator struct {
	mu        sync.Mutex
	draft     model.PostDraft
	state     model.SubmissionState
	attemptID string
	lastErr   error

	session   SessionReader
	sender    PostSender
	threshold int
	onUpdate  func(Snapshot) // callback for UI updates
}

// NewOrchestrator creates a new orchestrator with an empty draft
func NewOrchestrator(session SessionReader, sender PostSender) *Orchestrator {
	return &Orchestrator{
		state:     model.SubmissionIdle,
		session:   session,
		sender:    sender,
		threshold: MultipartThreshold,
	}
}

// SetThreshold overrides the multipart switch-over length
func (o *Orchestrator) SetThreshold(threshold int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.threshold = threshold
}

// SetUpdateCallback sets the callback function for state updates
func (o *Orchestrator) SetUpdateCallback(callback func(Snapshot)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onUpdate = callback
}

// Draft returns a copy of the current draft
func (o *Orchestrator) Draft() model.PostDraft {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.copyDraft()
}

// State returns the current submission state
func (o *Orchestrator) State() model.SubmissionState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// SetText replaces the draft text
func (o *Orchestrator) SetText(text string) {
	o.mu.Lock()
	o.draft.Text = text
	o.settleLocked()
	o.mu.Unlock()
	o.notifyUpdate()
}

// AttachImage checks the image size and attaches it to the draft. A
// rejected image leaves any previously attached image in place.
func (o *Orchestrator) AttachImage(img model.SelectedImage, dataURI string) error {
	if err := CheckImageSize(img.RawByteSize); err != nil {
		return err
	}
	o.mu.Lock()
	o.draft.Image = &img
	o.draft.ImageDataURI = dataURI
	o.settleLocked()
	o.mu.Unlock()
	o.notifyUpdate()
	return nil
}

// ClearImage removes the attached image
func (o *Orchestrator) ClearImage() {
	o.mu.Lock()
	o.draft.Image = nil
	o.draft.ImageDataURI = ""
	o.settleLocked()
	o.mu.Unlock()
	o.notifyUpdate()
}

// Cancel discards the draft. A request already in flight is not aborted;
// its outcome is still recorded when it arrives.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	o.draft.Reset()
	if !o.state.IsActive() {
		o.state = model.SubmissionIdle
		o.lastErr = nil
	}
	o.mu.Unlock()
	o.notifyUpdate()
}

// Submit runs one submission attempt and blocks until it reaches a
// terminal state. No retries are made.
func (o *Orchestrator) Submit(ctx context.Context) Result {
	o.mu.Lock()
	if o.state.IsActive() {
		o.mu.Unlock()
		return Result{State: o.State(), Err: ErrSubmissionInProgress}
	}
	o.attemptID = generateAttemptID()
	o.lastErr = nil
	o.state = model.SubmissionValidating
	o.mu.Unlock()
	o.notifyUpdate()

	draft := o.Draft()
	if !draft.Submittable() {
		return o.fail(&ValidationError{Message: MsgEmptyDraft})
	}

	o.transition(model.SubmissionAuthenticating)
	record, err := o.session.Get()
	if err != nil {
		return o.fail(&AuthError{Message: MsgNotLoggedIn, Err: err})
	}
	if !record.HasUser() {
		return o.fail(&AuthError{Message: MsgNotLoggedIn})
	}

	o.transition(model.SubmissionEncoding)
	o.mu.Lock()
	threshold := o.threshold
	o.mu.Unlock()
	req := EncodePost(draft, record.UserID.String(), threshold)

	o.transition(model.SubmissionSending)
	if err := o.sender.CreatePost(ctx, record.Token, req); err != nil {
		return o.fail(err)
	}

	o.mu.Lock()
	o.draft.Reset()
	o.state = model.SubmissionSucceeded
	id := o.attemptID
	o.mu.Unlock()
	log.Printf("Post submitted: attempt=%s kind=%s", id, req.Kind)
	o.notifyUpdate()

	return Result{AttemptID: id, State: model.SubmissionSucceeded}
}

// LastError returns the error of the most recent failed attempt
func (o *Orchestrator) LastError() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

func (o *Orchestrator) transition(state model.SubmissionState) {
	o.mu.Lock()
	o.state = state
	o.mu.Unlock()
	o.notifyUpdate()
}

func (o *Orchestrator) fail(err error) Result {
	o.mu.Lock()
	o.state = model.SubmissionFailed
	o.lastErr = err
	id := o.attemptID
	o.mu.Unlock()
	log.Printf("Post submission failed: attempt=%s err=%v", id, err)
	o.notifyUpdate()

	return Result{AttemptID: id, State: model.SubmissionFailed, Err: err}
}

// settleLocked returns a finished attempt to Idle once the draft is edited
func (o *Orchestrator) settleLocked() {
	if o.state.IsFinished() {
		o.state = model.SubmissionIdle
		o.lastErr = nil
	}
}

func (o *Orchestrator) copyDraft() model.PostDraft {
	d := o.draft
	if d.Image != nil {
		img := *d.Image
		d.Image = &img
	}
	return d
}

func (o *Orchestrator) notifyUpdate() {
	o.mu.Lock()
	callback := o.onUpdate
	snap := Snapshot{
		State:     o.state,
		Draft:     o.copyDraft(),
		AttemptID: o.attemptID,
		Err:       o.lastErr,
	}
	o.mu.Unlock()

	if callback != nil {
		callback(snap)
	}
}

// generateAttemptID generates a unique submission attempt ID
func generateAttemptID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("attempt-%s", uuid.NewString())
	}
	return "attempt-" + id.String()
}
