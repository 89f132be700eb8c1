package profile

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/gimelloc/ignite-gym/internal/domain"
)

var (
	// ErrSubmissionInFlight means the profile form already has a
	// submission running; the new one was not started.
	ErrSubmissionInFlight = errors.New("a profile submission is already in flight")

	// ErrUploadInFlight means an avatar upload is already running.
	ErrUploadInFlight = errors.New("an avatar upload is already in flight")
)

// State is the form's submission state.
type State int

const (
	StateIdle State = iota
	StateSubmitting
)

// submitter runs the profile update pipeline.
type submitter interface {
	Submit(ctx context.Context, draft domain.NormalizedDraft) error
}

// avatarUploader runs the avatar upload pipeline.
type avatarUploader interface {
	SelectAndUpload(ctx context.Context) (*domain.User, error)
}

// FormController binds the validation schema and the two pipelines
// into one screen-level state machine. The profile submission and the
// avatar upload are independent sub-machines: each has its own
// in-flight gate, and one may run while the other is busy. Both return
// to idle after their outcome is dispatched; there is no terminal
// state.
type FormController struct {
	updater  submitter
	uploader avatarUploader

	submitting atomic.Bool
	uploading  atomic.Bool
}

// NewFormController creates a controller for one profile edit session.
func NewFormController(updater submitter, uploader avatarUploader) *FormController {
	return &FormController{updater: updater, uploader: uploader}
}

// Submit validates the draft and, when it is acceptable, runs the
// profile update pipeline. A draft the schema rejects keeps the
// controller idle, causes no network call, and returns the
// *ValidationError for inline rendering. While a submission is in
// flight further submissions are refused. Ignoring the returned error
// does not abort the underlying request.
func (c *FormController) Submit(ctx context.Context, draft domain.ProfileEditDraft) error {
	norm, err := ValidateDraft(draft)
	if err != nil {
		return err
	}

	if !c.submitting.CompareAndSwap(false, true) {
		return ErrSubmissionInFlight
	}
	defer c.submitting.Store(false)

	return c.updater.Submit(ctx, norm)
}

// ChangeAvatar runs the avatar upload pipeline. It may be triggered
// while a profile submission is in flight; only a second concurrent
// avatar upload is refused. A (nil, nil) result means the user
// cancelled the selection.
func (c *FormController) ChangeAvatar(ctx context.Context) (*domain.User, error) {
	if !c.uploading.CompareAndSwap(false, true) {
		return nil, ErrUploadInFlight
	}
	defer c.uploading.Store(false)

	return c.uploader.SelectAndUpload(ctx)
}

// State reports whether a profile submission is in flight.
func (c *FormController) State() State {
	if c.submitting.Load() {
		return StateSubmitting
	}
	return StateIdle
}

// UploadingAvatar reports whether an avatar upload is in flight.
func (c *FormController) UploadingAvatar() bool {
	return c.uploading.Load()
}
