package profile

import (
	"context"
	"fmt"

	"github.com/gimelloc/ignite-gym/internal/api"
	"github.com/gimelloc/ignite-gym/internal/audit"
	"github.com/gimelloc/ignite-gym/internal/domain"
	"github.com/gimelloc/ignite-gym/internal/notify"
	"github.com/gimelloc/ignite-gym/internal/session"
	"github.com/gimelloc/ignite-gym/pkg/log"
)

const profileEndpoint = "/users"

// profileAPI is the slice of the HTTP client the update needs.
type profileAPI interface {
	Put(ctx context.Context, path string, body, out any) error
}

// Updater persists a validated draft's name and optional password
// change to the remote profile, keeping the local session record
// consistent: the updated name is staged on a working copy and only
// committed after the server accepts it.
type Updater struct {
	api      profileAPI
	store    session.Store
	notifier notify.Notifier
}

// NewUpdater wires the profile update pipeline.
func NewUpdater(apiClient profileAPI, store session.Store, notifier notify.Notifier) *Updater {
	return &Updater{api: apiClient, store: store, notifier: notifier}
}

// Submit sends the draft to PUT /users. The draft must already have
// passed ValidateDraft; no business rules are re-checked here. On
// failure the working copy is discarded and the session store is left
// exactly as it was. Failures are never retried automatically.
func (p *Updater) Submit(ctx context.Context, draft domain.NormalizedDraft) error {
	user, err := p.store.Current()
	if err != nil {
		return err
	}

	// Staged working copy: the new name is applied locally but not
	// committed until the server confirms.
	working := user
	working.Name = draft.Name

	req := domain.UpdateProfileRequest{
		Name:            draft.Name,
		Password:        draft.NewPassword,
		OldPassword:     draft.OldPassword,
		ConfirmPassword: draft.ConfirmPassword,
	}

	if err := p.api.Put(ctx, profileEndpoint, req, nil); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Msg("profile update failed")
		p.notifier.Notify(notify.Message{
			Kind:  notify.KindError,
			Title: api.ErrorMessage(err, "Could not update profile data. Try again later."),
		})
		return err
	}

	if err := p.store.CommitProfile(working); err != nil {
		return fmt.Errorf("failed to commit profile: %w", err)
	}

	audit.Log(ctx, audit.ActionUpdateProfile, user.ID, "profile updated")
	if draft.NewPassword != nil {
		audit.Log(ctx, audit.ActionChangePassword, user.ID, "password changed")
	}

	p.notifier.Notify(notify.Message{Kind: notify.KindSuccess, Title: "Profile updated successfully!"})
	return nil
}
