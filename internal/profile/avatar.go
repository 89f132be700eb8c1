package profile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/gimelloc/ignite-gym/internal/api"
	"github.com/gimelloc/ignite-gym/internal/audit"
	"github.com/gimelloc/ignite-gym/internal/domain"
	"github.com/gimelloc/ignite-gym/internal/notify"
	"github.com/gimelloc/ignite-gym/internal/picker"
	"github.com/gimelloc/ignite-gym/internal/session"
	"github.com/gimelloc/ignite-gym/pkg/log"
)

// ErrImageTooLarge means the picked image tripped the size guard; no
// upload was attempted.
var ErrImageTooLarge = errors.New("image exceeds the maximum allowed size")

const (
	avatarEndpoint  = "/users/avatar"
	avatarFormField = "avatar"

	defaultMaxAvatarMB = 5
)

// avatarAPI is the slice of the HTTP client the upload needs.
type avatarAPI interface {
	PatchMultipart(ctx context.Context, path, contentType string, body io.Reader, out any) error
}

// AvatarUploader turns a user-picked image into a persisted avatar
// reference, or fails cleanly without touching profile state. Exactly
// one network call happens per invocation, and none at all when the
// size guard trips.
type AvatarUploader struct {
	api      avatarAPI
	store    session.Store
	picker   picker.ImagePicker
	fs       picker.FileSystem
	notifier notify.Notifier
	maxMB    int64
}

// NewAvatarUploader wires the upload pipeline. maxMB <= 0 falls back
// to the 5 MB default.
func NewAvatarUploader(apiClient avatarAPI, store session.Store, pk picker.ImagePicker, fs picker.FileSystem, notifier notify.Notifier, maxMB int64) *AvatarUploader {
	if maxMB <= 0 {
		maxMB = defaultMaxAvatarMB
	}
	return &AvatarUploader{
		api:      apiClient,
		store:    store,
		picker:   pk,
		fs:       fs,
		notifier: notifier,
		maxMB:    maxMB,
	}
}

// SelectAndUpload runs the full flow: pick, size-guard, upload, merge.
// A cancelled selection returns (nil, nil) with no notification and no
// state change. On success the returned user is the committed profile
// with the new avatar reference; on failure the shared profile is left
// untouched and exactly one error notification is emitted. The caller
// may ignore the result; doing so does not abort an in-flight upload.
func (u *AvatarUploader) SelectAndUpload(ctx context.Context) (*domain.User, error) {
	asset, err := u.picker.Pick(ctx)
	if err != nil {
		u.notifyError("Could not select the photo. Try again later.")
		return nil, fmt.Errorf("failed to pick image: %w", err)
	}
	if asset == nil {
		// Cancelled selection is a deliberate no-op.
		return nil, nil
	}

	size, err := u.fs.StatSize(ctx, asset.URI)
	if err != nil {
		u.notifyError("Could not read the selected photo.")
		return nil, fmt.Errorf("failed to stat image: %w", err)
	}

	candidate := domain.AvatarCandidate{
		SourceURI: asset.URI,
		SizeBytes: size,
		MimeType:  asset.MediaType,
	}

	if float64(candidate.SizeBytes)/1024/1024 > float64(u.maxMB) {
		u.notifyError(fmt.Sprintf("This image is too large. Choose one up to %dMB.", u.maxMB))
		return nil, ErrImageTooLarge
	}

	user, err := u.store.Current()
	if err != nil {
		return nil, err
	}

	body, contentType, err := u.buildPayload(ctx, user, candidate)
	if err != nil {
		u.notifyError("Could not read the selected photo.")
		return nil, err
	}

	var resp domain.UpdateAvatarResponse
	if err := u.api.PatchMultipart(ctx, avatarEndpoint, contentType, body, &resp); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Msg("avatar upload failed")
		u.notifyError(api.ErrorMessage(err, "Could not update your photo. Try again later."))
		return nil, err
	}

	// The local record is only patched after the server accepted the
	// upload, and exclusively on the avatar field.
	updated := user
	updated.Avatar = resp.Avatar
	if err := u.store.CommitProfile(updated); err != nil {
		u.notifyError("Could not update your photo. Try again later.")
		return nil, err
	}

	audit.LogWithDetail(ctx, audit.ActionUploadAvatar, user.ID, resp.Avatar, "avatar updated")
	u.notifier.Notify(notify.Message{Kind: notify.KindSuccess, Title: "Photo updated!"})
	return &updated, nil
}

// buildPayload assembles the multipart body with the single avatar
// file field. The filename is derived from the user's name plus the
// source extension, lower-cased; the part's content type from the
// asset's declared type plus the same extension.
func (u *AvatarUploader) buildPayload(ctx context.Context, user domain.User, candidate domain.AvatarCandidate) (io.Reader, string, error) {
	ext := strings.TrimPrefix(filepath.Ext(candidate.SourceURI), ".")
	filename := strings.ToLower(fmt.Sprintf("%s.%s", user.Name, ext))
	partType := fmt.Sprintf("%s/%s", candidate.MimeType, ext)

	f, err := u.fs.Open(ctx, candidate.SourceURI)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, avatarFormField, filename))
	header.Set("Content-Type", partType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("failed to write form file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize payload: %w", err)
	}

	return buf, w.FormDataContentType(), nil
}

func (u *AvatarUploader) notifyError(title string) {
	u.notifier.Notify(notify.Message{Kind: notify.KindError, Title: title})
}
