package profile

import (
	"bytes"
	"context"
	"io"

	"github.com/gimelloc/ignite-gym/internal/domain"
	"github.com/gimelloc/ignite-gym/internal/notify"
	"github.com/gimelloc/ignite-gym/internal/picker"
	"github.com/gimelloc/ignite-gym/internal/session"
)

// stubStore is an in-memory session.Store recording commits.
type stubStore struct {
	user      domain.User
	signedOut bool
	commitErr error
	commits   int
}

func (s *stubStore) Current() (domain.User, error) {
	if s.signedOut {
		return domain.User{}, session.ErrNoSession
	}
	return s.user, nil
}

func (s *stubStore) CommitProfile(user domain.User) error {
	if s.commitErr != nil {
		return s.commitErr
	}
	s.user = user
	s.commits++
	return nil
}

func (s *stubStore) Save(user domain.User, token, refreshToken string) error {
	s.user = user
	s.signedOut = false
	return nil
}

func (s *stubStore) Clear() error {
	s.signedOut = true
	return nil
}

func (s *stubStore) Token() string { return "" }

// stubNotifier records every notification.
type stubNotifier struct {
	messages []notify.Message
}

func (n *stubNotifier) Notify(msg notify.Message) {
	n.messages = append(n.messages, msg)
}

// stubUploadAPI records the multipart request it receives.
type stubUploadAPI struct {
	calls       int
	path        string
	contentType string
	body        []byte
	resp        domain.UpdateAvatarResponse
	err         error
}

func (a *stubUploadAPI) PatchMultipart(ctx context.Context, path, contentType string, body io.Reader, out any) error {
	a.calls++
	a.path = path
	a.contentType = contentType
	a.body, _ = io.ReadAll(body)
	if a.err != nil {
		return a.err
	}
	if resp, ok := out.(*domain.UpdateAvatarResponse); ok {
		*resp = a.resp
	}
	return nil
}

// stubProfileAPI records the PUT request it receives.
type stubProfileAPI struct {
	calls int
	path  string
	body  any
	err   error
}

func (a *stubProfileAPI) Put(ctx context.Context, path string, body, out any) error {
	a.calls++
	a.path = path
	a.body = body
	return a.err
}

// stubPicker returns a fixed asset, or nil for a cancelled selection.
type stubPicker struct {
	asset *picker.Asset
	err   error
}

func (p *stubPicker) Pick(ctx context.Context) (*picker.Asset, error) {
	return p.asset, p.err
}

// stubFS serves fixed content for any URI.
type stubFS struct {
	size    int64
	data    []byte
	statErr error
}

func (f *stubFS) StatSize(ctx context.Context, uri string) (int64, error) {
	return f.size, f.statErr
}

func (f *stubFS) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}
