// Package auth signs the user in and out, persisting the session
// through the store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gimelloc/ignite-gym/internal/api"
	"github.com/gimelloc/ignite-gym/internal/audit"
	"github.com/gimelloc/ignite-gym/internal/domain"
	"github.com/gimelloc/ignite-gym/internal/notify"
	"github.com/gimelloc/ignite-gym/internal/session"
	"github.com/gimelloc/ignite-gym/pkg/log"
)

var (
	// ErrEmailRequired means the sign-in form is missing the email.
	ErrEmailRequired = errors.New("enter your email")
	// ErrPasswordRequired means the sign-in form is missing the password.
	ErrPasswordRequired = errors.New("enter your password")
)

// authAPI is the slice of the HTTP client sign-in needs.
type authAPI interface {
	Post(ctx context.Context, path string, body, out any) error
}

// Service handles sign-in and sign-out.
type Service struct {
	api      authAPI
	store    session.Store
	notifier notify.Notifier
}

// NewService wires the auth service.
func NewService(apiClient authAPI, store session.Store, notifier notify.Notifier) *Service {
	return &Service{api: apiClient, store: store, notifier: notifier}
}

// SignIn authenticates the user and persists the session. Missing
// fields are rejected locally without a network call or notification;
// an API failure emits one error notification with the server message
// when recognized.
func (s *Service) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	var resp domain.SignInResponse
	req := domain.SignInRequest{Email: email, Password: password}
	if err := s.api.Post(ctx, "/sessions", req, &resp); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str(log.FieldEmail, email).Msg("sign-in failed")
		audit.LogWithDetail(ctx, audit.ActionSignInFailed, "", email, "sign-in failed")
		s.notifier.Notify(notify.Message{
			Kind:        notify.KindError,
			Title:       "Sign in failed",
			Description: api.ErrorMessage(err, "Could not sign in. Try again later."),
		})
		return nil, err
	}

	if err := s.store.Save(resp.User, resp.Token, resp.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	audit.Log(ctx, audit.ActionSignIn, resp.User.ID, "signed in")
	return &resp.User, nil
}

// SignOut clears the persisted session.
func (s *Service) SignOut(ctx context.Context) error {
	user, err := s.store.Current()
	if err != nil {
		return err
	}
	if err := s.store.Clear(); err != nil {
		return err
	}
	audit.Log(ctx, audit.ActionSignOut, user.ID, "signed out")
	return nil
}
