package session

import (
	"errors"

	"github.com/gimelloc/ignite-gym/internal/domain"
)

var (
	// ErrNoSession means no user is signed in.
	ErrNoSession = errors.New("no active session")
	// ErrSessionExpired means the persisted access token is past its expiry.
	ErrSessionExpired = errors.New("session has expired")
)

// Store is the single owner of the shared user record. Pipelines read
// the current user through Current and publish profile changes through
// CommitProfile; nothing else mutates the record.
type Store interface {
	// Current returns the signed-in user's profile.
	Current() (domain.User, error)

	// CommitProfile persists an updated profile and makes it the
	// current record for the rest of the app.
	CommitProfile(user domain.User) error

	// Save persists a fresh session after sign-in.
	Save(user domain.User, token, refreshToken string) error

	// Clear removes the persisted session.
	Clear() error

	// Token returns the current access token, or "" when signed out.
	Token() string
}
