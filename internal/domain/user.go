package domain

// User represents the signed-in user's profile as the API returns it.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// HasAvatar reports whether the user has a stored avatar reference.
func (u *User) HasAvatar() bool {
	return u.Avatar != ""
}

// ProfileEditDraft is the raw, unvalidated input of one profile edit
// session, exactly as typed. Optional password fields stay plain
// strings here; normalization to present/absent happens in the
// validation schema.
type ProfileEditDraft struct {
	Name            string
	OldPassword     string
	NewPassword     string
	ConfirmPassword string
}

// NormalizedDraft is a draft that passed the validation schema.
// Password fields are nil when no password change was requested.
type NormalizedDraft struct {
	Name            string
	OldPassword     *string
	NewPassword     *string
	ConfirmPassword *string
}

// UpdateProfileRequest is the body of PUT /users. Email is read-only in
// this subsystem and is never part of the payload.
type UpdateProfileRequest struct {
	Name            string  `json:"name"`
	Password        *string `json:"password,omitempty"`
	OldPassword     *string `json:"old_password,omitempty"`
	ConfirmPassword *string `json:"confirm_password,omitempty"`
}

// UpdateAvatarResponse is the body returned by PATCH /users/avatar.
type UpdateAvatarResponse struct {
	Avatar string `json:"avatar"`
}

// SignInRequest is the body of POST /sessions.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInResponse is the body returned by POST /sessions.
type SignInResponse struct {
	User         User   `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// AvatarCandidate is a user-picked image before upload: a source URI
// plus the metadata the guards need. It is consumed by a single upload
// attempt and never retained across attempts.
type AvatarCandidate struct {
	SourceURI string
	SizeBytes int64
	MimeType  string
}
