package profile

import (
	"fmt"
	"strings"

	"github.com/gimelloc/ignite-gym/internal/domain"
)

// Field keys for inline error rendering.
const (
	FieldName            = "name"
	FieldNewPassword     = "new_password"
	FieldConfirmPassword = "confirm_password"
)

// Reasons a field can fail validation.
const (
	ReasonRequired = "required"
	ReasonTooShort = "too_short"
	ReasonMismatch = "mismatch"
)

const minPasswordLen = 6

// FieldError is one field-scoped validation failure.
type FieldError struct {
	Field   string
	Reason  string
	Message string
}

// ValidationError collects every violation of a draft in field order.
// It never reaches the network: the controller resolves it into inline
// messages.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "invalid profile draft: " + strings.Join(msgs, "; ")
}

// Message returns the message for a field, or "" when the field passed.
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// ValidateDraft decides, without side effects, whether a draft is
// acceptable to submit. Optional fields are first normalized to a
// present/absent value, then the rules run in a single pass collecting
// every violation. The confirmation rule only activates when a new
// password is present; otherwise any confirmation value is accepted
// and normalized away.
//
// The schema deliberately does not require the old password alongside
// a new one; the server is the authority on that rule.
func ValidateDraft(d domain.ProfileEditDraft) (domain.NormalizedDraft, error) {
	norm := domain.NormalizedDraft{
		Name:            strings.TrimSpace(d.Name),
		OldPassword:     optional(d.OldPassword),
		NewPassword:     optional(d.NewPassword),
		ConfirmPassword: optional(d.ConfirmPassword),
	}

	var fields []FieldError

	if norm.Name == "" {
		fields = append(fields, FieldError{
			Field:   FieldName,
			Reason:  ReasonRequired,
			Message: "Enter your name.",
		})
	}

	if norm.NewPassword != nil && len(*norm.NewPassword) < minPasswordLen {
		fields = append(fields, FieldError{
			Field:   FieldNewPassword,
			Reason:  ReasonTooShort,
			Message: fmt.Sprintf("The password must be at least %d characters long.", minPasswordLen),
		})
	}

	if norm.NewPassword != nil {
		switch {
		case norm.ConfirmPassword == nil:
			fields = append(fields, FieldError{
				Field:   FieldConfirmPassword,
				Reason:  ReasonMismatch,
				Message: "Confirm your new password.",
			})
		case *norm.ConfirmPassword != *norm.NewPassword:
			fields = append(fields, FieldError{
				Field:   FieldConfirmPassword,
				Reason:  ReasonMismatch,
				Message: "The password confirmation does not match.",
			})
		}
	} else {
		// No password change requested: a stray confirmation value is
		// accepted and dropped.
		norm.ConfirmPassword = nil
	}

	if len(fields) > 0 {
		return domain.NormalizedDraft{}, &ValidationError{Fields: fields}
	}
	return norm, nil
}

// optional maps an empty string to absent.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
