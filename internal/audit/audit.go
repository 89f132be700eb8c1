package audit

import (
	"context"

	"github.com/gimelloc/ignite-gym/pkg/log"
)

// Audit actions for the client's critical operations.
const (
	ActionSignIn          = "auth.sign_in"
	ActionSignInFailed    = "auth.sign_in_failed"
	ActionSignOut         = "auth.sign_out"
	ActionUpdateProfile   = "profile.update"
	ActionChangePassword  = "profile.change_password"
	ActionUploadAvatar    = "profile.upload_avatar"
	ActionRegisterHistory = "history.register"
)

// Field constants for audit entries.
const (
	FieldAction = "action"
	FieldDetail = "detail"
)

// Log emits a structured audit log entry via the context logger.
func Log(ctx context.Context, action string, userID string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUserID, userID).
		Msg(msg)
}

// LogWithDetail emits an audit log with an extra detail field.
func LogWithDetail(ctx context.Context, action string, userID string, detail string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUserID, userID).
		Str(FieldDetail, detail).
		Msg(msg)
}
