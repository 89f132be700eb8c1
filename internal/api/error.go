package api

import (
	"errors"
	"fmt"
)

// AppError is a request the server rejected with a recognized error
// body carrying a human-readable message. Anything else that goes
// wrong on the wire surfaces as a plain transport error.
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// ErrorMessage returns the server-supplied message when err is a
// recognized application error, otherwise the fallback.
func ErrorMessage(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return fallback
}
