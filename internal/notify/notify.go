// Package notify is the user-facing notification sink. Pipelines decide
// that and what to notify; rendering is up to the sink implementation.
package notify

import (
	"github.com/rs/zerolog"

	"github.com/gimelloc/ignite-gym/pkg/log"
)

// Kind classifies a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Message is one notification to show the user.
type Message struct {
	Kind        Kind
	Title       string
	Description string
}

// Notifier receives notifications.
type Notifier interface {
	Notify(msg Message)
}

// LogNotifier renders notifications through the logger, the terminal
// client's stand-in for toast rendering.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a notifier writing through the given logger.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(msg Message) {
	var e *zerolog.Event
	if msg.Kind == KindError {
		e = n.logger.Error()
	} else {
		e = n.logger.Info()
	}
	if msg.Description != "" {
		e = e.Str("description", msg.Description)
	}
	e.Msg(msg.Title)
}

// Default returns a notifier bound to the global logger.
func Default() *LogNotifier {
	return NewLogNotifier(log.L())
}
