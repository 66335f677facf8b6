// Package notify delivers short user-facing notices: the session expired,
// a bookmark change was rolled back, a login is required. Delivery never
// blocks the action that raised the notice.
package notify

import (
	"context"
)

// Level is the severity of a notice.
type Level string

// Notice levels.
const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Notice is a single message for the user.
type Notice struct {
	Level   Level
	Message string
}

// Notifier delivers notices.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// Messages shown to users.
const (
	MsgSessionExpired = "Your session has expired. Please log in again."
	MsgLoginRequired  = "Login required."
	MsgScrapFailed    = "Could not update your scrap. Your change was undone."
	MsgNoUser         = "Your account details are incomplete. Please log in again."
)

// Info builds an info notice.
func Info(msg string) Notice { return Notice{Level: LevelInfo, Message: msg} }

// Warn builds a warning notice.
func Warn(msg string) Notice { return Notice{Level: LevelWarn, Message: msg} }

// Error builds an error notice.
func Error(msg string) Notice { return Notice{Level: LevelError, Message: msg} }

// Multi fans a notice out to every notifier in order.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(ctx context.Context, n Notice) {
	for _, notifier := range m {
		if notifier != nil {
			notifier.Notify(ctx, n)
		}
	}
}
