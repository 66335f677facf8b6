package notify

import (
	"context"
	"log/slog"
)

// LogNotifier writes notices to a structured logger. It is used when no
// terminal is attached.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier creates a notifier that logs each notice.
func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &LogNotifier{log: log}
}

// Notify logs the notice at the matching level.
func (n *LogNotifier) Notify(ctx context.Context, notice Notice) {
	level := slog.LevelInfo
	switch notice.Level {
	case LevelWarn:
		level = slog.LevelWarn
	case LevelError:
		level = slog.LevelError
	}
	n.log.Log(ctx, level, "notice", "message", notice.Message)
}
