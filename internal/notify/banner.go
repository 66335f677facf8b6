package notify

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// BannerNotifier prints each notice as a one-line banner.
type BannerNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBannerNotifier creates a notifier writing to w, usually stderr.
func NewBannerNotifier(w io.Writer) *BannerNotifier {
	return &BannerNotifier{w: w}
}

// Notify writes the banner. Write errors are dropped: a notice that cannot
// be shown must not fail the action that raised it.
func (b *BannerNotifier) Notify(_ context.Context, notice Notice) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = fmt.Fprintf(b.w, "%s %s\n", prefix(notice.Level), strings.TrimSpace(notice.Message))
}

func prefix(l Level) string {
	switch l {
	case LevelWarn:
		return "[!]"
	case LevelError:
		return "[x]"
	default:
		return "[i]"
	}
}
