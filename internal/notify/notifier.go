// Package notify holds the transient user-facing message produced by
// mutating operations. One message at a time, auto-dismissed after a fixed
// delay; pushing a new message replaces the old one and restarts the
// timer.
package notify

import (
	"sync"
	"time"
)

// DefaultTTL is how long a message stays visible.
const DefaultTTL = 5 * time.Second

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

type Message struct {
	Text  string
	Level Level
}

// Notifier is safe for concurrent use; the dismiss timer fires on its own
// goroutine.
type Notifier struct {
	mu    sync.Mutex
	ttl   time.Duration
	msg   *Message
	timer *time.Timer
}

func New(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{ttl: ttl}
}

// Push replaces the current message and restarts the dismiss timer.
func (n *Notifier) Push(level Level, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
	}
	m := &Message{Text: text, Level: level}
	n.msg = m
	n.timer = time.AfterFunc(n.ttl, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		// A newer message may have replaced this one already.
		if n.msg == m {
			n.msg = nil
		}
	})
}

// Current returns the visible message, or nil after dismissal.
func (n *Notifier) Current() *Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.msg
}

// Close cancels the pending dismiss timer. Call when the owning view goes
// away.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.msg = nil
}
