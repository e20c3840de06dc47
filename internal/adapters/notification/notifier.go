// Package notification provides audible and desktop notifications.
package notification

import (
	"fmt"
	"os"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
)

// Chime counts per timer event. Completion gets the loudest cue so it
// registers even when the terminal is in the background.
var chimes = map[domain.NotifyKind]int{
	domain.NotifyStart:      1,
	domain.NotifyPause:      2,
	domain.NotifyCompletion: 3,
}

// Notifier emits terminal bells and desktop notifications. All delivery
// is fire-and-forget: failures are swallowed and the caller never blocks.
type Notifier struct {
	cfg *config.NotificationConfig
}

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{cfg: cfg}
}

// Notify rings the terminal bell for the given event. The bells play in
// the background with a short gap so repeated chimes stay audible.
func (n *Notifier) Notify(kind domain.NotifyKind) {
	if !n.soundEnabled() {
		return
	}
	count := chimes[kind]
	if count == 0 {
		return
	}

	go func() {
		for i := 0; i < count; i++ {
			if i > 0 {
				time.Sleep(150 * time.Millisecond)
			}
			fmt.Fprint(os.Stdout, "\a")
		}
	}()
}

// SessionComplete announces a finished session via desktop notification.
func (n *Notifier) SessionComplete(finished, next domain.SessionType) {
	if !n.enabled() {
		return
	}

	var title, message string
	if finished.IsBreak() {
		title = "☕ Break Over!"
		message = fmt.Sprintf("Your %s is complete. Ready to focus?", finished.Label())
	} else {
		title = "🍅 Pomodoro Complete!"
		message = fmt.Sprintf("Great job! Up next: %s.", next.Label())
	}

	go func() {
		_ = beeep.Notify(title, message, "")
	}()
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.enabled()
}

func (n *Notifier) enabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}

func (n *Notifier) soundEnabled() bool {
	return n.enabled() && n.cfg.Sound
}
