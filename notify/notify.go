package notify

import (
	"log"
	"sync"
)

// VariantDestructive marks a notification surfacing a failure.
const VariantDestructive = "destructive"

// Notification mirrors the toast payload shown to the shopper.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant,omitempty"`
}

// Notifier receives fire-and-forget notifications. Push has no return value
// and implementations must not block the caller.
type Notifier interface {
	Push(n Notification)
}

// LogNotifier writes notifications to the process log.
type LogNotifier struct{}

func (LogNotifier) Push(n Notification) {
	if n.Variant != "" {
		log.Printf("notify [%s]: %s: %s", n.Variant, n.Title, n.Description)
		return
	}
	log.Printf("notify: %s: %s", n.Title, n.Description)
}

// Recorder accumulates notifications for inspection in tests.
type Recorder struct {
	mu    sync.Mutex
	notes []Notification
}

func (r *Recorder) Push(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.notes))
	copy(out, r.notes)
	return out
}
