package notifications

import (
	"crypto/rand"
	"log"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Notification is a user-visible error message
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Center keeps the most recent notifications in memory. It is safe for
// concurrent use and implements assistant.Reporter.
type Center struct {
	mu    sync.Mutex
	items []Notification
	limit int
	now   func() time.Time
}

// NewCenter creates a Center holding at most limit notifications
func NewCenter(limit int) *Center {
	if limit < 1 {
		limit = 1
	}
	return &Center{limit: limit, now: time.Now}
}

// Report records message, evicting the oldest notification when full
func (c *Center) Report(message string) {
	log.Printf("Notification: %s", message)
	c.Add(message)
}

// Add records message and returns the new notification
func (c *Center) Add(message string) Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := Notification{
		ID:        ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		Message:   message,
		CreatedAt: now,
	}
	c.items = append(c.items, n)
	if len(c.items) > c.limit {
		c.items = append([]Notification(nil), c.items[len(c.items)-c.limit:]...)
	}
	return n
}

// Latest returns the most recent notification
func (c *Center) Latest() (Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 {
		return Notification{}, false
	}
	return c.items[len(c.items)-1], true
}

// List returns the notifications, newest first
func (c *Center) List() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Notification, 0, len(c.items))
	for i := len(c.items) - 1; i >= 0; i-- {
		out = append(out, c.items[i])
	}
	return out
}

// Dismiss removes the notification with the given id
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every notification
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}
