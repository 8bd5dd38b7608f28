// Package notify keeps transient user notifications that expire on their own.
package notify

import (
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"
)

// Kind classifies a notification for styling
type Kind int

const (
	KindInfo Kind = iota
	KindSuccess
	KindError
)

// Notification is a short message shown to the user for a limited time
type Notification struct {
	ID        uint64
	Kind      Kind
	Text      string
	CreatedAt time.Time
}

// Center stores notifications until their TTL passes.
type Center struct {
	cache *cache.Cache
	ttl   time.Duration
	seq   atomic.Uint64
}

// NewCenter creates a Center whose notifications live for ttl.
func NewCenter(ttl, cleanupInterval time.Duration) *Center {
	return &Center{
		cache: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

// TTL returns how long each notification stays visible
func (c *Center) TTL() time.Duration {
	return c.ttl
}

// Push records a notification and returns it
func (c *Center) Push(kind Kind, text string) Notification {
	n := Notification{
		ID:        c.seq.Add(1),
		Kind:      kind,
		Text:      text,
		CreatedAt: time.Now(),
	}
	c.cache.Set(strconv.FormatUint(n.ID, 10), n, cache.DefaultExpiration)
	return n
}

// Success records a success notification
func (c *Center) Success(text string) Notification {
	return c.Push(KindSuccess, text)
}

// Error records an error notification
func (c *Center) Error(text string) Notification {
	return c.Push(KindError, text)
}

// Info records an informational notification
func (c *Center) Info(text string) Notification {
	return c.Push(KindInfo, text)
}

// Active returns unexpired notifications, oldest first
func (c *Center) Active() []Notification {
	items := c.cache.Items()
	active := make([]Notification, 0, len(items))
	for _, item := range items {
		if n, ok := item.Object.(Notification); ok {
			active = append(active, n)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].ID < active[j].ID
	})
	return active
}

// Latest returns the newest unexpired notification
func (c *Center) Latest() (Notification, bool) {
	active := c.Active()
	if len(active) == 0 {
		return Notification{}, false
	}
	return active[len(active)-1], true
}
