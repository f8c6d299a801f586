package cache

import (
	"encoding/json"
	"time"
)

// Entry is one cached response.
type Entry struct {
	Key       string          `json:"key"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

func newEntry(key string, data json.RawMessage, now time.Time, ttl time.Duration) *Entry {
	return &Entry{
		Key:       key,
		Data:      data,
		CreatedAt: now.UTC(),
		ExpiresAt: now.Add(ttl).UTC(),
	}
}

// ExpiredAt reports whether the entry is past its expiry at t.
func (e *Entry) ExpiredAt(t time.Time) bool {
	return t.After(e.ExpiresAt)
}

// Age returns how long before t the entry was written.
func (e *Entry) Age(t time.Time) time.Duration {
	return t.Sub(e.CreatedAt)
}
