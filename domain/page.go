package domain

import "time"

// Page is a fetched document, already decoded to UTF-8.
type Page struct {
	URL         string    `json:"url"`
	Body        []byte    `json:"body"`
	Fingerprint string    `json:"fingerprint"`
	FetchedAt   time.Time `json:"fetched_at"`
	FromCache   bool      `json:"-"`
	// Unchanged is set on a download whose body matches the expired cached copy.
	Unchanged bool `json:"-"`
}
