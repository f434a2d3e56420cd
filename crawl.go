package pressdoc

import "context"

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// SeenSet remembers article IDs that have already been collected.
type SeenSet interface {
	// Add records the ID and reports whether it was new.
	Add(id string) bool
	Seen(id string) bool
}
