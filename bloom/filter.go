// Package bloom provides article deduplication using Bloom filters.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/pressdoc"
)

var _ pressdoc.SeenSet = (*Filter)(nil)

// Filter remembers article IDs in a Bloom filter. It is safe for concurrent
// use. False positives are possible, so size it with a low rate for the
// number of IDs a crawl may see.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records the ID and reports whether it was not seen before.
func (f *Filter) Add(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.f.TestOrAddString(id)
}

// Seen returns true if the ID might have been added.
func (f *Filter) Seen(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(id)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}
