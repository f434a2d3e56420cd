package bloom_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/pressdoc/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_Add(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.0001)

	assert.False(t, f.Seen("5012"))
	assert.True(t, f.Add("5012"), "first add reports a new ID")
	assert.False(t, f.Add("5012"), "second add reports a known ID")
	assert.True(t, f.Seen("5012"))
	assert.False(t, f.Seen("5013"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.Equal(t, uint(0), f.EstimatedCount())

	f.Add("1")
	f.Add("2")
	f.Add("3")
	f.Add("3")

	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_ConcurrentAdd(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(10000, 0.0001)

	var wg sync.WaitGroup
	var mu sync.Mutex
	added := 0
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				// Every worker adds the same IDs; each must be new exactly once.
				if f.Add(fmt.Sprintf("%d", i)) {
					mu.Lock()
					added++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, added)
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)

	for i := range numItems {
		f.Add(fmt.Sprintf("added/%d", i))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.Seen(fmt.Sprintf("notadded/%d", i)) {
			falsePositives++
		}
	}

	// Allow up to 2% to account for statistical variance.
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}
