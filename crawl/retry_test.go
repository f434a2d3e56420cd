package crawl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/pressdoc/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry(t *testing.T) {
	t.Parallel()

	t.Run("returns nil after a transient failure", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := crawl.Retry(context.Background(), []time.Duration{0, 0}, func(context.Context) error {
			calls++
			if calls < 2 {
				return errors.New("timeout")
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("makes one attempt per delay plus one", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := crawl.Retry(context.Background(), []time.Duration{0, 0, 0}, func(context.Context) error {
			calls++
			return errors.New("connection refused")
		})

		require.EqualError(t, err, "connection refused")
		assert.Equal(t, 4, calls)
	})

	t.Run("stops on permanent error", func(t *testing.T) {
		t.Parallel()

		calls := 0
		cause := errors.New("bad url")
		err := crawl.Retry(context.Background(), []time.Duration{0, 0}, func(context.Context) error {
			calls++
			return crawl.Permanent(cause)
		})

		require.ErrorIs(t, err, cause)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops waiting when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := crawl.Retry(ctx, []time.Duration{time.Hour}, func(context.Context) error {
			calls++
			cancel()
			return errors.New("timeout")
		})

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})

	t.Run("default delays double", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, crawl.DefaultRetryDelays())
	})
}
