package slog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/pressdoc/mock"
	pdslog "github.com/fwojciec/pressdoc/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listURL = "https://www.airport.kr/co_ko/664/subview.do"

// records decodes the JSON log lines written to buf.
func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var rec map[string]any
		require.NoError(t, dec.Decode(&rec))
		out = append(out, rec)
	}
	return out
}

func jsonLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, nil))
}

func TestLoggingFetcher(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		html      string
		err       error
		wantBytes float64
		wantErr   string
	}{
		{name: "list page", html: "<table><tbody></tbody></table>", wantBytes: 30},
		{name: "blocked page", err: errors.New("403 Forbidden"), wantErr: "403 Forbidden"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			fetcher := pdslog.NewLoggingFetcher(&mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) { return tt.html, tt.err },
			}, jsonLogger(&buf))

			html, err := fetcher.Fetch(context.Background(), listURL)

			assert.Equal(t, tt.html, html)
			assert.Equal(t, tt.err, err)
			recs := records(t, &buf)
			require.Len(t, recs, 1)
			assert.Equal(t, "fetch", recs[0]["msg"])
			assert.Equal(t, listURL, recs[0]["url"])
			assert.Equal(t, tt.wantBytes, recs[0]["bytes"])
			assert.Contains(t, recs[0], "duration")
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, recs[0]["err"])
			}
		})
	}

	t.Run("close reaches the wrapped fetcher", func(t *testing.T) {
		t.Parallel()

		closed := false
		fetcher := pdslog.NewLoggingFetcher(&mock.Fetcher{
			CloseFn: func() error { closed = true; return nil },
		}, jsonLogger(&bytes.Buffer{}))

		require.NoError(t, fetcher.Close())
		assert.True(t, closed)
	})
}

func TestLoggingSitemapService(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	svc := pdslog.NewLoggingSitemapService(&mock.SitemapService{
		DiscoverURLsFn: func(_ context.Context, baseURL string) ([]string, error) {
			return []string{
				baseURL + "/bbs/co_ko/84/1/artclView.do",
				baseURL + "/bbs/co_ko/84/2/artclView.do",
			}, nil
		},
	}, jsonLogger(&buf))

	urls, err := svc.DiscoverURLs(context.Background(), "https://www.airport.kr")

	require.NoError(t, err)
	assert.Len(t, urls, 2)
	recs := records(t, &buf)
	require.Len(t, recs, 1)
	assert.Equal(t, "sitemap discovery", recs[0]["msg"])
	assert.Equal(t, "https://www.airport.kr", recs[0]["url"])
	assert.Equal(t, float64(2), recs[0]["count"])
}
