package http

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/pressdoc"
)

// DefaultPollInterval is how often task status is polled.
const DefaultPollInterval = 500 * time.Millisecond

// Task states reported by the parsing service.
const (
	taskSuccess = "SUCCESS"
	taskFailure = "FAILURE"
)

var _ pressdoc.DocumentParser = (*DocumentParser)(nil)

// DocumentParser is a client of the document parsing service. A file is
// submitted to /parse, its task polled at /status until it settles, and the
// result archive downloaded from /load.
type DocumentParser struct {
	baseURL      string
	client       *http.Client
	pollInterval time.Duration
}

// ParserOption configures a DocumentParser.
type ParserOption func(*DocumentParser)

// WithPollInterval sets the delay between status checks.
func WithPollInterval(d time.Duration) ParserOption {
	return func(p *DocumentParser) {
		p.pollInterval = d
	}
}

// WithHTTPClient sets the HTTP client used for all requests.
func WithHTTPClient(c *http.Client) ParserOption {
	return func(p *DocumentParser) {
		p.client = c
	}
}

// NewDocumentParser creates a client for the service at baseURL.
func NewDocumentParser(baseURL string, opts ...ParserOption) *DocumentParser {
	p := &DocumentParser{
		baseURL:      strings.TrimRight(baseURL, "/"),
		client:       http.DefaultClient,
		pollInterval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse submits the file and waits for its layout analysis.
func (p *DocumentParser) Parse(ctx context.Context, filename string, r io.Reader) (*pressdoc.ParsedDocument, error) {
	taskID, err := p.submit(ctx, filename, r)
	if err != nil {
		return nil, err
	}
	if err := p.wait(ctx, taskID); err != nil {
		return nil, err
	}
	return p.load(ctx, taskID)
}

func (p *DocumentParser) submit(ctx context.Context, filename string, r io.Reader) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("reading %s: %w", filename, err)
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/parse", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var res struct {
		TaskUUID string `json:"task_uuid"`
		Message  string `json:"message"`
	}
	if err := p.doJSON(req, &res); err != nil {
		return "", err
	}
	if res.Message != "" {
		return "", pressdoc.Errorf(pressdoc.EINVALID, "parse request rejected: %s", res.Message)
	}
	if res.TaskUUID == "" {
		return "", pressdoc.Errorf(pressdoc.EINTERNAL, "parse request returned no task")
	}
	return res.TaskUUID, nil
}

func (p *DocumentParser) wait(ctx context.Context, taskID string) error {
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet,
			p.baseURL+"/status?task_id="+url.QueryEscape(taskID), nil)
		if err != nil {
			return err
		}
		var res struct {
			Status string `json:"status"`
		}
		if err := p.doJSON(req, &res); err != nil {
			return err
		}

		switch res.Status {
		case taskSuccess:
			return nil
		case taskFailure:
			return pressdoc.Errorf(pressdoc.EINTERNAL, "parse task %s failed", taskID)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.pollInterval):
		}
	}
}

func (p *DocumentParser) load(ctx context.Context, taskID string) (*pressdoc.ParsedDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.baseURL+"/load?task_id="+url.QueryEscape(taskID), nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, req.URL)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return decodeResultArchive(data)
}

// decodeResultArchive reads the first entry whose name contains text.json.
// A UTF-8 byte order mark is tolerated.
func decodeResultArchive(data []byte) (*pressdoc.ParsedDocument, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("reading result archive: %w", err)
	}

	for _, f := range zr.File {
		if !strings.Contains(f.Name, "text.json") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}

		var doc pressdoc.ParsedDocument
		if err := json.Unmarshal(bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf")), &doc); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", f.Name, err)
		}
		if doc.Pages == nil {
			doc.Pages = map[string][]pressdoc.ParsedItem{}
		}
		return &doc, nil
	}
	return nil, pressdoc.Errorf(pressdoc.ENOTFOUND, "result archive has no text.json")
}

func (p *DocumentParser) doJSON(req *http.Request, v any) error {
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response from %s (HTTP %d): %w", req.URL.Path, resp.StatusCode, err)
	}
	return nil
}
