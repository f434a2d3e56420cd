package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/fwojciec/pressdoc"
	"github.com/fwojciec/pressdoc/fs"
)

// readArticles reads either a crawl output or a single article JSON file.
func readArticles(path string) ([]*pressdoc.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var probe struct {
		Articles json.RawMessage `json:"articles"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, pressdoc.Errorf(pressdoc.EINVALID, "invalid JSON in %s: %v", path, err)
	}
	if probe.Articles != nil {
		var out pressdoc.Output
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, pressdoc.Errorf(pressdoc.EINVALID, "invalid crawl output %s: %v", path, err)
		}
		return out.Articles, nil
	}

	var article pressdoc.Article
	if err := json.Unmarshal(data, &article); err != nil {
		return nil, pressdoc.Errorf(pressdoc.EINVALID, "invalid article %s: %v", path, err)
	}
	if err := article.Validate(); err != nil {
		return nil, err
	}
	return []*pressdoc.Article{&article}, nil
}

// writeJSON writes v the way crawl output is written.
func writeJSON(w io.Writer, v any) error {
	data, err := fs.MarshalOutput(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// readSource reads a file, or stdin for "-".
func readSource(deps *Dependencies, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(deps.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
