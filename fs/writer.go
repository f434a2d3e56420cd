// Package fs provides file-based storage for crawl output and article
// documents.
package fs

import (
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pressdoc"
	"gopkg.in/yaml.v3"
)

// articleView is the last element of article view links.
const articleView = "artclView.do"

// URLToPath converts an article URL to a relative file path.
// Example: https://www.airport.kr/bbs/co_ko/84/12345/artclView.do → bbs/co_ko/84/12345.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", pressdoc.Errorf(pressdoc.EINVALID, "invalid article URL: %v", err)
	}

	p := path.Clean("/" + u.Path)
	if p == "/" {
		return "index.md", nil
	}
	if path.Base(p) == articleView {
		p = path.Dir(p)
	} else {
		p = strings.TrimSuffix(p, path.Ext(p))
	}
	if strings.HasSuffix(u.Path, "/") {
		return strings.TrimPrefix(p, "/") + "/index.md", nil
	}
	return strings.TrimPrefix(p, "/") + ".md", nil
}

type frontmatter struct {
	Source string `yaml:"source"`
	Title  string `yaml:"title"`
	Date   string `yaml:"date,omitempty"`
}

// FormatFrontmatter returns the YAML frontmatter block for an article.
func FormatFrontmatter(a *pressdoc.Article) (string, error) {
	data, err := yaml.Marshal(frontmatter{Source: a.URL, Title: a.Title, Date: pressdoc.NormalizeDate(a.Date)})
	if err != nil {
		return "", err
	}
	return "---\n" + string(data) + "---\n\n", nil
}

// Writer writes articles as markdown files to a directory.
type Writer struct {
	baseDir   string
	formatter pressdoc.ArticleFormatter
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string, formatter pressdoc.ArticleFormatter) *Writer {
	return &Writer{baseDir: baseDir, formatter: formatter}
}

// WriteArticle writes an article with frontmatter and returns the file path.
// Failed articles are rejected with EINVALID.
func (w *Writer) WriteArticle(a *pressdoc.Article) (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}
	if a.Failed() {
		return "", pressdoc.Errorf(pressdoc.EINVALID, "article %s failed: %s", a.URL, a.Error)
	}

	relPath, err := URLToPath(a.URL)
	if err != nil {
		return "", err
	}
	fullPath := filepath.Join(w.baseDir, filepath.FromSlash(relPath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}

	head, err := FormatFrontmatter(a)
	if err != nil {
		return "", err
	}
	body, err := w.formatter.FormatArticle(a)
	if err != nil {
		return "", err
	}
	return fullPath, os.WriteFile(fullPath, []byte(head+body), 0644)
}
