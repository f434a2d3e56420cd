package goquery

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pressdoc"
)

var _ pressdoc.ArticleParser = (*ArticleParser)(nil)

var (
	titleClassRe  = regexp.MustCompile(`title|subject`)
	writtenDateRe = regexp.MustCompile(`작성일\s*([0-9]{4}\.[0-9]{2}\.[0-9]{2})`)
	attachmentRe  = regexp.MustCompile(`(?i)\.(hwp|pdf|docx?|xlsx?|pptx?|jpg|jpeg|png|gif|bmp|zip|rar|txt)$`)
)

// ArticleParser parses press-release view pages.
type ArticleParser struct {
	classifier *Classifier

	// Extractor locates the body when the page has no div.con.
	// Optional.
	Extractor pressdoc.Extractor
}

// NewArticleParser creates an ArticleParser that classifies bodies with c.
func NewArticleParser(c *Classifier) *ArticleParser {
	if c == nil {
		c = NewClassifier()
	}
	return &ArticleParser{classifier: c}
}

// Parse extracts the title, date, body, tables and attachments of an
// article page.
func (p *ArticleParser) Parse(markup string, pageURL string) (*pressdoc.Article, error) {
	doc, err := parseHTML(markup)
	if err != nil {
		return nil, pressdoc.Errorf(pressdoc.EINVALID, "failed to parse HTML: %v", err)
	}

	article := &pressdoc.Article{
		URL:    pageURL,
		Tables: []pressdoc.ArticleTable{},
	}

	heading := doc.Find("h1, h2, h3").First()
	if heading.Length() == 0 {
		heading = doc.Find("div[class]").FilterFunction(func(_ int, s *goquery.Selection) bool {
			class, _ := s.Attr("class")
			return titleClassRe.MatchString(class)
		}).First()
	}
	if heading.Length() > 0 {
		article.Title = textOf(heading, " ")
	}

	if m := writtenDateRe.FindStringSubmatch(textOf(doc.Selection, "\n")); m != nil {
		article.Date = m[1]
	}

	body, err := p.bodySelection(doc, markup)
	if err != nil {
		return nil, err
	}
	if body != nil {
		segments := p.classifier.ClassifySelection(body)
		article.Body = &segments
		article.Tables = ExtractTables(body)
	} else {
		article.Body = &pressdoc.BodySegments{}
	}

	if article.Title == "" && article.Body.Content != nil {
		article.Title = pressdoc.ExtractTitleFromContent(strings.Join(article.Body.Content, "\n"))
	}
	article.Title = pressdoc.CleanTitle(article.Title)

	article.Attachments = extractAttachments(doc, pageURL)
	return article, nil
}

// bodySelection returns div.con, or the extractor's main content when the
// page has none. Returns nil when no body can be located.
func (p *ArticleParser) bodySelection(doc *goquery.Document, markup string) (*goquery.Selection, error) {
	if con := doc.Find("div.con").First(); con.Length() > 0 {
		return con, nil
	}
	if p.Extractor == nil {
		return nil, nil
	}

	result, err := p.Extractor.Extract(markup)
	if err != nil {
		return nil, err
	}
	if result == nil || strings.TrimSpace(result.ContentHTML) == "" {
		return nil, nil
	}
	extracted, err := parseHTML(result.ContentHTML)
	if err != nil {
		return nil, pressdoc.Errorf(pressdoc.EINVALID, "failed to parse extracted HTML: %v", err)
	}
	return extracted.Find("body").First(), nil
}

// extractAttachments collects download links whose text names a file.
func extractAttachments(doc *goquery.Document, pageURL string) []pressdoc.Attachment {
	base, _ := url.Parse(pageURL)

	var attachments []pressdoc.Attachment
	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !strings.Contains(href, "download.do") {
			return
		}
		name := textOf(a, "")
		if name == "" || name == "미리보기" || !attachmentRe.MatchString(name) {
			return
		}

		fileURL := href
		if base != nil {
			if ref, err := url.Parse(href); err == nil {
				fileURL = base.ResolveReference(ref).String()
			}
		}
		if seen[fileURL] {
			return
		}
		seen[fileURL] = true

		attachments = append(attachments, pressdoc.Attachment{
			Filename: name,
			URL:      fileURL,
			Type:     strings.ToLower(strings.TrimPrefix(path.Ext(name), ".")),
		})
	})
	return attachments
}
