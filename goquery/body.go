package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pressdoc"
	"golang.org/x/net/html"
)

var _ pressdoc.BodyClassifier = (*Classifier)(nil)

// Classifier splits article bodies into header, sub-header and content
// sentences using inline style signals.
type Classifier struct {
	policy pressdoc.HeaderPolicy
	dedup  pressdoc.DedupMode
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithHeaderPolicy sets how inline styles mark header text.
func WithHeaderPolicy(p pressdoc.HeaderPolicy) ClassifierOption {
	return func(c *Classifier) {
		c.policy = p
	}
}

// WithDedupMode sets how already-classified text is recognized.
func WithDedupMode(m pressdoc.DedupMode) ClassifierOption {
	return func(c *Classifier) {
		c.dedup = m
	}
}

// NewClassifier creates a Classifier. The default uses PolicyAligned and
// DedupByNode.
func NewClassifier(opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		policy: pressdoc.PolicyAligned,
		dedup:  pressdoc.DedupByNode,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify treats bodyHTML as the contents of the body node.
func (c *Classifier) Classify(bodyHTML string) pressdoc.BodySegments {
	node, ok := bodyNode(bodyHTML)
	if !ok {
		return pressdoc.BodySegments{}
	}
	return c.ClassifySelection(node)
}

// ExtractTables treats bodyHTML as the contents of the body node.
func (c *Classifier) ExtractTables(bodyHTML string) []pressdoc.ArticleTable {
	node, ok := bodyNode(bodyHTML)
	if !ok {
		return []pressdoc.ArticleTable{}
	}
	return ExtractTables(node)
}

func bodyNode(bodyHTML string) (*goquery.Selection, bool) {
	if strings.TrimSpace(bodyHTML) == "" {
		return nil, false
	}
	doc, err := parseHTML(bodyHTML)
	if err != nil {
		return nil, false
	}
	body := doc.Find("body").First()
	return body, body.Length() > 0
}

// ClassifySelection classifies the text under the first node of sel. The
// node itself is never a candidate. An empty selection yields nil segments.
func (c *Classifier) ClassifySelection(sel *goquery.Selection) pressdoc.BodySegments {
	if sel == nil || sel.Length() == 0 {
		return pressdoc.BodySegments{}
	}
	root := sel.Nodes[0]

	fullText := nodesText([]*html.Node{root}, "")
	acc := c.classify(root)

	content := fullText
	for _, s := range acc.distinct() {
		content = strings.ReplaceAll(content, s, "")
	}
	content = pressdoc.CollapseSpace(content)

	tableCount := sel.First().Find("table").Length()
	sentences := pressdoc.SplitSentences(content)
	if tableCount > 0 {
		sentences = pressdoc.InterleaveTables(sentences, tableCount)
	}

	return pressdoc.BodySegments{
		Header:    pressdoc.SplitSentences(strings.Join(acc.header, " ")),
		SubHeader: pressdoc.SplitSentences(strings.Join(acc.subHeader, " ")),
		Content:   sentences,
	}
}

// classified accumulates the texts matched during one classification pass.
type classified struct {
	header    []string
	subHeader []string
	seen      map[string]bool
	order     []string
}

func (a *classified) add(track *[]string, text string) {
	*track = append(*track, text)
	if !a.seen[text] {
		a.seen[text] = true
		a.order = append(a.order, text)
	}
}

// distinct returns every classified text once, in first-seen order.
func (a *classified) distinct() []string {
	return a.order
}

type track int

const (
	trackNone track = iota
	trackHeader
	trackSubHeader
)

func (c *Classifier) classify(root *html.Node) *classified {
	acc := &classified{seen: make(map[string]bool)}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type != html.ElementNode {
				continue
			}
			if c.isCandidate(child) {
				text := nodesText([]*html.Node{child}, "")
				if text != "" && !(c.dedup == pressdoc.DedupByText && acc.seen[text]) {
					switch c.trackOf(child) {
					case trackHeader:
						acc.add(&acc.header, text)
						if c.dedup == pressdoc.DedupByNode {
							continue
						}
					case trackSubHeader:
						acc.add(&acc.subHeader, text)
						if c.dedup == pressdoc.DedupByNode {
							continue
						}
					}
				}
			}
			walk(child)
		}
	}
	walk(root)
	return acc
}

func (c *Classifier) isCandidate(n *html.Node) bool {
	switch n.Data {
	case "span", "p":
		return true
	case "div":
		return c.policy == pressdoc.PolicyAligned
	}
	return false
}

func (c *Classifier) trackOf(n *html.Node) track {
	if c.policy == pressdoc.PolicyStrict {
		if hasColor(attr(n, "style")) {
			return trackHeader
		}
		return trackNone
	}

	styles := combinedStyles(n)
	colored := false
	centered := hasAlignAttr(n)
	for _, style := range styles {
		colored = colored || hasColor(style)
		centered = centered || hasCenterAlign(style)
	}
	switch {
	case colored && centered:
		return trackHeader
	case centered:
		return trackSubHeader
	}
	return trackNone
}

// combinedStyles returns the inline style of n and of every span under it.
func combinedStyles(n *html.Node) []string {
	styles := []string{attr(n, "style")}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if c.Data == "span" {
				styles = append(styles, attr(c, "style"))
			}
			walk(c)
		}
	}
	walk(n)
	return styles
}

// hasAlignAttr reports whether n or any element under it carries
// align="center".
func hasAlignAttr(n *html.Node) bool {
	if strings.EqualFold(strings.TrimSpace(attr(n, "align")), "center") {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && hasAlignAttr(c) {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// declarations parses an inline style into lowercase property/value pairs.
func declarations(style string) [][2]string {
	var decls [][2]string
	for _, decl := range strings.Split(style, ";") {
		prop, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		decls = append(decls, [2]string{
			strings.ToLower(strings.TrimSpace(prop)),
			strings.ToLower(strings.TrimSpace(value)),
		})
	}
	return decls
}

// hasColor reports whether the style declares a text color. Properties that
// merely end in "color", such as background-color, do not count.
func hasColor(style string) bool {
	for _, d := range declarations(style) {
		if d[0] == "color" && d[1] != "" {
			return true
		}
	}
	return false
}

func hasCenterAlign(style string) bool {
	for _, d := range declarations(style) {
		if d[0] == "text-align" && strings.HasPrefix(d[1], "center") {
			return true
		}
	}
	return false
}

// ExtractTables returns every table under the first node of sel in document
// order, nested tables included.
func ExtractTables(sel *goquery.Selection) []pressdoc.ArticleTable {
	tables := []pressdoc.ArticleTable{}
	if sel == nil || sel.Length() == 0 {
		return tables
	}
	sel.First().Find("table").Each(func(_ int, table *goquery.Selection) {
		markup, err := goquery.OuterHtml(table)
		if err != nil {
			markup = ""
		}
		tables = append(tables, pressdoc.ArticleTable{
			HTML: markup,
			Text: textOf(table, "\n"),
			Data: NormalizeTable(table).Flatten(),
		})
	})
	return tables
}
