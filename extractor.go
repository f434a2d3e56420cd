package pressdoc

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	ContentHTML string
}

// Extractor locates the main content of a page when the board layout is not
// recognized. Boilerplate such as navigation and footers is removed.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
