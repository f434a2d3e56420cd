package pressdoc

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms clean HTML (e.g., a table or an extracted body)
	// into Markdown.
	Convert(html string) (string, error)
}
