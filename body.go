package pressdoc

// BodySegments is an article body split into header, sub-header and content
// sentences. An absent track is nil rather than empty.
type BodySegments struct {
	Header    []string `json:"header"`
	SubHeader []string `json:"sub-header"`
	Content   []string `json:"content"`
}

// HeaderPolicy selects how inline styles mark header text.
type HeaderPolicy int

const (
	// PolicyAligned marks colored, centered text as header and centered text
	// without color as sub-header. Candidates are span, p and div.
	PolicyAligned HeaderPolicy = iota

	// PolicyStrict marks any span or p with a color declaration as header.
	// There is no sub-header track.
	PolicyStrict
)

// String returns the policy name used in configuration.
func (p HeaderPolicy) String() string {
	switch p {
	case PolicyStrict:
		return "strict"
	default:
		return "aligned"
	}
}

// ParseHeaderPolicy converts a configuration value into a HeaderPolicy.
func ParseHeaderPolicy(s string) (HeaderPolicy, error) {
	switch s {
	case "", "aligned":
		return PolicyAligned, nil
	case "strict":
		return PolicyStrict, nil
	}
	return PolicyAligned, Errorf(EINVALID, "unknown header policy %q", s)
}

// DedupMode selects how already-classified text is recognized.
type DedupMode int

const (
	// DedupByNode skips elements nested inside an element that was already
	// classified. Identical text in unrelated elements is classified twice.
	DedupByNode DedupMode = iota

	// DedupByText skips any element whose text equals text that was already
	// classified. Identical text in unrelated elements is classified once.
	DedupByText
)

// ParseDedupMode converts a configuration value ("node" or "text") into a
// DedupMode.
func ParseDedupMode(s string) (DedupMode, error) {
	switch s {
	case "", "node":
		return DedupByNode, nil
	case "text":
		return DedupByText, nil
	}
	return DedupByNode, Errorf(EINVALID, "unknown dedup mode %q", s)
}

// BodyClassifier splits an article body into segments and collects its
// tables. Implementations accept the body as HTML.
type BodyClassifier interface {
	// Classify returns nil segments for empty input.
	Classify(bodyHTML string) BodySegments

	// ExtractTables returns every table under the body in document order.
	ExtractTables(bodyHTML string) []ArticleTable
}
