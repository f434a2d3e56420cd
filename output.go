package pressdoc

import "time"

// CrawledAtLayout is the timestamp layout of Output.CrawledAt.
const CrawledAtLayout = "2006-01-02 15:04:05"

// Output is the document a crawl writes.
type Output struct {
	CrawledAt  string     `json:"crawled_at"`
	TotalCount int        `json:"total_count"`
	Articles   []*Article `json:"articles"`
}

// NewOutput returns an Output stamped with t.
func NewOutput(t time.Time, articles []*Article) *Output {
	if articles == nil {
		articles = []*Article{}
	}
	return &Output{
		CrawledAt:  t.Format(CrawledAtLayout),
		TotalCount: len(articles),
		Articles:   articles,
	}
}

// OutputStore persists crawl output.
type OutputStore interface {
	// Load returns the stored output.
	// Returns ENOTFOUND if nothing has been stored yet.
	Load() (*Output, error)

	// Backup copies the stored output aside and returns the copy's path.
	// Returns an empty path if there is nothing to back up.
	Backup(t time.Time) (string, error)

	// Write atomically replaces the stored output.
	Write(out *Output) error
}
