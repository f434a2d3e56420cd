package pressdoc

import "context"

// TableNarrator rewrites a table as a list of descriptive sentences that
// pair each value with its column name.
type TableNarrator interface {
	Narrate(ctx context.Context, table ParsedTable) ([]string, error)
}
