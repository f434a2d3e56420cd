package mock

import (
	"context"

	"github.com/fwojciec/pressdoc"
)

var _ pressdoc.ObjectStore = (*ObjectStore)(nil)

// ObjectStore is a mock implementation of pressdoc.ObjectStore.
type ObjectStore struct {
	UploadFn func(ctx context.Context, path string) (string, error)
}

func (s *ObjectStore) Upload(ctx context.Context, path string) (string, error) {
	return s.UploadFn(ctx, path)
}

var _ pressdoc.TableNarrator = (*TableNarrator)(nil)

// TableNarrator is a mock implementation of pressdoc.TableNarrator.
type TableNarrator struct {
	NarrateFn func(ctx context.Context, table pressdoc.ParsedTable) ([]string, error)
}

func (n *TableNarrator) Narrate(ctx context.Context, table pressdoc.ParsedTable) ([]string, error) {
	return n.NarrateFn(ctx, table)
}
