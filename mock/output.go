package mock

import (
	"time"

	"github.com/fwojciec/pressdoc"
)

var _ pressdoc.OutputStore = (*OutputStore)(nil)

// OutputStore is a mock implementation of pressdoc.OutputStore.
type OutputStore struct {
	LoadFn   func() (*pressdoc.Output, error)
	BackupFn func(t time.Time) (string, error)
	WriteFn  func(out *pressdoc.Output) error
}

func (s *OutputStore) Load() (*pressdoc.Output, error) {
	return s.LoadFn()
}

func (s *OutputStore) Backup(t time.Time) (string, error) {
	return s.BackupFn(t)
}

func (s *OutputStore) Write(out *pressdoc.Output) error {
	return s.WriteFn(out)
}
