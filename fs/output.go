package fs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/pressdoc"
)

// Ensure OutputStore implements pressdoc.OutputStore at compile time.
var _ pressdoc.OutputStore = (*OutputStore)(nil)

// BackupLayout is the timestamp suffix of backup files.
const BackupLayout = "20060102_150405"

// OutputStore keeps crawl output in a single JSON file. Writes go to a
// temporary file in the same directory which then replaces the target.
type OutputStore struct {
	path string
}

// NewOutputStore creates an OutputStore for the file at path.
func NewOutputStore(path string) *OutputStore {
	return &OutputStore{path: path}
}

// Path returns the output file path.
func (s *OutputStore) Path() string {
	return s.path
}

// Load reads the stored output.
// Returns ENOTFOUND if the file does not exist.
func (s *OutputStore) Load() (*pressdoc.Output, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, pressdoc.Errorf(pressdoc.ENOTFOUND, "output %s not found", s.path)
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadOutput(f)
}

// ReadOutput decodes crawl output JSON.
func ReadOutput(r io.Reader) (*pressdoc.Output, error) {
	var out pressdoc.Output
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, pressdoc.Errorf(pressdoc.EINVALID, "invalid output: %v", err)
	}
	if out.Articles == nil {
		out.Articles = []*pressdoc.Article{}
	}
	return &out, nil
}

// Backup copies the stored output to <path>.backup_YYYYMMDD_HHMMSS.
// Returns an empty path if there is nothing to back up.
func (s *OutputStore) Backup(t time.Time) (string, error) {
	src, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	} else if err != nil {
		return "", err
	}
	defer src.Close()

	backup := s.path + ".backup_" + t.Format(BackupLayout)
	dst, err := os.Create(backup)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("copying %s: %w", s.path, err)
	}
	if err := dst.Close(); err != nil {
		return "", err
	}
	return backup, nil
}

// Write replaces the stored output.
func (s *OutputStore) Write(out *pressdoc.Output) error {
	data, err := MarshalOutput(out)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// MarshalOutput encodes output as indented JSON. Markup characters in
// table HTML are written as is.
func MarshalOutput(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
