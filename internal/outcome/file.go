package outcome

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// SaveFile writes o as the only record of the file at path, creating parent
// directories as needed.
func SaveFile(path string, o Outcome) (err error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "mkdir %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "outcome: create file")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "outcome: close file")
		}
	}()
	w := bufio.NewWriter(f)
	if err := Write(w, o); err != nil {
		return err
	}
	return errors.Wrap(w.Flush(), "outcome: flush")
}

// LoadFile reads the record stored at path.
func LoadFile(path string) (Outcome, error) {
	f, err := os.Open(path)
	if err != nil {
		return Outcome{}, errors.Wrap(err, "outcome: open file")
	}
	defer f.Close()
	return Read(bufio.NewReader(f))
}
