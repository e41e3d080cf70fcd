package build

import (
	"os"

	"lukechampine.com/blake3"
)

// WriteFileIfChanged writes data to path unless the file already has the
// same content, so file timestamps and downstream diffs only move on real
// changes. The write goes through a temporary file in the same directory
// and a rename, never leaving a half-written file behind. It returns
// whether the file was written.
func WriteFileIfChanged(path string, data []byte) (bool, error) {
	if existing, err := os.ReadFile(path); err == nil &&
		len(existing) == len(data) && blake3.Sum256(existing) == blake3.Sum256(data) {
		return false, nil
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return false, err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return false, err
	}
	return true, nil
}
