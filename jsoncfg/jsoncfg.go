// Package jsoncfg provides helpers for working with JSON configuration files.
package jsoncfg

import (
	"encoding/json"
	"fmt"
	"os"
)

// Open opens the JSON file at path and decodes it into v.
// Unknown fields in the file are treated as errors.
func Open(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	d := json.NewDecoder(f)
	d.DisallowUnknownFields()
	if err = d.Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// Save encodes v as indented JSON and writes it to path.
func Save(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}
