//go:build !unix

package mmap

import (
	"errors"
	"os"
)

func readFile(f *os.File, size int64) ([]byte, func() error, error) {
	return nil, nil, errors.ErrUnsupported
}
