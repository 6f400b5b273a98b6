//go:build windows

package mmap

import "os"

// Load reads the whole file into memory on platforms where this package
// does not implement a native memory-mapped path.
func Load(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	return data, func() error { return nil }, nil
}
