//go:build unix

// Package mmap loads an archive buffer from disk, preferring a
// memory-mapped read-only view so that large archives can be opened
// without copying their contents into the Go heap. Adapted from the
// teacher's internal/mmfile package, built on golang.org/x/sys/unix
// instead of the raw syscall package so this module's mmap and msync
// calls share one dependency surface (the teacher itself reaches for
// golang.org/x/sys/unix for Msync in hive/dirty, even though its mmfile
// package predates that choice and uses syscall directly).
package mmap

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Load maps the file at path into memory read-only and returns its
// contents along with a release function that must be called exactly
// once when the caller is done with the returned slice.
func Load(path string) (data []byte, release func() error, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := info.Size()
	if size == 0 {
		return []byte{}, func() error { return nil }, nil
	}
	if size > int64(^uint(0)>>1) {
		return nil, nil, fmt.Errorf("mmap: file too large to map (%d bytes)", size)
	}

	data, err = unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() error {
		if data == nil {
			return nil
		}
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			return nil
		}
		return err
	}
	return data, cleanup, nil
}
