// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bio implements a small buffered file reader used when
// opening GCC notes and data files for sequential reading.
package bio

import (
	"bufio"
	"os"
)

// Reader implements a buffered io.Reader over an open file.
type Reader struct {
	f *os.File
	*bufio.Reader
}

// Open returns a Reader for the file named name.
func Open(name string) (*Reader, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return NewReader(f), nil
}

// NewReader returns a Reader from an open file.
func NewReader(f *os.File) *Reader {
	return &Reader{f: f, Reader: bufio.NewReader(f)}
}

func (r *Reader) Close() error {
	return r.f.Close()
}

// Size returns the size in bytes of the underlying file.
func (r *Reader) Size() (int64, error) {
	fi, err := r.f.Stat()
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}
