// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gcov

import (
	"bytes"
	"encoding/binary"
)

// wordReader reads little-endian 32-bit words and GCC-style
// length-prefixed, NUL-padded strings out of a record payload that
// has already been sliced out of the enclosing record stream.
type wordReader struct {
	b []byte
}

func newWordReader(b []byte) *wordReader {
	return &wordReader{b: b}
}

func (r *wordReader) len() int { return len(r.b) }

func (r *wordReader) readUint32() (uint32, bool) {
	if len(r.b) < 4 {
		return 0, false
	}
	v := binary.LittleEndian.Uint32(r.b[:4])
	r.b = r.b[4:]
	return v, true
}

// readString reads a GCC-format string: a word count (in 4-byte
// units), followed by that many words of NUL-padded ASCII, with
// trailing NULs stripped.
func (r *wordReader) readString() (string, bool) {
	wordCount, ok := r.readUint32()
	if !ok {
		return "", false
	}
	n := int(wordCount) * 4
	if n > len(r.b) {
		return "", false
	}
	raw := r.b[:n]
	r.b = r.b[n:]
	return string(bytes.TrimRight(raw, "\x00")), true
}
