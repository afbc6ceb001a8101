// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gcov

import (
	"encoding/binary"
	"io"

	"github.com/covflow/ccov/gcov/bio"
)

// record is one tagged record read off a notes or data file stream,
// with its payload already sliced out. Semantic parsing (building
// function graphs, depositing counters) is the caller's job; record
// reading only knows about the tag/length/payload envelope and the
// one-level parent/child hierarchy.
type record struct {
	tag     uint32
	payload []byte
	isChild bool
}

// recordReader streams records out of a notes or data file, having
// already validated and recorded the shared header fields.
type recordReader struct {
	path    string
	r       *bio.Reader
	size    int64
	version string
	stamp   string
	magic   uint32

	// notices is not filled in by next; the non-fatal "unknown tag"
	// notices of a notes file are collected by readNotesFile on
	// notesFile.notices instead.
	notices []string
}

// openRecordReader opens path, validates its header against
// wantMagic, and returns a recordReader positioned at the first
// record. If wantVersion/wantStamp are non-empty, the file's header
// must match them exactly (used when reading a data file against its
// companion notes file's recorded version/stamp).
func openRecordReader(path string, wantMagic uint32, wantVersion, wantStamp string) (*recordReader, error) {
	br, err := bio.Open(path)
	if err != nil {
		return nil, err
	}
	size, err := br.Size()
	if err != nil {
		br.Close()
		return nil, err
	}

	var hdr [12]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		br.Close()
		return nil, &TruncatedRecordError{Path: path}
	}
	magic := binary.LittleEndian.Uint32(hdr[0:4])
	if magic != wantMagic {
		br.Close()
		return nil, &BadMagicError{Path: path, Found: magic, Expected: wantMagic}
	}
	version := string(hdr[4:8])
	stamp := string(hdr[8:12])

	if wantVersion != "" && version != wantVersion {
		br.Close()
		return nil, &VersionMismatchError{Path: path, Found: version, Expected: wantVersion}
	}
	if wantStamp != "" && stamp != wantStamp {
		br.Close()
		return nil, &StampMismatchError{Path: path, Found: stamp, Expected: wantStamp}
	}

	return &recordReader{
		path:    path,
		r:       br,
		size:    size,
		version: version,
		stamp:   stamp,
		magic:   magic,
	}, nil
}

func (rr *recordReader) close() error {
	return rr.r.Close()
}

// next reads the next record from the stream. It reports ok=false at
// a clean end of file. A trailing zero tag, or a final record
// truncated to fewer than 8 header bytes (the data-file extra-NUL
// quirk described in spec.md §4.1/§6), is treated as a clean end of
// file rather than an error.
func (rr *recordReader) next() (rec record, ok bool, err error) {
	var hdr [8]byte
	n, rerr := io.ReadFull(rr.r, hdr[:])
	if rerr == io.EOF || (rerr == io.ErrUnexpectedEOF && n == 0) {
		return record{}, false, nil
	}
	if rerr == io.ErrUnexpectedEOF {
		// Truncated trailing byte(s): tolerate silently.
		return record{}, false, nil
	}
	if rerr != nil {
		return record{}, false, rerr
	}

	tag := binary.LittleEndian.Uint32(hdr[0:4])
	length := binary.LittleEndian.Uint32(hdr[4:8])
	if tag == 0 {
		return record{}, false, nil
	}

	payload := make([]byte, int(length)*4)
	if len(payload) > 0 {
		if _, rerr := io.ReadFull(rr.r, payload); rerr != nil {
			return record{}, false, &TruncatedRecordError{Path: rr.path, Tag: tag}
		}
	}

	return record{tag: tag, payload: payload, isChild: isChildTag(tag)}, true, nil
}
