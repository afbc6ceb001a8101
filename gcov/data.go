// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gcov

// mergeDataFile streams a .gcda data file, depositing runtime counters
// onto the non-computed arcs of the function graphs already built from
// the companion notes file. Counters are additive across repeated
// deposits so the same pair can be merged more than once (spec.md
// §4.3, §4.6).
func mergeDataFile(path string, nf *notesFile) error {
	rr, err := openRecordReader(path, dataMagic, nf.version, nf.stamp)
	if err != nil {
		return err
	}
	defer rr.close()

	var cur *funcGraph
	for {
		rec, ok, err := rr.next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		if !rec.isChild {
			if rec.tag == tagFunction {
				fg, err := readDataFunctionRecord(path, rec.payload, nf)
				if err != nil {
					return err
				}
				cur = fg
				continue
			}
			cur = nil
			continue
		}

		if cur == nil {
			continue
		}
		if rec.tag == tagCounters {
			if err := depositCounters(path, cur, rec.payload); err != nil {
				return err
			}
		}
	}
	return nil
}

// readDataFunctionRecord reads a data-file FUNCTION record header and
// returns the FunctionGraph it refers to. The data file repeats the
// per-function checksum(s) the notes file already carries; this
// reader consumes and discards them, since the notes file's copy is
// authoritative (spec.md does not ask for cross-checking them).
func readDataFunctionRecord(path string, payload []byte, nf *notesFile) (*funcGraph, error) {
	w := newWordReader(payload)
	ident, ok := w.readUint32()
	if !ok {
		return nil, &TruncatedRecordError{Path: path, Tag: tagFunction}
	}
	if _, ok := w.readUint32(); !ok { // checksum
		return nil, &TruncatedRecordError{Path: path, Tag: tagFunction}
	}

	switch {
	case nf.stamp == llvmStamp:
		if _, ok := w.readUint32(); !ok {
			return nil, &TruncatedRecordError{Path: path, Tag: tagFunction}
		}
		if _, ok := w.readString(); !ok {
			return nil, &TruncatedRecordError{Path: path, Tag: tagFunction}
		}
	case nf.version > checksumVersionThreshold:
		if _, ok := w.readUint32(); !ok {
			return nil, &TruncatedRecordError{Path: path, Tag: tagFunction}
		}
	}

	fg, found := nf.funcs[ident]
	if !found {
		return nil, &UnknownFunctionError{Path: path, Ident: ident}
	}
	return fg, nil
}

// depositCounters reads a COUNTERS record's (low, high) u32 pairs and
// adds them, in block-then-arc order, onto the function's non-computed
// arcs.
func depositCounters(path string, fg *funcGraph, payload []byte) error {
	w := newWordReader(payload)

	want := 0
	for _, b := range fg.blocks {
		for i := range b.out {
			if !b.out[i].isComputed() {
				want++
			}
		}
	}

	if w.len() != want*8 {
		return &CounterMismatchError{Path: path, FuncName: fg.name, Want: want * 2, Got: w.len() / 4}
	}

	for _, b := range fg.blocks {
		for i := range b.out {
			a := &b.out[i]
			if a.isComputed() {
				continue
			}
			lo, ok := w.readUint32()
			if !ok {
				return &CounterMismatchError{Path: path, FuncName: fg.name}
			}
			hi, ok := w.readUint32()
			if !ok {
				return &CounterMismatchError{Path: path, FuncName: fg.name}
			}
			delta := int64(uint64(hi)<<32 | uint64(lo))
			a.count += delta
			a.countKnown = true
		}
	}
	return nil
}
