// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gcov

import "sort"

// notesFile holds the fully-parsed contents of a .gcno notes file:
// shared version/stamp plus one funcGraph per FUNCTION record,
// in the order they were declared (which matters for deterministic
// iteration in ReadPair/ReadDir).
type notesFile struct {
	version string
	stamp   string
	order   []uint32
	funcs   map[uint32]*funcGraph
	notices []string
}

// readNotesFile parses a complete .gcno file at path.
func readNotesFile(path string) (*notesFile, error) {
	rr, err := openRecordReader(path, notesMagic, "", "")
	if err != nil {
		return nil, err
	}
	defer rr.close()

	nf := &notesFile{
		version: rr.version,
		stamp:   rr.stamp,
		funcs:   make(map[uint32]*funcGraph),
	}

	var cur *funcGraph
	for {
		rec, ok, err := rr.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		if !rec.isChild {
			if rec.tag == tagFunction {
				fg, err := readFunctionRecord(rec.payload, nf.version)
				if err != nil {
					return nil, err
				}
				nf.funcs[fg.ident] = fg
				nf.order = append(nf.order, fg.ident)
				cur = fg
				continue
			}
			if rec.tag == tagSummary1 || rec.tag == tagSummary2 {
				cur = nil
				continue
			}
			nf.notices = append(nf.notices, unknownTagNotice(path, rec.tag))
			cur = nil
			continue
		}

		if cur == nil {
			// Child record with no enclosing FUNCTION: malformed but
			// non-fatal, matching spec.md's "unknown tag" leniency.
			continue
		}
		switch rec.tag {
		case tagBasicBlocks:
			readBasicBlocksRecord(cur, rec.payload)
		case tagArcs:
			readArcsRecord(cur, rec.payload)
		case tagLines:
			readLinesRecord(cur, rec.payload)
		default:
			nf.notices = append(nf.notices, unknownTagNotice(path, rec.tag))
		}
	}

	for _, fg := range nf.funcs {
		sortBlockLines(fg)
	}

	return nf, nil
}

func readFunctionRecord(payload []byte, version string) (*funcGraph, error) {
	w := newWordReader(payload)
	ident, ok := w.readUint32()
	if !ok {
		return nil, &TruncatedRecordError{Tag: tagFunction}
	}
	checksum, ok := w.readUint32()
	if !ok {
		return nil, &TruncatedRecordError{Tag: tagFunction}
	}
	fg := &funcGraph{ident: ident, checksum: checksum}
	if version > checksumVersionThreshold {
		cs2, ok := w.readUint32()
		if !ok {
			return nil, &TruncatedRecordError{Tag: tagFunction}
		}
		fg.checksum2 = cs2
	}
	name, ok := w.readString()
	if !ok {
		return nil, &TruncatedRecordError{Tag: tagFunction}
	}
	src, ok := w.readString()
	if !ok {
		return nil, &TruncatedRecordError{Tag: tagFunction}
	}
	line, ok := w.readUint32()
	if !ok {
		return nil, &TruncatedRecordError{Tag: tagFunction}
	}
	fg.name = name
	fg.srcFile = src
	fg.declLine = line
	return fg, nil
}

func readBasicBlocksRecord(fg *funcGraph, payload []byte) {
	w := newWordReader(payload)
	n := 0
	for {
		if _, ok := w.readUint32(); !ok {
			break
		}
		n++
	}
	fg.blocks = make([]*block, n)
	for i := range fg.blocks {
		fg.blocks[i] = &block{}
	}
}

func readArcsRecord(fg *funcGraph, payload []byte) {
	w := newWordReader(payload)
	src, ok := w.readUint32()
	if !ok || int(src) >= len(fg.blocks) {
		return
	}
	b := fg.blocks[src]
	for {
		target, ok := w.readUint32()
		if !ok {
			break
		}
		flags, ok := w.readUint32()
		if !ok {
			break
		}
		a := arc{target: int(target), flags: uint64(flags)}
		if a.isComputed() {
			a.countKnown = false
		} else {
			a.count, a.countKnown = 0, true
		}
		b.out = append(b.out, a)
	}
}

func readLinesRecord(fg *funcGraph, payload []byte) {
	w := newWordReader(payload)
	bidx, ok := w.readUint32()
	if !ok || int(bidx) >= len(fg.blocks) {
		return
	}
	b := fg.blocks[bidx]
	filename := ""
	for {
		lineno, ok := w.readUint32()
		if !ok {
			break
		}
		if lineno == 0 {
			fname, ok := w.readString()
			if !ok {
				break
			}
			filename = fname
			continue
		}
		b.addLine(filename, lineno)
	}
}

func sortBlockLines(fg *funcGraph) {
	for _, b := range fg.blocks {
		for _, lines := range b.lines {
			sort.Slice(lines, func(i, j int) bool { return lines[i] < lines[j] })
		}
	}
}

func unknownTagNotice(path string, tag uint32) string {
	if path == "" {
		return "ignoring unknown tag"
	}
	return path + ": ignoring unknown tag " + hexTag(tag)
}

func hexTag(tag uint32) string {
	const hexDigits = "0123456789abcdef"
	b := make([]byte, 10)
	b[0], b[1] = '0', 'x'
	for i := 0; i < 8; i++ {
		shift := uint(28 - 4*i)
		b[2+i] = hexDigits[(tag>>shift)&0xf]
	}
	return string(b)
}
