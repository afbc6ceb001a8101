// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gcov

// funcGraph is the transient, per-function control-flow graph built
// by the notes graph builder, filled in by the data counter merger,
// mutated in place by the flow solver, and finally consumed (and
// discarded) by the projector. Only the projector's output survives
// into the persistent model.CoverageStore.
//
// Block 0 is always the function's entry block; block 1 is always its
// exit block (spec.md §3).
type funcGraph struct {
	ident     uint32
	checksum  uint32
	checksum2 uint32 // only present for version > "407 "
	name      string
	srcFile   string
	declLine  uint32

	blocks []*block
}

// block is one basic block of a funcGraph. Per Design Notes §9, arcs
// are stored in a flat per-block slice and addressed by (block index,
// ordinal) rather than by pointer, so the solver can mutate counts
// through indices without aliasing.
type block struct {
	// lines maps source filename to an ascending list of line numbers
	// attributed to this block (spec.md §3: the block's source-line
	// table).
	lines map[string][]uint32

	out []arc // outgoing arcs, in wire order (never re-sorted)
	in  []arcRef

	count      int64
	countKnown bool

	// isCallReturn marks a block that is the target of the sole
	// non-fake, fallthrough arc of a non-entry block that also has a
	// fake (call/exception) arc, and that has exactly one predecessor;
	// such blocks are excluded from branch enumeration (spec.md §4.4,
	// and the original_source call-return behavior carried forward
	// per SPEC_FULL.md §13).
	isCallReturn bool
}

// arc is a directed control-flow edge. flags carries both the
// wire-format bits (ArcComputedCount, ArcFakeArc, ArcFallthrough) and
// the two bits synthesized during graph augmentation
// (ArcUnconditional, ArcCallNonReturn).
type arc struct {
	target     int
	flags      uint64
	count      int64
	countKnown bool
}

// arcRef addresses a single outgoing arc of a block by (block index,
// ordinal within that block's out slice), used for predecessor lists
// so that mutating an arc's count never requires a second copy to
// stay in sync.
type arcRef struct {
	block   int
	ordinal int
}

func (a arc) isComputed() bool      { return a.flags&uint64(ArcComputedCount) != 0 }
func (a arc) isFake() bool          { return a.flags&uint64(ArcFakeArc) != 0 }
func (a arc) isFallthrough() bool   { return a.flags&uint64(ArcFallthrough) != 0 }
func (a arc) isUnconditional() bool { return a.flags&ArcUnconditional != 0 }
func (a arc) isCallNonReturn() bool { return a.flags&ArcCallNonReturn != 0 }

// addLine records that line is attributed to file within this block.
// Callers are responsible for the final per-file sort; this just
// appends (matching the Python original's "append then sort once" shape).
func (b *block) addLine(file string, line uint32) {
	if b.lines == nil {
		b.lines = make(map[string][]uint32)
	}
	b.lines[file] = append(b.lines[file], line)
}
