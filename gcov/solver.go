// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gcov

import (
	"fmt"
	"strings"
)

// augment builds predecessor lists and synthesizes the
// UNCONDITIONAL/CALL_NON_RETURN flags described in spec.md §4.4. It
// must run once per function, after notes+data parsing and before
// solve.
func augment(fg *funcGraph) {
	for bi, b := range fg.blocks {
		for oi := range b.out {
			a := &b.out[oi]
			if a.isFake() && bi != 0 {
				a.flags |= ArcCallNonReturn
			}
			target := fg.blocks[a.target]
			target.in = append(target.in, arcRef{block: bi, ordinal: oi})
		}
	}

	for bi, b := range fg.blocks {
		nonFake := -1
		nonFakeCount := 0
		hasFake := false
		for oi := range b.out {
			if b.out[oi].isFake() {
				hasFake = true
				continue
			}
			nonFakeCount++
			nonFake = oi
		}
		if nonFakeCount == 1 {
			b.out[nonFake].flags |= ArcUnconditional
			if hasFake && bi != 0 && b.out[nonFake].isFallthrough() {
				target := fg.blocks[b.out[nonFake].target]
				if len(target.in) == 1 {
					target.isCallReturn = true
				}
			}
		}
	}
}

// solve runs the Kirchhoff flow-conservation solver described in
// spec.md §4.4, assigning a count to every arc and block. It returns
// UnsolvableGraphError if a pass makes no progress while unsolved
// items remain, and NegativeCountError if balance arithmetic produces
// a negative count.
func solve(fg *funcGraph) error {
	unsolvedArcs := make(map[arcRef]bool)
	unsolvedBlocks := make(map[int]bool)

	for bi, b := range fg.blocks {
		for oi := range b.out {
			if !b.out[oi].countKnown {
				unsolvedArcs[arcRef{block: bi, ordinal: oi}] = true
			}
		}
		if bi != 0 && bi != 1 {
			unsolvedBlocks[bi] = true
		}
	}
	// The entry and exit blocks are boundary nodes: their counts are
	// derived from the opposite side's sum, never assigned directly
	// until that sum is fully known.
	unsolvedBlocks[0] = true
	unsolvedBlocks[1] = true

	for len(unsolvedArcs) > 0 || len(unsolvedBlocks) > 0 {
		progress := false

		for ref := range unsolvedArcs {
			src := fg.blocks[ref.block]
			a := &src.out[ref.ordinal]

			if src.countKnown {
				if sum, allKnown := sumOtherOut(src, ref.ordinal); allKnown {
					if err := assignArc(fg, a, src.count-sum); err != nil {
						return err
					}
					delete(unsolvedArcs, ref)
					progress = true
					continue
				}
			}

			target := fg.blocks[a.target]
			if target.countKnown {
				if sum, allKnown := sumOtherIn(fg, target, ref); allKnown {
					if err := assignArc(fg, a, target.count-sum); err != nil {
						return err
					}
					delete(unsolvedArcs, ref)
					progress = true
					continue
				}
			}
		}

		for bi := range unsolvedBlocks {
			b := fg.blocks[bi]
			if b.countKnown {
				delete(unsolvedBlocks, bi)
				progress = true
				continue
			}

			// The entry block's in-sum is defined as its out-sum, and
			// the exit block's out-sum is defined as its in-sum
			// (spec.md §4.4): neither really has a counted opposite
			// side, so the block's count is derived from whichever
			// side it does have.
			if bi == 0 {
				if sum, ok := sumOut(b); ok {
					if err := assignBlock(fg, bi, sum); err != nil {
						return err
					}
					delete(unsolvedBlocks, bi)
					progress = true
				}
				continue
			}
			if bi == 1 {
				if sum, ok := sumIn(fg, b); ok {
					if err := assignBlock(fg, bi, sum); err != nil {
						return err
					}
					delete(unsolvedBlocks, bi)
					progress = true
				}
				continue
			}

			if sum, ok := sumIn(fg, b); ok {
				if err := assignBlock(fg, bi, sum); err != nil {
					return err
				}
				delete(unsolvedBlocks, bi)
				progress = true
				continue
			}
			if sum, ok := sumOut(b); ok {
				if err := assignBlock(fg, bi, sum); err != nil {
					return err
				}
				delete(unsolvedBlocks, bi)
				progress = true
			}
		}

		if !progress {
			return &UnsolvableGraphError{
				FuncName:     fg.name,
				Dump:         dumpGraph(fg, unsolvedArcs, unsolvedBlocks),
				UnsolvedArcs: len(unsolvedArcs),
				UnsolvedBBs:  len(unsolvedBlocks),
			}
		}
	}
	return nil
}

func assignArc(fg *funcGraph, a *arc, count int64) error {
	if count < 0 {
		return &NegativeCountError{FuncName: fg.name, Value: count}
	}
	a.count = count
	a.countKnown = true
	return nil
}

func assignBlock(fg *funcGraph, idx int, count int64) error {
	if count < 0 {
		return &NegativeCountError{FuncName: fg.name, Block: idx, Value: count}
	}
	b := fg.blocks[idx]
	b.count = count
	b.countKnown = true
	return nil
}

// sumOtherOut sums every outgoing arc of b except skip, reporting
// ok=false if any of them is still unknown.
func sumOtherOut(b *block, skip int) (int64, bool) {
	var sum int64
	for i := range b.out {
		if i == skip {
			continue
		}
		if !b.out[i].countKnown {
			return 0, false
		}
		sum += b.out[i].count
	}
	return sum, true
}

// sumOtherIn sums every incoming arc of b except skip, reporting
// ok=false if any of them is still unknown.
func sumOtherIn(fg *funcGraph, b *block, skip arcRef) (int64, bool) {
	var sum int64
	for _, ref := range b.in {
		if ref == skip {
			continue
		}
		a := fg.blocks[ref.block].out[ref.ordinal]
		if !a.countKnown {
			return 0, false
		}
		sum += a.count
	}
	return sum, true
}

func sumIn(fg *funcGraph, b *block) (int64, bool) {
	var sum int64
	for _, ref := range b.in {
		a := fg.blocks[ref.block].out[ref.ordinal]
		if !a.countKnown {
			return 0, false
		}
		sum += a.count
	}
	return sum, true
}

// dumpGraph renders the blocks and arcs still unsolved when a pass
// made no progress, for attaching to UnsolvableGraphError (spec.md
// §4.4, "optionally dumping the graph for diagnosis").
func dumpGraph(fg *funcGraph, unsolvedArcs map[arcRef]bool, unsolvedBlocks map[int]bool) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "function %q: %d blocks\n", fg.name, len(fg.blocks))
	for bi, b := range fg.blocks {
		status := "known"
		if unsolvedBlocks[bi] {
			status = "unsolved"
		}
		fmt.Fprintf(&buf, "  bb%d count=%d (%s)\n", bi, b.count, status)
		for oi, a := range b.out {
			astatus := "known"
			if unsolvedArcs[arcRef{block: bi, ordinal: oi}] {
				astatus = "unsolved"
			}
			fmt.Fprintf(&buf, "    -> bb%d count=%d flags=%#x (%s)\n", a.target, a.count, a.flags, astatus)
		}
	}
	return buf.String()
}

func sumOut(b *block) (int64, bool) {
	var sum int64
	for i := range b.out {
		if !b.out[i].countKnown {
			return 0, false
		}
		sum += b.out[i].count
	}
	return sum, true
}
