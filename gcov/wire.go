// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gcov

// This file describes the on-disk layout of a GCC-family notes
// (.gcno) / data (.gcda) file pair, as emitted by an instrumentation
// runtime compiled with -fprofile-arcs -ftest-coverage.
//
// --header----------
//  | magic:   4 bytes, little-endian u32
//  | version: 4 bytes, big-endian ASCII
//  | stamp:   4 bytes, big-endian ASCII
//  --records----------
//  <record> ...
//
// Each record is:
//  | tag:    4 bytes, little-endian u32
//  | length: 4 bytes, little-endian u32 (length of payload, in 32-bit words)
//  | payload: length*4 bytes
//
// A record is a "child" of the most recently seen top-level record if
// the middle octet of its tag (mask 0x00ff0000) is nonzero.

// Magic values for the two halves of a notes/data pair.
const (
	notesMagic uint32 = 0x67636e6f // "gcno"
	dataMagic  uint32 = 0x67636461 // "gcda"
)

// Record tags. Top-level FUNCTION records own a run of child records
// (BASIC_BLOCKS, ARCS, LINES in a notes file; COUNTERS in a data
// file); the two summary tags are top-level but carry no children we
// interpret.
const (
	tagFunction    uint32 = 0x01000000
	tagBasicBlocks uint32 = 0x01410000
	tagArcs        uint32 = 0x01430000
	tagLines       uint32 = 0x01450000
	tagCounters    uint32 = 0x01a10000
	tagSummary1    uint32 = 0xa1000000
	tagSummary2    uint32 = 0xa3000000
)

const tagChildMask uint32 = 0x00ff0000

func isChildTag(tag uint32) bool {
	return tag&tagChildMask != 0
}

// Arc flags, as encoded on the wire (low bits) and synthesized by the
// solver during graph construction (high bits, placed above 31 so
// they can never collide with a flag GCC itself might someday define).
const (
	ArcComputedCount uint32 = 1 << 0
	ArcFakeArc       uint32 = 1 << 1
	ArcFallthrough   uint32 = 1 << 2
)

const (
	ArcUnconditional uint64 = 1 << 32
	ArcCallNonReturn uint64 = 1 << 33
)

// llvmStamp is the stamp value that signals the LLVM-specific
// zero-padding quirk in data-file FUNCTION records (spec.md §4.3).
const llvmStamp = "LLVM"

// checksumVersionThreshold is the version string GCC started emitting
// a second per-function checksum and the extra data-file padding
// word at. The comparison is lexicographic on the 4-character ASCII
// version string, exactly as the original reader does it.
const checksumVersionThreshold = "407 "
