// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model holds the persistent coverage data model: a
// CoverageStore partitions coverage by test name into per-file
// records of line, function, and branch hit counts. Nothing in this
// package knows about the binary notes/data format or the LCOV text
// format; gcov and lcov both produce model.FileTable values, and the
// store only knows how to hold and merge them.
package model

// FuncRecord is one function's declaration line and accumulated hit
// count. Line is last-wins on merge (matching the LCOV FN instruction,
// spec.md §4.7); Count is additive.
type FuncRecord struct {
	Line  uint32
	Count int64
}

// BranchKey identifies one outcome of one branch point: Line is the
// source line of the branch site, Group distinguishes multiple branch
// points that share a line (or, for binary input, is the originating
// block index), and Ordinal is the outcome index within the group.
type BranchKey struct {
	Line    uint32
	Group   uint32
	Ordinal uint32
}

// FileCoverage holds every coverage fact known about a single source
// file within a single test bucket. All three maps are additive under
// merge except FuncRecord.Line, which is last-wins.
type FileCoverage struct {
	Lines     map[uint32]int64
	Functions map[string]*FuncRecord
	Branches  map[BranchKey]int64
}

// NewFileCoverage returns an empty, ready-to-use FileCoverage.
func NewFileCoverage() *FileCoverage {
	return &FileCoverage{
		Lines:     make(map[uint32]int64),
		Functions: make(map[string]*FuncRecord),
		Branches:  make(map[BranchKey]int64),
	}
}

// AddLine adds count to the hit count recorded for line.
func (fc *FileCoverage) AddLine(line uint32, count int64) {
	fc.Lines[line] += count
}

// SetFunction records name's declaration line (last-wins) and adds
// count to its accumulated hit count.
func (fc *FileCoverage) SetFunction(name string, line uint32, count int64) {
	fr, ok := fc.Functions[name]
	if !ok {
		fr = &FuncRecord{}
		fc.Functions[name] = fr
	}
	fr.Line = line
	fr.Count += count
}

// AddBranch adds count to the hit count recorded for key.
func (fc *FileCoverage) AddBranch(key BranchKey, count int64) {
	fc.Branches[key] += count
}

// LinesHit returns the number of instrumented lines with a nonzero
// hit count.
func (fc *FileCoverage) LinesHit() int {
	n := 0
	for _, c := range fc.Lines {
		if c != 0 {
			n++
		}
	}
	return n
}

// FunctionsHit returns the number of functions with a nonzero hit count.
func (fc *FileCoverage) FunctionsHit() int {
	n := 0
	for _, fr := range fc.Functions {
		if fr.Count != 0 {
			n++
		}
	}
	return n
}

// BranchesHit returns the number of branch outcomes with a nonzero
// hit count.
func (fc *FileCoverage) BranchesHit() int {
	n := 0
	for _, c := range fc.Branches {
		if c != 0 {
			n++
		}
	}
	return n
}

// FileTable maps a normalized source file path to its coverage.
type FileTable map[string]*FileCoverage

// file returns the FileCoverage for path, creating it if absent.
func (ft FileTable) file(path string) *FileCoverage {
	fc, ok := ft[path]
	if !ok {
		fc = NewFileCoverage()
		ft[path] = fc
	}
	return fc
}
