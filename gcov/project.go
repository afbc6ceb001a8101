// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gcov

import (
	"path/filepath"

	"github.com/covflow/ccov/model"
)

// SymlinkPolicy controls how a source path recorded in a notes file
// is canonicalized before it becomes a FileTable key.
type SymlinkPolicy int

const (
	// FollowSymlinks resolves symlinks in the path (filepath.EvalSymlinks).
	FollowSymlinks SymlinkPolicy = iota
	// PreserveSymlinks only makes the path absolute; symlink components
	// are left as written.
	PreserveSymlinks
)

// Config carries the path-resolution parameters the projector needs,
// replacing the module-level base-directory default the Design Notes
// call out as brittle (spec.md §9).
type Config struct {
	BaseDir       string
	SymlinkPolicy SymlinkPolicy
}

func (c Config) normalize(path string) string {
	if path == "" {
		return path
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.BaseDir, path)
	}
	if c.SymlinkPolicy == FollowSymlinks {
		if resolved, err := filepath.EvalSymlinks(path); err == nil {
			path = resolved
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// project walks every solved function in nf and deposits its function,
// line, and branch hits into ft (spec.md §4.5).
func project(nf *notesFile, cfg Config, ft model.FileTable) {
	for _, ident := range nf.order {
		fg := nf.funcs[ident]
		if len(fg.blocks) < 2 {
			continue
		}
		projectFunc(fg, cfg, ft)
	}
}

func projectFunc(fg *funcGraph, cfg Config, ft model.FileTable) {
	entry := fg.blocks[0]
	funcHit := sumKnownOut(entry)
	declFile := cfg.normalize(fg.srcFile)
	deposit(ft, declFile).SetFunction(fg.name, fg.declLine, funcHit)

	for bi, b := range fg.blocks {
		if bi == 0 || bi == 1 {
			continue
		}
		for file, lines := range b.lines {
			fc := deposit(ft, cfg.normalize(file))
			for _, line := range lines {
				fc.AddLine(line, b.count)
			}
		}
	}

	for bi, b := range fg.blocks {
		if b.isCallReturn {
			continue
		}
		nonFake := countNonFake(b)
		if nonFake < 2 {
			continue
		}
		file, line, ok := lastLine(b)
		if !ok {
			continue
		}
		fc := deposit(ft, cfg.normalize(file))
		ordinal := uint32(0)
		for _, a := range b.out {
			if a.isFake() || a.isCallNonReturn() || a.isUnconditional() {
				continue
			}
			key := model.BranchKey{Line: line, Group: uint32(bi), Ordinal: ordinal}
			fc.AddBranch(key, a.count)
			ordinal++
		}
	}
}

func deposit(ft model.FileTable, path string) *model.FileCoverage {
	fc, ok := ft[path]
	if !ok {
		fc = model.NewFileCoverage()
		ft[path] = fc
	}
	return fc
}

func sumKnownOut(b *block) int64 {
	var sum int64
	for _, a := range b.out {
		sum += a.count
	}
	return sum
}

func countNonFake(b *block) int {
	n := 0
	for _, a := range b.out {
		if !a.isFake() {
			n++
		}
	}
	return n
}

// lastLine returns the last (file, line) pair recorded in b's line
// table, used as a branch site location (spec.md §4.5). Multiple
// files are visited in map order; a block's line table is expected to
// belong to a single file in practice.
func lastLine(b *block) (string, uint32, bool) {
	var file string
	var line uint32
	found := false
	for f, lines := range b.lines {
		if len(lines) == 0 {
			continue
		}
		file = f
		line = lines[len(lines)-1]
		found = true
	}
	return file, line, found
}
