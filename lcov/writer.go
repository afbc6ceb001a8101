// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lcov

import (
	"fmt"
	"io"
	"sort"

	"github.com/covflow/ccov/model"
)

// Write serializes every test bucket and file in store as LCOV text
// (spec.md §4.7). The model does not track the original FN/FNDA
// insertion order (FileCoverage.Functions is a map), so functions are
// emitted sorted by (declaration line, name) instead — a stable,
// deterministic substitute that satisfies the round-trip property of
// spec.md §8 without resurrecting an ordering the reader never kept.
func Write(w io.Writer, store *model.CoverageStore) error {
	for _, test := range store.TestNames() {
		ft := store.PerTest(test)
		paths := make([]string, 0, len(ft))
		for path := range ft {
			paths = append(paths, path)
		}
		sort.Strings(paths)

		for _, path := range paths {
			if err := writeFile(w, test, path, ft[path]); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeFile(w io.Writer, test, path string, fc *model.FileCoverage) error {
	if _, err := fmt.Fprintf(w, "TN:%s\n", test); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "SF:%s\n", path); err != nil {
		return err
	}

	names := make([]string, 0, len(fc.Functions))
	for name := range fc.Functions {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		fi, fj := fc.Functions[names[i]], fc.Functions[names[j]]
		if fi.Line != fj.Line {
			return fi.Line < fj.Line
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		fr := fc.Functions[name]
		if _, err := fmt.Fprintf(w, "FN:%d,%s\n", fr.Line, name); err != nil {
			return err
		}
	}
	for _, name := range names {
		fr := fc.Functions[name]
		if _, err := fmt.Fprintf(w, "FNDA:%d,%s\n", fr.Count, name); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "FNF:%d\nFNH:%d\n", len(names), fc.FunctionsHit()); err != nil {
		return err
	}

	lines := make([]uint32, 0, len(fc.Lines))
	for line := range fc.Lines {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i] < lines[j] })
	for _, line := range lines {
		if _, err := fmt.Fprintf(w, "DA:%d,%d\n", line, fc.Lines[line]); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "LH:%d\nLF:%d\n", fc.LinesHit(), len(lines)); err != nil {
		return err
	}

	if err := writeBranches(w, fc); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, "end_of_record")
	return err
}

type branchGroup struct {
	line, group uint32
}

func writeBranches(w io.Writer, fc *model.FileCoverage) error {
	keys := make([]model.BranchKey, 0, len(fc.Branches))
	for k := range fc.Branches {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		return a.Ordinal < b.Ordinal
	})

	groupTotal := make(map[branchGroup]int64)
	for k, count := range fc.Branches {
		groupTotal[branchGroup{k.Line, k.Group}] += count
	}

	for _, k := range keys {
		total := groupTotal[branchGroup{k.Line, k.Group}]
		if total == 0 {
			if _, err := fmt.Fprintf(w, "BRDA:%d,%d,%d,-\n", k.Line, k.Group, k.Ordinal); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "BRDA:%d,%d,%d,%d\n", k.Line, k.Group, k.Ordinal, fc.Branches[k]); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "BRH:%d\nBRF:%d\n", fc.BranchesHit(), len(keys))
	return err
}
