// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "sort"

// CoverageStore partitions coverage data by test name. The empty
// string is a valid test name (the default bucket for inputs that
// carry no test name of their own, e.g. binary notes+data pairs
// ingested without an explicit name).
type CoverageStore struct {
	tests map[string]FileTable
}

// NewStore returns an empty CoverageStore.
func NewStore() *CoverageStore {
	return &CoverageStore{tests: make(map[string]FileTable)}
}

// Test returns the FileTable for the named test bucket, creating it
// if this is the first time it has been seen.
func (s *CoverageStore) Test(name string) FileTable {
	ft, ok := s.tests[name]
	if !ok {
		ft = make(FileTable)
		s.tests[name] = ft
	}
	return ft
}

// TestNames returns the store's test bucket names in sorted order.
func (s *CoverageStore) TestNames() []string {
	names := make([]string, 0, len(s.tests))
	for name := range s.tests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// File returns the FileCoverage for path within the named test
// bucket, creating both the bucket and the file record if needed.
// This is the entry point both the gcov projector and the lcov reader
// use to deposit facts into the store.
func (s *CoverageStore) File(test, path string) *FileCoverage {
	return s.Test(test).file(path)
}

// Flat merges every test bucket's FileTable additively into a single,
// freshly constructed FileTable (spec.md §4.6: "union of keys,
// element-wise addition"). The result shares no state with the store.
func (s *CoverageStore) Flat() FileTable {
	out := make(FileTable)
	for _, name := range s.TestNames() {
		MergeInto(out, s.tests[name])
	}
	return out
}

// PerTest returns the FileTable for a single named test bucket. The
// returned table is the store's own (not a copy); callers that need
// an independently owned table should pass it through MergeInto into
// a fresh FileTable.
func (s *CoverageStore) PerTest(name string) FileTable {
	return s.tests[name]
}

// MergeInto adds every file in src into dst additively, creating
// files and test entries as needed. This is the single merge
// primitive the rest of the package builds on: flattening, combining
// two stores, and folding a freshly parsed FileTable into an existing
// bucket are all MergeInto calls.
func MergeInto(dst FileTable, src FileTable) {
	for path, sfc := range src {
		dfc := dst.file(path)
		for line, count := range sfc.Lines {
			dfc.AddLine(line, count)
		}
		for name, fr := range sfc.Functions {
			dfc.SetFunction(name, fr.Line, fr.Count)
		}
		for key, count := range sfc.Branches {
			dfc.AddBranch(key, count)
		}
	}
}

// Merge folds other's test buckets into s, additively combining any
// bucket names the two stores share.
func (s *CoverageStore) Merge(other *CoverageStore) {
	for _, name := range other.TestNames() {
		MergeInto(s.Test(name), other.tests[name])
	}
}
