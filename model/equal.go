// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/pmezard/go-difflib/difflib"
)

// Equal reports whether s and other hold the same test buckets, the
// same files per bucket, and structurally identical lines, functions,
// and branches within each file (spec.md §4.6 "Equivalence check").
// Map iteration order never affects the result; cmp.Diff compares map
// contents, not insertion order.
func (s *CoverageStore) Equal(other *CoverageStore) bool {
	return cmp.Equal(s.tests, other.tests)
}

// Diff returns a unified-diff-style textual rendering of how s
// differs from other, for use in test failure messages. It is empty
// iff Equal reports true.
func (s *CoverageStore) Diff(other *CoverageStore) string {
	d := cmp.Diff(s.tests, other.tests)
	if d == "" {
		return ""
	}
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(fmt.Sprintf("%v", s.tests)),
		B:        difflib.SplitLines(fmt.Sprintf("%v", other.tests)),
		FromFile: "got",
		ToFile:   "want",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return d
	}
	if strings.TrimSpace(text) == "" {
		return d
	}
	return text
}
