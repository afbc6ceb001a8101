// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "github.com/bmatcuk/doublestar/v4"

// Filter restricts every FileTable in s to filenames matching pattern
// and removes any test bucket left with no files (spec.md §4.6,
// "glob filter closure": every surviving file matches the glob and
// every test bucket is non-empty).
func (s *CoverageStore) Filter(pattern string) error {
	for name, ft := range s.tests {
		filtered, err := filterTable(ft, pattern)
		if err != nil {
			return err
		}
		if len(filtered) == 0 {
			delete(s.tests, name)
			continue
		}
		s.tests[name] = filtered
	}
	return nil
}

func filterTable(ft FileTable, pattern string) (FileTable, error) {
	out := make(FileTable)
	for path, fc := range ft {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return nil, err
		}
		if matched {
			out[path] = fc
		}
	}
	return out, nil
}
