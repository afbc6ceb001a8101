// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gcov

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Pod is one paired (or unpaired) notes/data file found while scanning
// a directory. Data is empty when no matching .gcda sibling exists;
// such pods still carry static graph structure but no runtime counts.
type Pod struct {
	Notes string
	Data  string
}

// ScanDir walks dir (non-recursively) and pairs every ".gcno" file
// with a sibling file of identical basename ending in ".gcda" (spec.md
// §6: "file ending in .gcda with a sibling identical-basename file
// ending in .gcno"). Pods are returned sorted by notes path.
func ScanDir(dir string) ([]Pod, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	notes := make(map[string]string) // basename -> full path
	data := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		full := filepath.Join(dir, name)
		switch {
		case strings.HasSuffix(name, ".gcno"):
			notes[strings.TrimSuffix(name, ".gcno")] = full
		case strings.HasSuffix(name, ".gcda"):
			data[strings.TrimSuffix(name, ".gcda")] = full
		}
	}

	bases := make([]string, 0, len(notes))
	for base := range notes {
		bases = append(bases, base)
	}
	sort.Strings(bases)

	pods := make([]Pod, 0, len(bases))
	for _, base := range bases {
		pods = append(pods, Pod{Notes: notes[base], Data: data[base]})
	}
	return pods, nil
}
