// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gcov

import "github.com/covflow/ccov/model"

// ReadPair parses the notes file at notesPath and, if dataPath is
// non-empty, merges in its companion data file's runtime counters,
// solves the resulting flow graphs, and projects the result into ft
// (spec.md §5: "runs components 4.1-4.5"). Notes must load fully
// before data is merged, since data records reference identifiers
// notes declares.
func ReadPair(notesPath, dataPath string, cfg Config, ft model.FileTable) error {
	nf, err := readNotesFile(notesPath)
	if err != nil {
		return err
	}

	if dataPath != "" {
		if err := mergeDataFile(dataPath, nf); err != nil {
			return err
		}
	}

	for _, ident := range nf.order {
		fg := nf.funcs[ident]
		if len(fg.blocks) < 2 {
			continue
		}
		augment(fg)
		if err := solve(fg); err != nil {
			return err
		}
	}

	project(nf, cfg, ft)
	return nil
}

// ReadDir scans dir for notes/data pods (ScanDir) and reads each one
// into the named test bucket of store. A fatal error in one pod
// aborts only that pod; already-ingested pods remain valid (spec.md
// §5, "failure isolation").
func ReadDir(dir, test string, cfg Config, store *model.CoverageStore) []error {
	pods, err := ScanDir(dir)
	if err != nil {
		return []error{err}
	}

	var errs []error
	ft := store.Test(test)
	for _, pod := range pods {
		if err := ReadPair(pod.Notes, pod.Data, cfg, ft); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
