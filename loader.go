// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ccov wires the lcov, gcov, model, and aggregate packages
// together into a single façade for batch callers that want to merge
// several coverage sources into one store and emit a combined report.
package ccov

import (
	"fmt"
	"io"
	"os"

	"github.com/covflow/ccov/aggregate"
	"github.com/covflow/ccov/gcov"
	"github.com/covflow/ccov/lcov"
	"github.com/covflow/ccov/model"
)

// LoaderConfig holds the parameters a Loader needs that have no
// natural per-call home: where relative source paths in binary notes
// files resolve against, and how symlinks in those paths are treated.
type LoaderConfig struct {
	BaseDir       string
	SymlinkPolicy gcov.SymlinkPolicy
}

// Loader accumulates coverage from any mix of LCOV text files and
// GCC notes/data pairs into a single CoverageStore.
type Loader struct {
	config LoaderConfig
	store  *model.CoverageStore
	errs   []error
}

// NewLoader returns an empty Loader.
func NewLoader(config LoaderConfig) *Loader {
	return &Loader{config: config, store: model.NewStore()}
}

func (l *Loader) gcovConfig() gcov.Config {
	return gcov.Config{BaseDir: l.config.BaseDir, SymlinkPolicy: l.config.SymlinkPolicy}
}

// AddLCOV parses an LCOV text stream and merges it into the store.
// The stream's own TN records determine which test bucket each file
// lands in.
func (l *Loader) AddLCOV(r io.Reader) error {
	return lcov.Parse(r, l.store)
}

// AddLCOVFile opens path and calls AddLCOV on its contents.
func (l *Loader) AddLCOVFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return l.AddLCOV(f)
}

// AddNotesData reads a single notes/data pair into the named test
// bucket. dataPath may be empty to load static graph structure with
// no runtime counts.
func (l *Loader) AddNotesData(notesPath, dataPath, test string) error {
	return gcov.ReadPair(notesPath, dataPath, l.gcovConfig(), l.store.Test(test))
}

// AddDir scans dir for notes/data pods and reads each one into the
// named test bucket. A fatal error in one pod does not abort the
// others (spec.md §5); all per-pod errors are returned together.
func (l *Loader) AddDir(dir, test string) []error {
	errs := gcov.ReadDir(dir, test, l.gcovConfig(), l.store)
	l.errs = append(l.errs, errs...)
	return errs
}

// Filter restricts the store to files matching pattern.
func (l *Loader) Filter(pattern string) error {
	return l.store.Filter(pattern)
}

// Store returns the Loader's underlying CoverageStore.
func (l *Loader) Store() *model.CoverageStore {
	return l.store
}

// Errors returns every non-fatal per-file error accumulated by AddDir
// calls so far.
func (l *Loader) Errors() []error {
	return l.errs
}

// WriteLCOV serializes the Loader's store as LCOV text.
func (l *Loader) WriteLCOV(w io.Writer) error {
	return lcov.Write(w, l.store)
}

// Aggregate builds the directory-rooted aggregation tree for the
// store's flattened (all-tests-merged) view.
func (l *Loader) Aggregate() *aggregate.Node {
	return aggregate.Build(l.store.Flat())
}

// AggregateTest builds the aggregation tree for a single named test
// bucket instead of the flattened view.
func (l *Loader) AggregateTest(test string) (*aggregate.Node, error) {
	ft := l.store.PerTest(test)
	if ft == nil {
		return nil, fmt.Errorf("ccov: no such test bucket %q", test)
	}
	return aggregate.Build(ft), nil
}
