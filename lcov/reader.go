// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lcov

import (
	"bufio"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/covflow/ccov/model"
)

// ignoredInstructions are recomputed on write and simply skipped on
// read (spec.md §4.7).
var ignoredInstructions = map[string]bool{
	"LH": true, "LF": true,
	"FNH": true, "FNF": true,
	"BRH": true, "BRF": true,
}

// Parse reads an LCOV text stream from r and deposits its contents
// into store, creating or updating test buckets and file records as
// it goes (spec.md §4.6 "Insert from LCOV text").
func Parse(r io.Reader, store *model.CoverageStore) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	test := ""
	var fc *model.FileCoverage
	lineNum := 0

	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if line == "end_of_record" {
			fc = nil
			continue
		}

		instr, payload, ok := strings.Cut(line, ":")
		if !ok {
			return &ParseError{Line: lineNum, Text: line}
		}

		if ignoredInstructions[instr] {
			continue
		}

		switch instr {
		case "TN":
			test = payload
			continue
		case "SF":
			fc = store.File(test, resolveSourcePath(payload))
			continue
		}

		if fc == nil {
			return &ParseError{Line: lineNum, Text: line, Err: errNoSourceFile}
		}

		switch instr {
		case "DA":
			if err := parseDA(fc, payload); err != nil {
				return &ParseError{Line: lineNum, Text: line, Err: err}
			}
		case "FN":
			if err := parseFN(fc, payload); err != nil {
				return &ParseError{Line: lineNum, Text: line, Err: err}
			}
		case "FNDA":
			if err := parseFNDA(fc, payload); err != nil {
				return &ParseError{Line: lineNum, Text: line, Err: err}
			}
		case "BRDA":
			if err := parseBRDA(fc, payload); err != nil {
				return &ParseError{Line: lineNum, Text: line, Err: err}
			}
		default:
			return &ParseError{Line: lineNum, Text: line}
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return nil
}

type lcovErr string

func (e lcovErr) Error() string { return string(e) }

var errNoSourceFile = lcovErr("instruction outside of SF/end_of_record block")
var errBadFields = lcovErr("wrong number of comma-separated fields")

func resolveSourcePath(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}

func parseDA(fc *model.FileCoverage, payload string) error {
	parts := strings.Split(payload, ",")
	if len(parts) < 2 {
		return errBadFields
	}
	line, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return err
	}
	count, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return err
	}
	fc.AddLine(uint32(line), count)
	return nil
}

func parseFN(fc *model.FileCoverage, payload string) error {
	line, name, ok := strings.Cut(payload, ",")
	if !ok {
		return errBadFields
	}
	l, err := strconv.ParseUint(line, 10, 32)
	if err != nil {
		return err
	}
	fc.SetFunction(name, uint32(l), 0)
	return nil
}

func parseFNDA(fc *model.FileCoverage, payload string) error {
	count, name, ok := strings.Cut(payload, ",")
	if !ok {
		return errBadFields
	}
	c, err := strconv.ParseInt(count, 10, 64)
	if err != nil {
		return err
	}
	fr, exists := fc.Functions[name]
	line := uint32(0)
	if exists {
		line = fr.Line
	}
	fc.SetFunction(name, line, c)
	return nil
}

func parseBRDA(fc *model.FileCoverage, payload string) error {
	parts := strings.SplitN(payload, ",", 4)
	if len(parts) != 4 {
		return errBadFields
	}
	line, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return err
	}
	group, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return err
	}
	ordinal, err := strconv.ParseUint(parts[2], 10, 32)
	if err != nil {
		return err
	}
	count := int64(0)
	if parts[3] != "-" {
		count, err = strconv.ParseInt(parts[3], 10, 64)
		if err != nil {
			return err
		}
	}
	fc.AddBranch(model.BranchKey{Line: uint32(line), Group: uint32(group), Ordinal: uint32(ordinal)}, count)
	return nil
}
