// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package aggregate builds a directory-rooted summary tree out of a
// model.FileTable, suitable for serializing as the JSON aggregation
// tree described in spec.md §6.
package aggregate

import (
	"sort"
	"strings"

	"github.com/covflow/ccov/model"
)

// Node is one directory or file in the aggregation tree. Leaf nodes
// (files) have no Children; internal nodes (directories) have no
// direct coverage facts of their own beyond the sum of their children.
type Node struct {
	Name           string `json:"name,omitempty"`
	Lines          int    `json:"lines"`
	LinesHit       int    `json:"lines-hit"`
	Funcs          int    `json:"funcs"`
	FuncsHit       int    `json:"funcs-hit"`
	Branches       int    `json:"branches"`
	BranchesHit    int    `json:"branches-hit"`
	Children       []*Node `json:"files,omitempty"`
	childByName    map[string]*Node
}

func newNode(name string) *Node {
	return &Node{Name: name, childByName: make(map[string]*Node)}
}

func (n *Node) child(name string) *Node {
	c, ok := n.childByName[name]
	if !ok {
		c = newNode(name)
		n.childByName[name] = c
		n.Children = append(n.Children, c)
	}
	return c
}

// Build walks every file in ft, splitting its path on "/" to create
// intermediate directory nodes as needed, and accumulates totals at
// every ancestor and at the leaf (spec.md §4.8). The root chain is
// then collapsed: while the root has exactly one child and that
// child itself has children, the tree descends, absorbing the common
// path prefix so the returned root is the first directory at which
// the tree actually branches.
func Build(ft model.FileTable) *Node {
	root := newNode("")
	for path, fc := range ft {
		insert(root, strings.Split(strings.Trim(path, "/"), "/"), fc)
	}
	sortChildren(root)
	return collapse(root)
}

func insert(root *Node, parts []string, fc *model.FileCoverage) {
	leafLines := len(fc.Lines)
	leafLinesHit := fc.LinesHit()
	leafFuncs := len(fc.Functions)
	leafFuncsHit := fc.FunctionsHit()
	leafBranches := len(fc.Branches)
	leafBranchesHit := fc.BranchesHit()

	cur := root
	addTotals(cur, leafLines, leafLinesHit, leafFuncs, leafFuncsHit, leafBranches, leafBranchesHit)
	for _, part := range parts {
		cur = cur.child(part)
		addTotals(cur, leafLines, leafLinesHit, leafFuncs, leafFuncsHit, leafBranches, leafBranchesHit)
	}
}

func addTotals(n *Node, lines, linesHit, funcs, funcsHit, branches, branchesHit int) {
	n.Lines += lines
	n.LinesHit += linesHit
	n.Funcs += funcs
	n.FuncsHit += funcsHit
	n.Branches += branches
	n.BranchesHit += branchesHit
}

func sortChildren(n *Node) {
	sort.Slice(n.Children, func(i, j int) bool { return n.Children[i].Name < n.Children[j].Name })
	for _, c := range n.Children {
		sortChildren(c)
	}
}

func collapse(root *Node) *Node {
	for len(root.Children) == 1 && len(root.Children[0].Children) > 0 {
		root = root.Children[0]
	}
	root.Name = ""
	return root
}
