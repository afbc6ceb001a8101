package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covflow/ccov/model"
)

func fileWith(lines map[uint32]int64) *model.FileCoverage {
	fc := model.NewFileCoverage()
	for line, count := range lines {
		fc.AddLine(line, count)
	}
	return fc
}

func TestCollapsesCommonPrefix(t *testing.T) {
	ft := model.FileTable{
		"/u/a/x.c": fileWith(map[uint32]int64{1: 1}),
		"/u/a/y.c": fileWith(map[uint32]int64{1: 1}),
		"/u/a/z.c": fileWith(map[uint32]int64{1: 1}),
	}

	root := Build(ft)

	require.Len(t, root.Children, 3)
	names := []string{root.Children[0].Name, root.Children[1].Name, root.Children[2].Name}
	assert.ElementsMatch(t, []string{"x.c", "y.c", "z.c"}, names)
}

func TestAggregationTotalsSumChildren(t *testing.T) {
	ft := model.FileTable{
		"/p/a/x.c": fileWith(map[uint32]int64{1: 1, 2: 0}),
		"/p/b/y.c": fileWith(map[uint32]int64{1: 1}),
	}

	root := Build(ft)

	var leafLines, leafLinesHit int
	var walk func(n *Node)
	walk = func(n *Node) {
		if len(n.Children) == 0 {
			leafLines += n.Lines
			leafLinesHit += n.LinesHit
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)

	assert.Equal(t, root.Lines, leafLines)
	assert.Equal(t, root.LinesHit, leafLinesHit)
	assert.Equal(t, 3, root.Lines)
	assert.Equal(t, 2, root.LinesHit)
}

func TestLeafNodeMatchesFileCounts(t *testing.T) {
	fc := fileWith(map[uint32]int64{1: 1, 2: 0, 3: 4})
	ft := model.FileTable{"only.c": fc}

	root := Build(ft)
	require.Len(t, root.Children, 1)
	leaf := root.Children[0]

	assert.Equal(t, "only.c", leaf.Name)
	assert.Equal(t, len(fc.Lines), leaf.Lines)
	assert.Equal(t, fc.LinesHit(), leaf.LinesHit)
}
