package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeAdditivity(t *testing.T) {
	a := NewStore()
	a.File("", "/x/a.c").AddLine(5, 1)

	b := NewStore()
	b.File("", "/x/a.c").AddLine(5, 1)

	ab := NewStore()
	ab.Merge(a)
	ab.Merge(b)

	ba := NewStore()
	ba.Merge(b)
	ba.Merge(a)

	require.True(t, ab.Equal(ba), "%s", ab.Diff(ba))
	assert.Equal(t, int64(2), ab.Flat()["/x/a.c"].Lines[5])
}

func TestFlatUnionsKeysAcrossTests(t *testing.T) {
	s := NewStore()
	s.File("unit", "/x/a.c").AddLine(1, 1)
	s.File("integration", "/x/b.c").AddLine(1, 1)

	flat := s.Flat()
	assert.Contains(t, flat, "/x/a.c")
	assert.Contains(t, flat, "/x/b.c")
}

func TestPerTestIsolatesBuckets(t *testing.T) {
	s := NewStore()
	s.File("unit", "/x/a.c").AddLine(1, 1)
	s.File("integration", "/x/a.c").AddLine(1, 1)

	unit := s.PerTest("unit")
	require.Len(t, unit, 1)
	assert.Equal(t, int64(1), unit["/x/a.c"].Lines[1])
}

func TestSetFunctionLineIsLastWins(t *testing.T) {
	fc := NewFileCoverage()
	fc.SetFunction("foo", 10, 1)
	fc.SetFunction("foo", 20, 2)

	fr := fc.Functions["foo"]
	assert.Equal(t, uint32(20), fr.Line)
	assert.Equal(t, int64(3), fr.Count)
}

func TestHitCounters(t *testing.T) {
	fc := NewFileCoverage()
	fc.AddLine(1, 0)
	fc.AddLine(2, 3)
	fc.SetFunction("hit", 1, 1)
	fc.SetFunction("miss", 2, 0)
	fc.AddBranch(BranchKey{Line: 1, Group: 0, Ordinal: 0}, 0)
	fc.AddBranch(BranchKey{Line: 1, Group: 0, Ordinal: 1}, 2)

	assert.Equal(t, 1, fc.LinesHit())
	assert.Equal(t, 1, fc.FunctionsHit())
	assert.Equal(t, 1, fc.BranchesHit())
}
