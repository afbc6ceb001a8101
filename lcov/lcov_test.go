package lcov

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covflow/ccov/model"
)

const sampleRecord = `TN:t1
SF:/a/b.c
FN:10,foo
FNDA:3,foo
DA:10,3
DA:11,3
BRDA:11,0,0,2
BRDA:11,0,1,1
end_of_record
`

func TestRoundTripScenario(t *testing.T) {
	store := model.NewStore()
	require.NoError(t, Parse(strings.NewReader(sampleRecord), store))

	var out bytes.Buffer
	require.NoError(t, Write(&out, store))

	text := out.String()
	assert.Contains(t, text, "FNF:1\nFNH:1\n")
	assert.Contains(t, text, "LH:2\nLF:2\n")
	assert.Contains(t, text, "BRH:2\nBRF:2\n")
	assert.Contains(t, text, "DA:10,3\n")
	assert.Contains(t, text, "DA:11,3\n")
}

func TestRoundTripIdempotence(t *testing.T) {
	store := model.NewStore()
	require.NoError(t, Parse(strings.NewReader(sampleRecord), store))

	var out bytes.Buffer
	require.NoError(t, Write(&out, store))

	reparsed := model.NewStore()
	require.NoError(t, Parse(strings.NewReader(out.String()), reparsed))

	assert.True(t, store.Equal(reparsed), "%s", store.Diff(reparsed))
}

func TestMergeAdditivity(t *testing.T) {
	input := "TN:t1\nSF:/a.c\nDA:5,1\nend_of_record\n"

	store := model.NewStore()
	require.NoError(t, Parse(strings.NewReader(input), store))
	require.NoError(t, Parse(strings.NewReader(input), store))

	assert.Equal(t, int64(2), store.PerTest("t1")["/a.c"].Lines[5])
}

func TestBranchDashNormalization(t *testing.T) {
	input := "TN:\nSF:/a.c\nBRDA:7,0,0,-\nBRDA:7,0,1,-\nend_of_record\n"

	store := model.NewStore()
	require.NoError(t, Parse(strings.NewReader(input), store))

	fc := store.PerTest("")["/a.c"]
	assert.Equal(t, int64(0), fc.Branches[model.BranchKey{Line: 7, Group: 0, Ordinal: 0}])
	assert.Equal(t, int64(0), fc.Branches[model.BranchKey{Line: 7, Group: 0, Ordinal: 1}])

	var out bytes.Buffer
	require.NoError(t, Write(&out, store))
	text := out.String()
	assert.Contains(t, text, "BRDA:7,0,0,-\n")
	assert.Contains(t, text, "BRDA:7,0,1,-\n")
}

func TestUnrecognizedInstructionIsParseError(t *testing.T) {
	store := model.NewStore()
	err := Parse(strings.NewReader("TN:t1\nSF:/a.c\nWAT:1,2\nend_of_record\n"), store)
	require.Error(t, err)

	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestFNDAPreservesDeclarationLine(t *testing.T) {
	input := "TN:t1\nSF:/a.c\nFN:4,foo\nFNDA:2,foo\nend_of_record\n"

	store := model.NewStore()
	require.NoError(t, Parse(strings.NewReader(input), store))

	fr := store.PerTest("t1")["/a.c"].Functions["foo"]
	require.NotNil(t, fr)
	assert.Equal(t, uint32(4), fr.Line)
	assert.Equal(t, int64(2), fr.Count)
}
