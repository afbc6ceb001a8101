package gcov

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestFunc() *funcGraph {
	fg := &funcGraph{ident: 1, name: "f", blocks: []*block{{}, {}}}
	fg.blocks[0].out = []arc{
		{target: 1, flags: uint64(ArcComputedCount)},
		{target: 1, count: 0, countKnown: true}, // already-known, not computed
	}
	return fg
}

func TestDepositCountersAddsToNonComputedArcsOnly(t *testing.T) {
	fg := buildTestFunc()
	payload := words(7, 0) // one (low, high) pair -> 7
	require.NoError(t, depositCounters("f.gcda", fg, payload))

	assert.Equal(t, int64(0), fg.blocks[0].out[0].count, "computed arc is solved later, not deposited into")
	assert.Equal(t, int64(7), fg.blocks[0].out[1].count)
}

func TestDepositCountersAdditiveAcrossCalls(t *testing.T) {
	fg := buildTestFunc()
	payload := words(3, 0)
	require.NoError(t, depositCounters("f.gcda", fg, payload))
	require.NoError(t, depositCounters("f.gcda", fg, payload))

	assert.Equal(t, int64(6), fg.blocks[0].out[1].count)
}

func TestDepositCountersLengthMismatchIsFatal(t *testing.T) {
	fg := buildTestFunc()
	err := depositCounters("f.gcda", fg, words(1, 0, 2, 0)) // two pairs, want one

	var cerr *CounterMismatchError
	require.ErrorAs(t, err, &cerr)
}

func TestReadDataFunctionRecordLLVMPadding(t *testing.T) {
	nf := &notesFile{
		version: "875*",
		stamp:   llvmStamp,
		funcs:   map[uint32]*funcGraph{1: {ident: 1}},
	}
	payload := words(1, 42, 0) // ident, checksum, llvm extra u32
	payload = append(payload, gccString("pad")...)

	fg, err := readDataFunctionRecord("f.gcda", payload, nf)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), fg.ident)
}

func TestReadDataFunctionRecordUnknownIdent(t *testing.T) {
	nf := &notesFile{version: "402*", stamp: "0000", funcs: map[uint32]*funcGraph{}}
	_, err := readDataFunctionRecord("f.gcda", words(99, 1), nf)

	var uerr *UnknownFunctionError
	require.ErrorAs(t, err, &uerr)
}
