package gcov

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTrivialGraph builds blocks {0: entry, 1: exit, 2: middle} with
// 0->2 computed (unknown) and 2->1 known at count 5, matching spec.md
// §8 scenario 4.
func newTrivialGraph() *funcGraph {
	fg := &funcGraph{
		name:   "trivial",
		blocks: []*block{{}, {}, {}},
	}
	fg.blocks[0].out = []arc{{target: 2, flags: uint64(ArcComputedCount)}}
	fg.blocks[2].out = []arc{{target: 1, count: 5, countKnown: true}}
	return fg
}

func TestTrivialFlowSolve(t *testing.T) {
	fg := newTrivialGraph()
	augment(fg)
	require.NoError(t, solve(fg))

	assert.Equal(t, int64(5), fg.blocks[0].out[0].count)
	assert.Equal(t, int64(5), fg.blocks[0].count)
	assert.Equal(t, int64(5), fg.blocks[2].count)
	assert.Equal(t, int64(5), fg.blocks[1].count)
}

func TestFlowConservationHolds(t *testing.T) {
	fg := newTrivialGraph()
	augment(fg)
	require.NoError(t, solve(fg))

	for bi, b := range fg.blocks {
		if bi == 0 || bi == 1 {
			continue
		}
		var inSum, outSum int64
		for _, ref := range b.in {
			inSum += fg.blocks[ref.block].out[ref.ordinal].count
		}
		for _, a := range b.out {
			outSum += a.count
		}
		assert.Equal(t, inSum, outSum)
		assert.Equal(t, inSum, b.count)
	}
}

func TestUnsolvableGraphDetected(t *testing.T) {
	// A self-loop on an isolated block can never be pinned down by
	// flow balance: its in-sum and out-sum are both itself.
	fg := &funcGraph{
		name:   "stuck",
		blocks: []*block{{}, {}, {}},
	}
	fg.blocks[2].out = []arc{{target: 2, flags: uint64(ArcComputedCount)}}

	augment(fg)
	err := solve(fg)
	require.Error(t, err)

	var uerr *UnsolvableGraphError
	assert.ErrorAs(t, err, &uerr)
}

func TestUnconditionalFlagSetOnSoleNonFakeArc(t *testing.T) {
	fg := newTrivialGraph()
	augment(fg)
	assert.True(t, fg.blocks[0].out[0].isUnconditional())
}

func TestCallNonReturnFlagSetOnNonEntryFakeArc(t *testing.T) {
	fg := &funcGraph{blocks: []*block{{}, {}, {}}}
	fg.blocks[0].out = []arc{{target: 1, flags: uint64(ArcFakeArc)}}
	fg.blocks[2].out = []arc{{target: 1, flags: uint64(ArcFakeArc)}}

	augment(fg)

	assert.False(t, fg.blocks[0].out[0].isCallNonReturn(), "entry block's fake arc is not call-non-return")
	assert.True(t, fg.blocks[2].out[0].isCallNonReturn())
}
