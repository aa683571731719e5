package program_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dtrobust/internal/ast"
	"dtrobust/internal/program"
)

func TestBuildCanonicalDepthZeroIsLeaf(t *testing.T) {
	n := program.BuildCanonical(0)
	seq, ok := n.(*ast.Sequence)
	require.True(t, ok)
	require.Len(t, seq.Nodes, 2)
	assert.Equal(t, ast.KindSummary, seq.Nodes[0].Kind())
	assert.Equal(t, ast.KindReturn, seq.Nodes[1].Kind())
}

func TestBuildCanonicalRecursesToRequestedDepth(t *testing.T) {
	n := program.BuildCanonical(2)
	top, ok := n.(*ast.IfImpurityZero)
	require.True(t, ok)

	elseSeq, ok := top.Else.(*ast.Sequence)
	require.True(t, ok)
	require.Len(t, elseSeq.Nodes, 2)
	assert.Equal(t, ast.KindBestSplit, elseSeq.Nodes[0].Kind())

	ite, ok := elseSeq.Nodes[1].(*ast.IfXModelsPhi)
	require.True(t, ok)
	thenSeq, ok := ite.Then.(*ast.Sequence)
	require.True(t, ok)
	assert.Equal(t, ast.KindFilter, thenSeq.Nodes[0].Kind())
	_, recursed := thenSeq.Nodes[1].(*ast.IfImpurityZero)
	assert.True(t, recursed, "depth-2 program should recurse one IfImpurityZero level deeper")
}
