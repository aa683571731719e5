package eval_test

import (
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dtrobust/internal/ast"
	"dtrobust/internal/dataset"
	"dtrobust/internal/eval"
	"dtrobust/internal/schema"
	"dtrobust/internal/training"
)

func cleanSplitDataset() *dataset.Dataset {
	s := schema.Schema{
		Features: []schema.Feature{schema.NumericFeature("x0", []float64{0.5})},
		Classes:  []string{"a", "b"},
	}
	rows := []dataset.Row{
		{X: schema.Vector{Values: []float64{0.0}}, Y: "a"},
		{X: schema.Vector{Values: []float64{0.1}}, Y: "a"},
		{X: schema.Vector{Values: []float64{1.0}}, Y: "b"},
		{X: schema.Vector{Values: []float64{1.1}}, Y: "b"},
	}
	return &dataset.Dataset{Schema: s, Rows: rows}
}

func pureDataset() *dataset.Dataset {
	s := schema.Schema{
		Features: []schema.Feature{schema.NumericFeature("x0", []float64{0.5})},
		Classes:  []string{"a"},
	}
	rows := []dataset.Row{
		{X: schema.Vector{Values: []float64{0.0}}, Y: "a"},
		{X: schema.Vector{Values: []float64{0.2}}, Y: "a"},
	}
	return &dataset.Dataset{Schema: s, Rows: rows}
}

func initialSet(ds *dataset.Dataset) training.Set {
	return training.New(ds, dataset.Full(len(ds.Rows)), 0, 0, training.AnySens, 0, training.AnySens, 0, -1, 0)
}

func TestEvalSplitFilterSummaryNoBudget(t *testing.T) {
	ds := cleanSplitDataset()
	program := &ast.Sequence{Nodes: []ast.Node{
		&ast.BestSplit{},
		&ast.Filter{Positive: true},
		&ast.Summary{},
		&ast.Return{},
	}}
	post, err := eval.Eval(program, initialSet(ds), ds.Schema, schema.Vector{Values: []float64{0.0}})
	require.NoError(t, err)
	t.Logf("posterior: %# v", pretty.Formatter(post))
	a, _ := post.Get("a")
	b, _ := post.Get("b")
	assert.InDelta(t, 1.0, a.Lo, 1e-9)
	assert.InDelta(t, 1.0, a.Hi, 1e-9)
	assert.InDelta(t, 0.0, b.Lo, 1e-9)
	assert.InDelta(t, 0.0, b.Hi, 1e-9)
}

func TestEvalMissingReturnIsMalformed(t *testing.T) {
	ds := cleanSplitDataset()
	program := &ast.Sequence{Nodes: []ast.Node{&ast.BestSplit{}, &ast.Summary{}}}
	_, err := eval.Eval(program, initialSet(ds), ds.Schema, schema.Vector{Values: []float64{0.0}})
	assert.Error(t, err)
}

func TestEvalReturnInNonTailPositionIsMalformed(t *testing.T) {
	ds := cleanSplitDataset()
	program := &ast.Sequence{Nodes: []ast.Node{&ast.Return{}, &ast.Summary{}}}
	_, err := eval.Eval(program, initialSet(ds), ds.Schema, schema.Vector{Values: []float64{0.0}})
	assert.Error(t, err)
}

func TestEvalIfImpurityZeroTakesThenBranchOnPureSet(t *testing.T) {
	ds := pureDataset()
	program := &ast.IfImpurityZero{
		Then: &ast.Sequence{Nodes: []ast.Node{&ast.Summary{}, &ast.Return{}}},
		Else: &ast.Sequence{Nodes: []ast.Node{&ast.BestSplit{}, &ast.Filter{Positive: true}, &ast.Summary{}, &ast.Return{}}},
	}
	post, err := eval.Eval(program, initialSet(ds), ds.Schema, schema.Vector{Values: []float64{0.0}})
	require.NoError(t, err)
	a, ok := post.Get("a")
	require.True(t, ok)
	assert.InDelta(t, 1.0, a.Lo, 1e-9)
	assert.InDelta(t, 1.0, a.Hi, 1e-9)
}

func TestEvalIfXModelsPhiJoinsBothBranches(t *testing.T) {
	ds := cleanSplitDataset()
	program := &ast.Sequence{Nodes: []ast.Node{
		&ast.BestSplit{},
		&ast.IfXModelsPhi{
			Then: &ast.Sequence{Nodes: []ast.Node{&ast.Filter{Positive: true}, &ast.Summary{}, &ast.Return{}}},
			Else: &ast.Sequence{Nodes: []ast.Node{&ast.Filter{Positive: false}, &ast.Summary{}, &ast.Return{}}},
		},
	}}
	post, err := eval.Eval(program, initialSet(ds), ds.Schema, schema.Vector{Values: []float64{0.0}})
	require.NoError(t, err)
	assert.Len(t, post.Classes(), 2)
}
