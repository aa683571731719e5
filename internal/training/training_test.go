package training_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dtrobust/internal/dataset"
	"dtrobust/internal/predicate"
	"dtrobust/internal/schema"
	"dtrobust/internal/training"
)

func fourRowDataset() *dataset.Dataset {
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

func TestBaseCounts(t *testing.T) {
	ds := fourRowDataset()
	ts := training.New(ds, dataset.Full(4), 0, 0, training.AnySens, 0, training.AnySens, 0, -1, 0)
	counts := ts.BaseCounts()
	a, _ := counts.Get("a")
	b, _ := counts.Get("b")
	assert.Equal(t, 2.0, a)
	assert.Equal(t, 2.0, b)
}

func TestSplitCountsNoSwing(t *testing.T) {
	ds := fourRowDataset()
	ts := training.New(ds, dataset.Full(4), 0, 0, training.AnySens, 0, training.AnySens, 0, -1, 0)
	phi := predicate.Symbolic{Feature: 0, Threshold: 0}
	left, right := ts.SplitCounts(phi)
	assert.Equal(t, 2, left.Total)
	assert.Equal(t, 2, right.Total)
}

func TestSplitCountsSwingOutOfRangeKeepsPartition(t *testing.T) {
	ds := fourRowDataset()
	ts := training.New(ds, dataset.Full(4), 0, 0, training.AnySens, 0, training.AnySens, 1, 0, 0.2)
	phi := predicate.Symbolic{Feature: 0, Threshold: 0}
	left, right := ts.SplitCounts(phi)
	// A feature-flip budget is set, but the nearest row to the 0.5 cut is
	// 0.1 at distance 0.4 > 0.2, so no row swings and the halves stay an
	// exact partition.
	assert.Equal(t, 2, left.Total)
	assert.Equal(t, 2, right.Total)
}

func TestSplitCountsSwingWidensBothHalves(t *testing.T) {
	ds := fourRowDataset()
	ts := training.New(ds, dataset.Full(4), 0, 0, training.AnySens, 0, training.AnySens, 1, 0, 0.6)
	phi := predicate.Symbolic{Feature: 0, Threshold: 0}
	left, right := ts.SplitCounts(phi)
	// Every row lies within 0.6 of the 0.5 cut (distances 0.5, 0.4, 0.5, 0.6),
	// so every row swings into both halves.
	assert.True(t, left.Total > 2, "left should widen under swing")
	assert.True(t, right.Total > 2, "right should widen under swing")
}

func TestFilterKeepsBoundaryRowsOnBothSidesUnderSwing(t *testing.T) {
	ds := fourRowDataset()
	ts := training.New(ds, dataset.Full(4), 0, 0, training.AnySens, 0, training.AnySens, 1, 0, 0.6)
	phi := predicate.Symbolic{Feature: 0, Threshold: 0}
	left := ts.Filter(phi, true)
	right := ts.Filter(phi, false)
	// Rows 0.0, 0.1, 1.0 and 1.1 lie at distances 0.5, 0.4, 0.5 and 0.6 from
	// the 0.5 cut, all within 0.6, so both Filter(true) and Filter(false)
	// must retain every row alongside their exact half.
	assert.Equal(t, 4, left.Refs.Len())
	assert.Equal(t, 4, right.Refs.Len())
}

func TestFilterExactPartitionWithoutSwingBudget(t *testing.T) {
	ds := fourRowDataset()
	ts := training.New(ds, dataset.Full(4), 0, 0, training.AnySens, 0, training.AnySens, 0, -1, 0)
	phi := predicate.Symbolic{Feature: 0, Threshold: 0}
	left := ts.Filter(phi, true)
	right := ts.Filter(phi, false)
	assert.Equal(t, 2, left.Refs.Len())
	assert.Equal(t, 2, right.Refs.Len())
}

func TestFilterNeverShrinksDropoutBelowRefs(t *testing.T) {
	ds := fourRowDataset()
	ts := training.New(ds, dataset.Full(4), 4, 0, training.AnySens, 0, training.AnySens, 0, -1, 0)
	phi := predicate.Symbolic{Feature: 0, Threshold: 0}
	filtered := ts.Filter(phi, true)
	assert.Equal(t, 2, filtered.Refs.Len())
	assert.LessOrEqual(t, filtered.NumDropout, filtered.Refs.Len())
}

func TestMeetImpurityEqualsZeroWithSufficientBudget(t *testing.T) {
	ds := fourRowDataset()
	ts := training.New(ds, dataset.Full(4), 2, 0, training.AnySens, 0, training.AnySens, 0, -1, 0)
	restricted := ts.MeetImpurityEqualsZero()
	require.False(t, restricted.IsBottom())
	assert.ElementsMatch(t, []string{"a", "b"}, restricted.RestrictedClasses())
}

func TestMeetImpurityEqualsZeroInsufficientBudgetIsBottom(t *testing.T) {
	ds := fourRowDataset()
	ts := training.New(ds, dataset.Full(4), 0, 0, training.AnySens, 0, training.AnySens, 0, -1, 0)
	restricted := ts.MeetImpurityEqualsZero()
	assert.True(t, restricted.IsBottom())
}

func TestMeetImpurityNotEqualsZeroOnAlreadyPureSet(t *testing.T) {
	ds := fourRowDataset()
	onlyA := dataset.FromSlice([]int{0, 1})
	ts := training.New(ds, onlyA, 0, 0, training.AnySens, 0, training.AnySens, 0, -1, 0)
	assert.True(t, ts.MeetImpurityNotEqualsZero().IsBottom())
}

func TestMeetImpurityNotEqualsZeroSurvivesWhenImpureReachable(t *testing.T) {
	ds := fourRowDataset()
	ts := training.New(ds, dataset.Full(4), 0, 0, training.AnySens, 0, training.AnySens, 0, -1, 0)
	result := ts.MeetImpurityNotEqualsZero()
	assert.False(t, result.IsBottom())
}

func TestJoinLatticeLaws(t *testing.T) {
	ds := fourRowDataset()
	bot := training.Bottom()
	a := training.New(ds, dataset.FromSlice([]int{0, 1}), 1, 0, training.AnySens, 0, training.AnySens, 0, -1, 0)
	b := training.New(ds, dataset.FromSlice([]int{2, 3}), 0, 1, training.AnySens, 0, training.AnySens, 0, -1, 0)

	joined := training.Join(a, bot)
	assert.Equal(t, a.Refs.Indices(), joined.Refs.Indices())

	ab := training.Join(a, b)
	ba := training.Join(b, a)
	assert.Equal(t, ab.Refs.Indices(), ba.Refs.Indices(), "join must be commutative")
	assert.Equal(t, ab.NumDropout, maxOf(a.NumDropout, b.NumDropout))
}

func maxOf(a, b int) int {
	if a > b {
		return a
	}
	return b
}
