package box_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dtrobust/internal/box"
	"dtrobust/internal/dataset"
	"dtrobust/internal/predicate"
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

func TestBestSplitFindsPerfectSplitWithNoBudget(t *testing.T) {
	ds := cleanSplitDataset()
	ts := training.New(ds, dataset.Full(4), 0, 0, training.AnySens, 0, training.AnySens, 0, -1, 0)
	phiAbs := box.BestSplit(ts)
	require.False(t, phiAbs.IsBottom())
	assert.False(t, phiAbs.HasUndefined(), "a clean split with no budget must not include bottom")
	concrete := phiAbs.Concrete()
	want := []predicate.Symbolic{{Feature: 0, Threshold: 0}}
	if diff := cmp.Diff(want, concrete); diff != "" {
		t.Errorf("unexpected best-split candidates (-want +got):\n%s", diff)
	}
}

func TestBestSplitOnBottomSetIsBottom(t *testing.T) {
	assert.True(t, box.BestSplit(training.Bottom()).IsBottom())
}

func TestFilterNarrowsRefsToPositiveHalf(t *testing.T) {
	ds := cleanSplitDataset()
	ts := training.New(ds, dataset.Full(4), 0, 0, training.AnySens, 0, training.AnySens, 0, -1, 0)
	phiAbs := predicate.New([]predicate.Symbolic{{Feature: 0, Threshold: 0}}, false)
	left := box.FilterPositive(ts, phiAbs)
	right := box.FilterNegative(ts, phiAbs)
	assert.Equal(t, 2, left.Refs.Len())
	assert.Equal(t, 2, right.Refs.Len())
}

func TestFilterOnUndefinedAbstractionIsNoOp(t *testing.T) {
	ds := cleanSplitDataset()
	ts := training.New(ds, dataset.Full(4), 0, 0, training.AnySens, 0, training.AnySens, 0, -1, 0)
	phiAbs := predicate.New(nil, true)
	out := box.FilterPositive(ts, phiAbs)
	assert.Equal(t, ts.Refs.Len(), out.Refs.Len())
}

func TestMeetXModelsPhiNarrowsToModeledCandidates(t *testing.T) {
	ds := cleanSplitDataset()
	phiAbs := predicate.New([]predicate.Symbolic{{Feature: 0, Threshold: 0}}, false)
	x := schema.Vector{Values: []float64{0.0}}
	then := box.MeetXModelsPhi(phiAbs, x, ds.Schema)
	els := box.MeetXNotModelsPhi(phiAbs, x, ds.Schema)
	assert.Len(t, then.Concrete(), 1, "x=0.0 models (feature 0 <= cut 0.5)")
	assert.Len(t, els.Concrete(), 0)
}

func TestSummaryOnBalancedSetReturnsHalfIntervals(t *testing.T) {
	ds := cleanSplitDataset()
	ts := training.New(ds, dataset.Full(4), 0, 0, training.AnySens, 0, training.AnySens, 0, -1, 0)
	post, err := box.Summary(ts)
	require.NoError(t, err)
	a, ok := post.Get("a")
	require.True(t, ok)
	assert.InDelta(t, 0.5, a.Lo, 1e-9)
	assert.InDelta(t, 0.5, a.Hi, 1e-9)
}

func TestSummaryWidensUnderDropoutBudget(t *testing.T) {
	ds := cleanSplitDataset()
	ts := training.New(ds, dataset.Full(4), 1, 0, training.AnySens, 0, training.AnySens, 0, -1, 0)
	post, err := box.Summary(ts)
	require.NoError(t, err)
	a, _ := post.Get("a")
	assert.True(t, a.Lo < 0.5, "dropout budget should widen the interval's lower bound")
}

func TestSummaryOnBottomIsError(t *testing.T) {
	_, err := box.Summary(training.Bottom())
	assert.Error(t, err)
}
