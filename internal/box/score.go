// Package box implements C9: the box state domain's transfer functions —
// bestSplit, filter, filterNegated, summary, and the two x ⊨ φ refinements —
// over the C6 training abstraction, C7 predicate abstraction, and C8
// posterior interval abstraction. The two impurity meets are methods of
// training.Set.
package box

import (
	"dtrobust/internal/distribution"
	"dtrobust/internal/interval"
	"dtrobust/internal/predicate"
	"dtrobust/internal/training"
)

// Posterior is C8: a categorical distribution whose values are intervals.
type Posterior = distribution.Distribution[interval.Interval]

// countInterval widens a base count by the dropout/flip (lower) and
// add/flip (upper) budgets, matching summary's per-class formula in
// spec.md §4.5: [max(0, base - nd - nl), base + na + nl + swing]. base
// already carries the swing term here: training.Set.Filter keeps every row
// within the feature-perturbation budget of a cut on both sides of the
// split, so a row that could swing into this class's count was never
// excluded from Refs and needs no separate addend.
func countInterval(base float64, numDropout, numAdd, numLabelsFlip int) interval.Interval {
	lo := base - float64(numDropout) - float64(numLabelsFlip)
	if lo < 0 {
		lo = 0
	}
	hi := base + float64(numAdd) + float64(numLabelsFlip)
	return interval.New(lo, hi)
}

// totalInterval widens the row-count total: [n - nd, n + na].
func totalInterval(n, numDropout, numAdd int) interval.Interval {
	lo := float64(n - numDropout)
	if lo < 0 {
		lo = 0
	}
	return interval.New(lo, float64(n+numAdd))
}

// giniInterval computes the Gini-impurity interval 1 - sum_c p_c^2 over a
// half's per-class counts, widened by its attacker budget, where
// p_c = count(c) / total. ok is false iff total contains zero, in which
// case the caller must treat the candidate as trivial rather than dividing.
func giniInterval(counts distribution.Distribution[float64], numDropout, numAdd, numLabelsFlip int, total interval.Interval) (interval.Interval, bool) {
	if total.ContainsZero() {
		return interval.Empty, false
	}
	sumSq := interval.Point(0)
	for _, c := range counts.Classes() {
		base, _ := counts.Get(c)
		ci := countInterval(base, numDropout, numAdd, numLabelsFlip)
		p, err := ci.DivPositive(total)
		if err != nil {
			return interval.Empty, false
		}
		sumSq = sumSq.Add(p.Clamp01().SquareNonNeg())
	}
	return interval.Point(1).Sub(sumSq).Clamp01(), true
}

// giniGain computes the weighted Gini gain interval for splitting t on phi:
// parent impurity minus each half's impurity weighted by its share of the
// total. ok is false iff any division involved is undefined (a
// zero-containing total), in which case bestSplit treats phi as trivial.
func giniGain(t training.Set, phi predicate.Symbolic) (interval.Interval, bool) {
	left, right := t.SplitCounts(phi)

	parentTotal := totalInterval(t.Refs.Len(), t.NumDropout, t.NumAdd)
	leftTotal := totalInterval(left.Total, left.NumDropout, left.NumAdd)
	rightTotal := totalInterval(right.Total, right.NumDropout, right.NumAdd)

	parentImpurity, ok := giniInterval(t.BaseCounts(), t.NumDropout, t.NumAdd, t.NumLabelsFlip, parentTotal)
	if !ok {
		return interval.Empty, false
	}
	leftImpurity, ok := giniInterval(left.PerClass, left.NumDropout, left.NumAdd, left.NumLabelsFlip, leftTotal)
	if !ok {
		return interval.Empty, false
	}
	rightImpurity, ok := giniInterval(right.PerClass, right.NumDropout, right.NumAdd, right.NumLabelsFlip, rightTotal)
	if !ok {
		return interval.Empty, false
	}

	leftShare, err := leftTotal.DivPositive(parentTotal)
	if err != nil {
		return interval.Empty, false
	}
	rightShare, err := rightTotal.DivPositive(parentTotal)
	if err != nil {
		return interval.Empty, false
	}

	weightedLeft := leftShare.Clamp01().MulNonNeg(leftImpurity)
	weightedRight := rightShare.Clamp01().MulNonNeg(rightImpurity)

	return parentImpurity.Sub(weightedLeft).Sub(weightedRight), true
}
