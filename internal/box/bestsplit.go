package box

import (
	"dtrobust/internal/interval"
	"dtrobust/internal/predicate"
	"dtrobust/internal/schema"
	"dtrobust/internal/training"
)

// candidate pairs a symbolic predicate with its Gini-gain score interval.
type candidate struct {
	phi   predicate.Symbolic
	score interval.Interval
}

// BestSplit implements C9's bestSplit: T# -> Φ#. It enumerates every
// (feature, cut point) predicate the schema admits, scores each by Gini gain
// under t's attacker budgets, and returns the set of predicates that could
// plausibly be the split a concrete trainer picks.
//
// Per spec.md §4.5: let E be the candidates whose score interval is not
// provably trivial ([0,0]); let F ⊆ E be those that strictly dominate every
// other candidate in E (the split in every concrete instantiation). If E is
// empty, no split is informative and Φ# = {⊥}. If F == E (this holds
// whenever |E| == 1), Φ# = F. Otherwise the tie is genuine under some
// concretization, so Φ# = E with the ⊥ slot also present (the trainer may
// also have stopped upstream, e.g. on an already-pure set).
func BestSplit(t training.Set) predicate.Abstraction {
	if t.IsBottom() {
		return predicate.Empty
	}
	log.Debugf("bestSplit: considering %d features", len(t.DS.Schema.Features))

	var candidates []candidate
	for fi, f := range t.DS.Schema.Features {
		for _, ti := range cutThresholds(f) {
			phi := predicate.Symbolic{Feature: fi, Threshold: ti}
			score, ok := giniGain(t, phi)
			if !ok {
				continue
			}
			if score.Equal(interval.Point(0)) {
				continue // provably trivial: never the chosen split
			}
			candidates = append(candidates, candidate{phi: phi, score: score})
		}
	}

	if len(candidates) == 0 {
		return predicate.New(nil, true)
	}

	dominant := make([]predicate.Symbolic, 0, len(candidates))
	for _, c := range candidates {
		if dominatesAllOthers(c, candidates) {
			dominant = append(dominant, c.phi)
		}
	}

	if len(dominant) == len(candidates) {
		return predicate.New(dominant, false)
	}

	all := make([]predicate.Symbolic, 0, len(candidates))
	for _, c := range candidates {
		all = append(all, c.phi)
	}
	return predicate.New(all, true)
}

func dominatesAllOthers(self candidate, all []candidate) bool {
	for _, other := range all {
		if other.phi.Equal(self.phi) {
			continue
		}
		if !self.score.StrictlyDominates(other.score) {
			return false
		}
	}
	return true
}

// cutThresholds returns the threshold indices bestSplit tries for f: every
// cut point for a numeric feature, the single implicit threshold (0) for a
// boolean feature.
func cutThresholds(f schema.Feature) []int {
	if f.Kind == schema.Boolean {
		return []int{0}
	}
	out := make([]int, len(f.CutPoints))
	for i := range f.CutPoints {
		out[i] = i
	}
	return out
}
