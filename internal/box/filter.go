package box

import (
	"dtrobust/internal/predicate"
	"dtrobust/internal/training"
)

// FilterPositive implements C9's filter(T#, Φ#): the join, over every
// non-⊥ candidate φ in phiAbs, of T#.Filter(φ, true). If phiAbs contains the
// ⊥ slot, the result additionally joins T# unchanged — per spec.md §9, an
// undefined best split means the DSL semantics applies no filter at all, a
// deliberately conservative choice rather than aborting.
func FilterPositive(t training.Set, phiAbs predicate.Abstraction) training.Set {
	return foldFilter(t, phiAbs, true)
}

// FilterNegative implements C9's filterNegated(T#, Φ#), the symmetric case.
func FilterNegative(t training.Set, phiAbs predicate.Abstraction) training.Set {
	return foldFilter(t, phiAbs, false)
}

func foldFilter(t training.Set, phiAbs predicate.Abstraction, positive bool) training.Set {
	if t.IsBottom() {
		return t
	}
	log.Debugf("filter(positive=%t): folding %d candidate predicates", positive, len(phiAbs.Concrete()))
	result := training.Bottom()
	for _, phi := range phiAbs.Concrete() {
		result = training.Join(result, t.Filter(phi, positive))
	}
	if phiAbs.HasUndefined() {
		result = training.Join(result, t)
	}
	return result
}
