package box

import (
	"dtrobust/internal/predicate"
	"dtrobust/internal/schema"
)

// MeetXModelsPhi implements the IfXModelsPhi refinement C10 needs:
// meet_x_models_φ(Φ#, x). It narrows phiAbs to the candidates x actually
// models under the concrete schema semantics. The ⊥ slot, if present, is
// kept on both sides of the split — when the best split may be undefined,
// neither branch can be ruled out.
func MeetXModelsPhi(phiAbs predicate.Abstraction, x schema.Vector, s schema.Schema) predicate.Abstraction {
	return meetXModels(phiAbs, x, s, true)
}

// MeetXNotModelsPhi is the symmetric refinement for the else-branch.
func MeetXNotModelsPhi(phiAbs predicate.Abstraction, x schema.Vector, s schema.Schema) predicate.Abstraction {
	return meetXModels(phiAbs, x, s, false)
}

func meetXModels(phiAbs predicate.Abstraction, x schema.Vector, s schema.Schema, wantModels bool) predicate.Abstraction {
	if phiAbs.IsBottom() {
		return predicate.Empty
	}
	log.Debugf("meetXModels(wantModels=%t): narrowing %d candidates", wantModels, len(phiAbs.Concrete()))
	var kept []predicate.Symbolic
	for _, phi := range phiAbs.Concrete() {
		models, err := phi.Models(x, s)
		if err != nil {
			continue
		}
		if models == wantModels {
			kept = append(kept, phi)
		}
	}
	return predicate.New(kept, phiAbs.HasUndefined())
}
