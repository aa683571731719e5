package box

import (
	"dtrobust/internal/distribution"
	dtrerrors "dtrobust/internal/errors"
	"dtrobust/internal/interval"
	"dtrobust/internal/training"
)

// Summary implements C9's summary: T# -> P#, the posterior class-probability
// interval distribution a Summary AST node returns. Each class's probability
// is widened from its base count by the dropout/add/flip budgets and divided
// by the row-count total, itself similarly widened.
//
// It returns ErrEmptyAbstraction if the total's upper bound is zero: every
// concretization of t has no surviving rows, so no posterior exists.
func Summary(t training.Set) (Posterior, error) {
	if t.IsBottom() {
		return Posterior{}, dtrerrors.ErrEmptyAbstraction
	}
	log.Debugf("summary: classes=%d", len(t.DS.Schema.Classes))

	total := totalInterval(t.Refs.Len(), t.NumDropout, t.NumAdd)
	if total.Hi == 0 {
		return Posterior{}, dtrerrors.ErrEmptyAbstraction
	}

	base := t.BaseCounts()
	classes := base.Classes()
	values := make(map[string]interval.Interval, len(classes))
	for _, c := range classes {
		n, _ := base.Get(c)
		ci := countInterval(n, t.NumDropout, t.NumAdd, t.NumLabelsFlip)
		p, err := ci.DivPositive(total)
		if err != nil {
			return Posterior{}, dtrerrors.ErrNumeric
		}
		values[c] = p.Clamp01()
	}
	return distribution.FromMap(values), nil
}
