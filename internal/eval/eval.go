// Package eval implements C10's other half: the visitor that drives
// abstract execution of a Decision-Tree-Learning DSL program over the
// (T#, Φ#, p#) state triple, per spec.md §4.6.
package eval

import (
	"dtrobust/internal/ast"
	"dtrobust/internal/box"
	"dtrobust/internal/distribution"
	dtrerrors "dtrobust/internal/errors"
	"dtrobust/internal/interval"
	"dtrobust/internal/logging"
	"dtrobust/internal/predicate"
	"dtrobust/internal/schema"
	"dtrobust/internal/training"
)

// log is C10's share of C16: one named commonlog logger the evaluator emits
// a debug line against for every AST node it visits.
var log = logging.For("eval")

// State is the evaluator's abstract state triple (T#, Φ#, p#).
type State struct {
	T   training.Set
	Phi predicate.Abstraction
	P   box.Posterior
}

// BottomState is the join identity: every component is its domain's ⊥.
func BottomState() State {
	return State{T: training.Bottom(), Phi: predicate.Empty, P: box.Posterior{}}
}

// JoinState joins two states component-wise, per spec.md §4.5.
func JoinState(a, b State) State {
	return State{
		T:   training.Join(a.T, b.T),
		Phi: predicate.Join(a.Phi, b.Phi),
		P:   distribution.Join(a.P, b.P, interval.Empty, interval.Join),
	}
}

// Evaluator walks a DSL program, threading and mutating a single abstract
// state. It is the sole mutator of that state; every transfer function it
// calls into (package box, or training.Set's impurity meets) is pure.
type Evaluator struct {
	schema schema.Schema
	queryX schema.Vector

	state   State
	halted  bool // true once a Return has been evaluated on this path
	err     error
}

// Eval evaluates program from initial T#, an empty Φ#, and an empty p#, and
// returns the posterior the program's Return produced. It fails with
// ErrMalformedProgram if some reachable path does not end in a tail-position
// Return, or with whatever domain error a transfer function raised.
func Eval(program ast.Node, initial training.Set, s schema.Schema, queryX schema.Vector) (box.Posterior, error) {
	e := &Evaluator{
		schema: s,
		queryX: queryX,
		state:  State{T: initial, Phi: predicate.Empty, P: box.Posterior{}},
	}
	program.Accept(e)
	if e.err != nil {
		return box.Posterior{}, e.err
	}
	if !e.halted {
		return box.Posterior{}, dtrerrors.ErrMalformedProgram
	}
	return e.state.P, nil
}

// evalBranch evaluates a branch node from a refined state, or — if the
// refinement is itself ⊥ (the branch is unreachable) — skips the node
// entirely and reports the branch's contribution as BottomState with halted
// = false. Callers treat an unreachable branch as halted on their own (a
// skipped branch imposes no tail-Return requirement on the overall program).
func (e *Evaluator) evalBranch(node ast.Node, refined training.Set, phi predicate.Abstraction, reachableTest func() bool) (State, bool, error) {
	if !reachableTest() {
		return BottomState(), false, nil
	}
	saved := e.state
	savedHalted := e.halted
	e.state = State{T: refined, Phi: phi, P: e.state.P}
	e.halted = false
	node.Accept(e)
	branchState, branchHalted, branchErr := e.state, e.halted, e.err
	e.state = saved
	e.halted = savedHalted
	e.err = nil // caller decides whether to propagate
	return branchState, branchHalted, branchErr
}

func (e *Evaluator) VisitSequence(n *ast.Sequence) {
	if e.err != nil {
		return
	}
	log.Debugf("visit Sequence: %d nodes", len(n.Nodes))
	for _, child := range n.Nodes {
		if e.halted {
			e.err = dtrerrors.ErrMalformedProgram
			return
		}
		child.Accept(e)
		if e.err != nil {
			return
		}
	}
}

func (e *Evaluator) VisitIfImpurityZero(n *ast.IfImpurityZero) {
	if e.err != nil {
		return
	}
	if e.halted {
		e.err = dtrerrors.ErrMalformedProgram
		return
	}
	log.Debugf("visit IfImpurityZero")
	base := e.state.T

	thenT := base.MeetImpurityEqualsZero()
	thenState, thenHalted, thenErr := e.evalBranch(n.Then, thenT, e.state.Phi, func() bool { return !thenT.IsBottom() })
	if thenErr != nil {
		e.err = thenErr
		return
	}

	elseT := base.MeetImpurityNotEqualsZero()
	elseState, elseHalted, elseErr := e.evalBranch(n.Else, elseT, e.state.Phi, func() bool { return !elseT.IsBottom() })
	if elseErr != nil {
		e.err = elseErr
		return
	}

	e.state = JoinState(thenState, elseState)
	e.halted = (thenT.IsBottom() || thenHalted) && (elseT.IsBottom() || elseHalted)
}

func (e *Evaluator) VisitIfXModelsPhi(n *ast.IfXModelsPhi) {
	if e.err != nil {
		return
	}
	if e.halted {
		e.err = dtrerrors.ErrMalformedProgram
		return
	}
	log.Debugf("visit IfXModelsPhi")
	basePhi := e.state.Phi

	thenPhi := box.MeetXModelsPhi(basePhi, e.queryX, e.schema)
	thenState, thenHalted, thenErr := e.evalBranch(n.Then, e.state.T, thenPhi, func() bool { return !thenPhi.IsBottom() })
	if thenErr != nil {
		e.err = thenErr
		return
	}

	elsePhi := box.MeetXNotModelsPhi(basePhi, e.queryX, e.schema)
	elseState, elseHalted, elseErr := e.evalBranch(n.Else, e.state.T, elsePhi, func() bool { return !elsePhi.IsBottom() })
	if elseErr != nil {
		e.err = elseErr
		return
	}

	e.state = JoinState(thenState, elseState)
	e.halted = (thenPhi.IsBottom() || thenHalted) && (elsePhi.IsBottom() || elseHalted)
}

func (e *Evaluator) VisitBestSplit(*ast.BestSplit) {
	if e.err != nil || e.halted {
		return
	}
	log.Debugf("visit BestSplit")
	e.state.Phi = box.BestSplit(e.state.T)
}

func (e *Evaluator) VisitFilter(n *ast.Filter) {
	if e.err != nil || e.halted {
		return
	}
	log.Debugf("visit Filter(positive=%t)", n.Positive)
	if n.Positive {
		e.state.T = box.FilterPositive(e.state.T, e.state.Phi)
	} else {
		e.state.T = box.FilterNegative(e.state.T, e.state.Phi)
	}
}

func (e *Evaluator) VisitSummary(*ast.Summary) {
	if e.err != nil || e.halted {
		return
	}
	log.Debugf("visit Summary")
	p, err := box.Summary(e.state.T)
	if err != nil {
		e.err = err
		return
	}
	e.state.P = p
}

func (e *Evaluator) VisitReturn(*ast.Return) {
	if e.err != nil || e.halted {
		return
	}
	log.Debugf("visit Return")
	e.halted = true
}
