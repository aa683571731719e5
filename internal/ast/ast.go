// Package ast implements C10's half: the Decision-Tree-Learning DSL's
// abstract syntax tree. Node is the sum type spec.md §3 names (Sequence,
// IfImpurityZero, IfXModelsPhi, BestSplit, Filter, Summary, Return); each
// concrete type reports its own Kind and accepts a Visitor for dispatch,
// grounded on the teacher's Node/NodeType pairing but without the
// metadata/position-tracking machinery that existed only for editor
// tooling — this DSL has no source positions to report.
package ast

import "fmt"

// Kind identifies which of the seven node shapes a Node is.
type Kind int

const (
	KindSequence Kind = iota
	KindIfImpurityZero
	KindIfXModelsPhi
	KindBestSplit
	KindFilter
	KindSummary
	KindReturn
)

func (k Kind) String() string {
	switch k {
	case KindSequence:
		return "Sequence"
	case KindIfImpurityZero:
		return "IfImpurityZero"
	case KindIfXModelsPhi:
		return "IfXModelsPhi"
	case KindBestSplit:
		return "BestSplit"
	case KindFilter:
		return "Filter"
	case KindSummary:
		return "Summary"
	case KindReturn:
		return "Return"
	default:
		return "Unknown"
	}
}

// Node is any DSL AST node. It is immutable after construction; a tree's
// root owns all of its descendants by value or by direct pointer, never by
// shared reference (the DSL has no loops, so no cycles are possible).
type Node interface {
	Kind() Kind
	String() string
	Accept(v Visitor)
}

// Visitor drives abstract evaluation; package eval implements it.
type Visitor interface {
	VisitSequence(*Sequence)
	VisitIfImpurityZero(*IfImpurityZero)
	VisitIfXModelsPhi(*IfXModelsPhi)
	VisitBestSplit(*BestSplit)
	VisitFilter(*Filter)
	VisitSummary(*Summary)
	VisitReturn(*Return)
}

// Sequence applies each child node in order.
type Sequence struct {
	Nodes []Node
}

func (*Sequence) Kind() Kind           { return KindSequence }
func (s *Sequence) Accept(v Visitor)   { v.VisitSequence(s) }
func (s *Sequence) String() string     { return fmt.Sprintf("Sequence(%v)", s.Nodes) }

// IfImpurityZero splits on meet_impurity=0(T#) / meet_impurity≠0(T#),
// evaluates Then from the pure branch and Else from the impure branch, and
// joins the two resulting states.
type IfImpurityZero struct {
	Then Node
	Else Node
}

func (*IfImpurityZero) Kind() Kind         { return KindIfImpurityZero }
func (n *IfImpurityZero) Accept(v Visitor) { v.VisitIfImpurityZero(n) }
func (n *IfImpurityZero) String() string {
	return fmt.Sprintf("IfImpurityZero(then=%v, else=%v)", n.Then, n.Else)
}

// IfXModelsPhi splits on meet_x_models_φ(Φ#, x) / its negation, against the
// evaluator's fixed ambient query vector.
type IfXModelsPhi struct {
	Then Node
	Else Node
}

func (*IfXModelsPhi) Kind() Kind         { return KindIfXModelsPhi }
func (n *IfXModelsPhi) Accept(v Visitor) { v.VisitIfXModelsPhi(n) }
func (n *IfXModelsPhi) String() string {
	return fmt.Sprintf("IfXModelsPhi(then=%v, else=%v)", n.Then, n.Else)
}

// BestSplit recomputes Φ# from the current T#.
type BestSplit struct{}

func (*BestSplit) Kind() Kind         { return KindBestSplit }
func (n *BestSplit) Accept(v Visitor) { v.VisitBestSplit(n) }
func (n *BestSplit) String() string   { return "BestSplit" }

// Filter narrows T# to the half consistent with Φ# (Positive) or its
// complement (!Positive).
type Filter struct {
	Positive bool
}

func (*Filter) Kind() Kind         { return KindFilter }
func (n *Filter) Accept(v Visitor) { v.VisitFilter(n) }
func (n *Filter) String() string {
	if n.Positive {
		return "Filter(+)"
	}
	return "Filter(-)"
}

// Summary recomputes p# from the current T#.
type Summary struct{}

func (*Summary) Kind() Kind         { return KindSummary }
func (n *Summary) Accept(v Visitor) { v.VisitSummary(n) }
func (n *Summary) String() string   { return "Summary" }

// Return halts evaluation; p# at that point is the program's output. A
// program must reach Return in tail position on every path, or evaluation
// fails with MalformedProgram.
type Return struct{}

func (*Return) Kind() Kind         { return KindReturn }
func (n *Return) Accept(v Visitor) { v.VisitReturn(n) }
func (n *Return) String() string   { return "Return" }
