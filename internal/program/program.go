// Package program implements the program builder spec.md §6 names as an
// external collaborator: synthesizing a canonical decision-tree-shaped AST
// of a prescribed depth, grounded on the original implementation's
// ASTNode::buildTree (original_source/include/ASTNode.h) — its body was not
// retained in the retrieval pack, so the recursive shape below is this
// package's own resolution of spec.md §6's prose description, recorded as
// an Open Question decision in DESIGN.md.
package program

import "dtrobust/internal/ast"

// BuildCanonical constructs a left-deep decision-tree program of the given
// depth: at each level, a purity check short-circuits to Summary+Return;
// otherwise BestSplit recomputes Φ#, and IfXModelsPhi descends into the
// branch the query vector actually falls into, filtering T# accordingly
// before recursing one level shallower. depth <= 0 yields the trivial
// one-level program (Summary, Return).
func BuildCanonical(depth int) ast.Node {
	if depth <= 0 {
		return leaf()
	}
	return &ast.IfImpurityZero{
		Then: leaf(),
		Else: &ast.Sequence{Nodes: []ast.Node{
			&ast.BestSplit{},
			&ast.IfXModelsPhi{
				Then: &ast.Sequence{Nodes: []ast.Node{
					&ast.Filter{Positive: true},
					BuildCanonical(depth - 1),
				}},
				Else: &ast.Sequence{Nodes: []ast.Node{
					&ast.Filter{Positive: false},
					BuildCanonical(depth - 1),
				}},
			},
		}},
	}
}

func leaf() ast.Node {
	return &ast.Sequence{Nodes: []ast.Node{&ast.Summary{}, &ast.Return{}}}
}
