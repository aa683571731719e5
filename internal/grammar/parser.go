package grammar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"dtrobust/internal/ast"
)

// Parse parses source into a DSL program AST. name is used only in
// diagnostics (typically the source file path).
func Parse(name, source string) (ast.Node, error) {
	parser, err := participle.Build[Program](
		participle.Lexer(Lexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("grammar: building parser: %w", err)
	}

	prog, err := parser.ParseString(name, source)
	if err != nil {
		printDiagnostic(source, err)
		return nil, err
	}
	return buildStmts(prog.Stmts), nil
}

// diagnostic is a caret-pointer rendering of one parse failure: the offending
// line plus a column marker beneath it.
type diagnostic struct {
	file            string
	line, col       int
	offendingLine   string
	message         string
	positionUnknown bool
}

// printDiagnostic reports err as colored output on standard output. An error
// that is not a participle.Error gets a flat one-line report; a
// participle.Error carries enough position info to render a caret.
func printDiagnostic(src string, err error) {
	var pe participle.Error
	if !errors.As(err, &pe) {
		color.Red("grammar: %v", err)
		return
	}
	pos := pe.Position()
	lines := strings.Split(src, "\n")
	d := diagnostic{
		file: pos.Filename, line: pos.Line, col: pos.Column,
		message:         pe.Message(),
		positionUnknown: pos.Line < 1 || pos.Line > len(lines),
	}
	if !d.positionUnknown {
		d.offendingLine = lines[pos.Line-1]
	}
	d.print()
}

func (d diagnostic) print() {
	if d.positionUnknown {
		color.Red("%s: %s (position unavailable)", d.file, d.message)
		return
	}
	color.Red("%s:%d:%d: %s", d.file, d.line, d.col, d.message)
	fmt.Println(d.offendingLine)
	color.HiRed(caretAt(d.col))
}

// caretAt builds a marker line with '^' under column col (1-indexed).
func caretAt(col int) string {
	var b strings.Builder
	for i := 1; i < col; i++ {
		b.WriteByte(' ')
	}
	b.WriteByte('^')
	return b.String()
}

// buildStmts converts a statement list into a single ast.Node, wrapping
// multiple statements in a Sequence and unwrapping a singleton list.
func buildStmts(stmts []*Stmt) ast.Node {
	switch len(stmts) {
	case 0:
		return &ast.Sequence{}
	case 1:
		return buildStmt(stmts[0])
	default:
		nodes := make([]ast.Node, len(stmts))
		for i, s := range stmts {
			nodes[i] = buildStmt(s)
		}
		return &ast.Sequence{Nodes: nodes}
	}
}

func buildStmt(s *Stmt) ast.Node {
	switch {
	case s.Seq != nil:
		return buildStmts(s.Seq.Stmts)
	case s.IfImpurity != nil:
		return &ast.IfImpurityZero{
			Then: buildStmts(s.IfImpurity.Then),
			Else: buildStmts(s.IfImpurity.Else),
		}
	case s.IfModels != nil:
		return &ast.IfXModelsPhi{
			Then: buildStmts(s.IfModels.Then),
			Else: buildStmts(s.IfModels.Else),
		}
	case s.BestSplit != nil:
		return &ast.BestSplit{}
	case s.Filter != nil:
		return &ast.Filter{Positive: s.Filter.Polarity == "+"}
	case s.Summary != nil:
		return &ast.Summary{}
	case s.Return != nil:
		return &ast.Return{}
	default:
		// participle guarantees exactly one alternative matched; reaching
		// here means a grammar/builder mismatch, not user input.
		panic("grammar: Stmt matched no alternative")
	}
}
