// Package logging wraps commonlog the way the teacher's language-server
// entry point does (cmd/kanso-lsp/main.go: commonlog.Configure at startup,
// one named logger per subsystem), adapted for a CLI rather than an LSP
// session: verbosity is a flag instead of hardcoded, and callers fetch a
// scoped logger per component (evaluator, box domain, CLI) instead of sharing
// one global.
package logging

import "github.com/tliron/commonlog"

// Configure wires commonlog's default backend at the given verbosity
// (0 = quiet, higher = more detail), matching commonlog.Configure's own
// (maxLevel int, backend Backend) signature with the default backend.
func Configure(verbosity int) {
	commonlog.Configure(verbosity, nil)
}

// For returns a logger scoped to name, e.g. "eval", "box", "cli".
func For(name string) commonlog.Logger {
	return commonlog.GetLogger("dtrobust." + name)
}
