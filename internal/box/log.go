package box

import "dtrobust/internal/logging"

// log is C9's share of C16: one named commonlog logger for every transfer
// function in this package to emit a debug line against, matching the
// evaluator's own "dtrobust.eval" logger in internal/eval.
var log = logging.For("box")
