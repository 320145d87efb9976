// Package errors provides structured error types for better observability
// and programmatic error handling across gathermeta.
//
// Per-command failures never surface as errors; the recorder folds them into
// the command's Result. StructuredError is reserved for conditions that stop
// a run or a publishing step.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeStderrFatal,
//	    "process wrote to stderr",
//	    nil,
//	    map[string]any{
//	        "name":   "lspci",
//	        "stderr": "lspci.err",
//	    },
//	)
//
//	if errors.HasCode(err, errors.ErrCodeStderrFatal) {
//	    os.Exit(2)
//	}
package errors
