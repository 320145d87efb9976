// Package logging builds the slog JSON loggers used by gathermeta.
//
// Records go to stderr as JSON with module and version attributes. At debug
// level the source location is added. Levels are parsed case-insensitively
// (debug, info, warn/warning, error); anything else means info.
//
// The CLI installs the default logger from --log-level or LOG_LEVEL:
//
//	logger := logging.SetDefaultStructuredLoggerWithLevel("gathermeta", version, level)
//
// The recorder never reads the default; it receives a logger explicitly:
//
//	logger := logging.NewStructuredLogger("gathermeta", version, "debug")
//	rec, err := recorder.New(outdir, recorder.WithLogger(logger))
//
// A command that outlives its timeout is reported like this:
//
//	{"time":"2025-01-15T10:30:10.004Z","level":"WARN",
//	 "msg":"process did not finish in time, output will be incomplete",
//	 "module":"gathermeta","version":"v0.1.0","name":"lstopo","timeout":"10s"}
package logging
