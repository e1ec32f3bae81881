// Package logging builds the structured logger shared by the CLI and the
// task store.
package logging

import (
	"io"
	"time"

	"github.com/go-kratos/kratos/v2/log"
)

// New returns a logger writing to w.
// Only warnings and errors pass unless debug is set.
func New(w io.Writer, debug bool) log.Logger {
	level := log.LevelWarn
	if debug {
		level = log.LevelDebug
	}
	logger := log.With(log.NewStdLogger(w),
		"ts", log.Timestamp(time.DateTime),
	)
	return log.NewFilter(logger, log.FilterLevel(level))
}

// Discard returns a logger that drops everything.
func Discard() log.Logger {
	return log.NewStdLogger(io.Discard)
}
