package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cgalab/format-converter/pkg/observability"
)

// newLogger creates a logger writing to w at level, with timestamps
// formatted as "HH:MM:SS.ms".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the completion of an operation with its elapsed time.
// It is not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Converted 3 files (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Conversion Hooks
// =============================================================================

// logHooks reports pipeline stages at debug level.
type logHooks struct {
	logger *log.Logger
}

// NewLogHooks returns conversion hooks that log every stage to l.
func NewLogHooks(l *log.Logger) observability.ConversionHooks {
	return logHooks{logger: l}
}

func (h logHooks) OnLoadStart(_ context.Context, format, source string) {
	h.logger.Debug("load started", "format", format, "source", source)
}

func (h logHooks) OnLoadComplete(_ context.Context, format, source string, graphs int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "format", format, "source", source, "duration", d, "err", err)
		return
	}
	h.logger.Debug("load finished", "format", format, "source", source, "graphs", graphs, "duration", d)
}

func (h logHooks) OnTransform(_ context.Context, source string, scaled, randomized bool, d time.Duration, err error) {
	h.logger.Debug("transform finished", "source", source, "scaled", scaled, "randomized", randomized, "duration", d, "err", err)
}

func (h logHooks) OnWriteStart(_ context.Context, format, target string) {
	h.logger.Debug("write started", "format", format, "target", target)
}

func (h logHooks) OnWriteComplete(_ context.Context, format, target string, n int64, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("write failed", "format", format, "target", target, "duration", d, "err", err)
		return
	}
	h.logger.Debug("write finished", "format", format, "target", target, "bytes", n, "duration", d)
}
