package workers

import (
	"context"
	"errors"

	"github.com/MKhiriev/frontkit/internal/adapter"
	"github.com/MKhiriev/frontkit/internal/logger"
	"github.com/MKhiriev/frontkit/internal/proxy"
)

// UpstreamWorker checks once at startup that every proxy target answers and
// warns about the ones that do not. It never fails the dev command.
type UpstreamWorker struct {
	checker adapter.UpstreamChecker
	table   proxy.Table
	logger  *logger.Logger
}

// NewUpstreamWorker returns a worker checking the targets of table.
func NewUpstreamWorker(checker adapter.UpstreamChecker, table proxy.Table, logger *logger.Logger) *UpstreamWorker {
	return &UpstreamWorker{checker: checker, table: table, logger: logger}
}

// Run implements [Worker].
func (w *UpstreamWorker) Run(ctx context.Context) error {
	for _, rule := range w.table {
		if ctx.Err() != nil {
			return nil
		}

		status, err := w.checker.Check(ctx, rule.Target)
		switch {
		case errors.Is(err, context.Canceled):
			return nil
		case err != nil:
			w.logger.Warn().
				Err(err).
				Str("context", rule.Context).
				Str("target", rule.Target).
				Msg("proxy target is not reachable, requests will fail with 502")
		case !status.Healthy():
			w.logger.Warn().
				Str("context", rule.Context).
				Str("target", status.Target).
				Int("status", status.StatusCode).
				Msg("proxy target answers with a server error")
		default:
			w.logger.Debug().
				Str("context", rule.Context).
				Str("target", status.Target).
				Dur("latency", status.Latency).
				Msg("proxy target is up")
		}
	}
	return nil
}
