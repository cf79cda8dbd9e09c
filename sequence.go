package assist

import (
	"context"
	"runtime"

	"github.com/streetlab/assist/pkg/events"
)

// FixAll remediates every pending, non-skipped problem, strictly in
// detection order, one at a time. The next problem starts only after
// the previous one reached a terminal outcome; this is the sole
// concurrency control over the host's shared action log and viewport.
//
// Skipped problems are passed over without a workflow run. A failed or
// user-fixed problem never blocks the ones after it. When the sequence
// is exhausted a fix.completed event fires exactly once. Cancellation
// stops between problems (or while a fix is waiting on the host) and
// leaves the remainder pending; fix.completed is not published then.
func (a *Analyzer) FixAll(ctx context.Context) error {
	a.mu.Lock()
	start := a.unresolvedIdx
	a.mu.Unlock()

	var stats events.FixCompletedData

	for i := start; ; i++ {
		a.mu.Lock()
		if i >= len(a.problems) {
			a.mu.Unlock()
			break
		}
		p := a.problems[i]
		a.mu.Unlock()

		if p.skip {
			stats.Skipped++
			continue
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		outcome := a.FixProblem(ctx, p)
		if outcome.Kind == OutcomeCanceled {
			return ctx.Err()
		}

		a.mu.Lock()
		a.unresolvedIdx++
		a.mu.Unlock()

		switch outcome.Kind {
		case OutcomeFixed:
			stats.Fixed++
		case OutcomeUserFixed:
			stats.UserFixed++
		case OutcomeFailed:
			stats.Failed++
		}

		// Yield between problems so a long run does not monopolize the
		// host's event loop.
		runtime.Gosched()
	}

	a.broker.Publish(events.FixCompleted, stats)
	return nil
}
