// Package assist detects street-name inconsistencies in map entities
// and drives a semi-automated remediation workflow that applies
// corrections through a host map editor.
//
// An Analyzer session scans batches of entities against a rule set,
// records Problems, and keeps dedup state so re-scanning the same data
// is a cheap no-op. The operator reviews detections, accepts exceptions
// for names that are in fact correct, and triggers FixAll, which
// remediates the remaining problems one at a time against the live
// editor model.
//
//	an, err := assist.New(
//	    assist.WithEditor(host),
//	    assist.WithVariant("en"),
//	)
//	if err != nil { ... }
//	an.Analyze(bounds, zoom, batch, nil)
//	err = an.FixAll(ctx)
package assist

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/streetlab/assist/pkg/editor"
	"github.com/streetlab/assist/pkg/events"
	"github.com/streetlab/assist/pkg/exceptions"
	"github.com/streetlab/assist/pkg/geomap"
	"github.com/streetlab/assist/pkg/rules"
)

// Analyzer is one analysis-and-remediation session. Construct with New,
// discard with Reset. All state that Reset clears lives here; nothing
// is package-global.
type Analyzer struct {
	mu sync.Mutex

	editor     editor.Editor
	corrector  rules.Corrector
	variant    rules.Variant
	broker     *events.Broker
	exceptions *exceptions.Store
	logger     *zerolog.Logger

	retryBudget int

	analyzed      map[ObjectRef]struct{}
	problems      []*Problem
	unresolvedIdx int
	skippedErrors int

	// cityRemap and onlyVisible support the bulk city-rename helper.
	cityRemap   map[geomap.CityID]geomap.CityID
	onlyVisible bool
}

// New creates an Analyzer session.
func New(opts ...Option) (*Analyzer, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	a := &Analyzer{
		editor:      cfg.editor,
		corrector:   cfg.corrector,
		variant:     cfg.variant,
		broker:      cfg.broker,
		logger:      cfg.logger,
		retryBudget: cfg.retryBudget,
		analyzed:    make(map[ObjectRef]struct{}),
		cityRemap:   make(map[geomap.CityID]geomap.CityID),
	}

	a.exceptions = cfg.exceptionStore
	if a.exceptions == nil {
		a.exceptions = exceptions.New(cfg.kv, a.broker, a.logger)
	}

	return a, nil
}

// Events returns the session's event broker.
func (a *Analyzer) Events() *events.Broker { return a.broker }

// Exceptions returns the session's exception store. Prefer AddException
// over the store's Add: only AddException propagates skip state to
// already-queued problems.
func (a *Analyzer) Exceptions() *exceptions.Store { return a.exceptions }

// LoadExceptions restores the persisted exception list.
func (a *Analyzer) LoadExceptions() { a.exceptions.Load() }

// Reset discards all analyzer state: analyzed IDs, problems, the
// resolution cursor, and skip counts. The exception list is operator
// data and survives a reset.
func (a *Analyzer) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.analyzed = make(map[ObjectRef]struct{})
	a.problems = nil
	a.unresolvedIdx = 0
	a.skippedErrors = 0
}

// Problems returns the detected problems in detection order. The slice
// is a copy; the problems themselves are shared and must be treated as
// read-only.
func (a *Analyzer) Problems() []*Problem {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*Problem, len(a.problems))
	copy(out, a.problems)
	return out
}

// UnresolvedErrorNum returns how many problems are pending: detected,
// not yet fixed, not skipped.
func (a *Analyzer) UnresolvedErrorNum() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.problems) - a.unresolvedIdx - a.skippedErrors
}

// FixedErrorNum returns how many problems have been resolved.
func (a *Analyzer) FixedErrorNum() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.unresolvedIdx
}

// SkippedErrorNum returns how many problems the operator excepted.
func (a *Analyzer) SkippedErrorNum() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.skippedErrors
}

// AddException accepts an original name as correct: it is added to the
// exception store (suppressing future detection) and every still-pending
// problem with that reason is marked skipped. onSkipped, when non-nil,
// is invoked once per newly skipped problem so the UI can drop it
// immediately.
func (a *Analyzer) AddException(reason string, onSkipped func(geomap.EntityID)) {
	a.exceptions.Add(reason)

	a.mu.Lock()
	var skipped []geomap.EntityID
	for i := a.unresolvedIdx; i < len(a.problems); i++ {
		p := a.problems[i]
		if !p.skip && p.Reason == reason {
			p.skip = true
			a.skippedErrors++
			skipped = append(skipped, p.Object.ID)
		}
	}
	a.mu.Unlock()

	for _, id := range skipped {
		if onSkipped != nil {
			onSkipped(id)
		}
	}
}

// RemoveException drops the exception at the given list position.
// Already-skipped problems stay skipped; only future detection is
// affected.
func (a *Analyzer) RemoveException(index int) {
	a.exceptions.Remove(index)
}
