package assist

import (
	"context"

	"github.com/streetlab/assist/pkg/events"
	"github.com/streetlab/assist/pkg/geomap"
)

// OutcomeKind classifies how a fix attempt ended.
type OutcomeKind int

// Fix outcomes.
const (
	// OutcomeFixed: the correction was submitted to the action log.
	OutcomeFixed OutcomeKind = iota

	// OutcomeUserFixed: the live name no longer matched the problem's
	// reason, so the operator already fixed it by hand. No mutation was
	// submitted.
	OutcomeUserFixed

	// OutcomeFailed: the entity stayed missing for the whole retry
	// budget, or the action log rejected the mutation.
	OutcomeFailed

	// OutcomeCanceled: the context was canceled while waiting for the
	// host. No terminal event was published; the problem stays pending.
	OutcomeCanceled
)

// Outcome is the terminal result of FixProblem.
type Outcome struct {
	Kind        OutcomeKind
	ID          geomap.EntityID
	CurrentName string // live name observed on OutcomeUserFixed
}

// fixAttempt is the remediation state machine for one problem: the
// problem under repair and the attempts remaining before a missing
// entity is declared gone.
type fixAttempt struct {
	problem      *Problem
	attemptsLeft int
}

// FixProblem resolves one problem against the live editor model.
//
// If the entity is present and its street name still equals the
// problem's reason, the corrected street is resolved (get-or-create
// under the problem's city) and a single update action is submitted.
// If the name changed since detection, the operator's manual edit wins
// and nothing is mutated. If the entity is missing, the view is
// recentered on the detection position and the attempt repeats after
// the host signals the view has settled, up to the retry budget.
//
// Exactly one issue.resolved event is published per call, whatever the
// outcome, unless ctx is canceled first.
func (a *Analyzer) FixProblem(ctx context.Context, p *Problem) Outcome {
	st := fixAttempt{problem: p, attemptsLeft: a.retryBudget}

	for {
		if outcome, done := a.attempt(&st); done {
			return a.resolve(outcome)
		}

		a.logger.Debug().
			Str("entity", p.Object.ID.String()).
			Int("attempts_left", st.attemptsLeft).
			Msg("Entity not loaded, recentering and waiting for the view to settle")

		// Pair the subscription to this attempt so no listener leaks.
		settled, cancel := a.editor.SettleEvents()
		a.editor.SetCenter(p.DetectPos, p.Zoom)
		select {
		case <-settled:
			cancel()
		case <-ctx.Done():
			cancel()
			return Outcome{Kind: OutcomeCanceled, ID: p.Object.ID}
		}
	}
}

// attempt runs one pass of the state machine. done is false only when
// the entity was missing and attempts remain.
func (a *Analyzer) attempt(st *fixAttempt) (Outcome, bool) {
	p := st.problem

	ent, ok := a.editor.Entity(p.Object.Type, p.Object.ID)
	if !ok {
		st.attemptsLeft--
		if st.attemptsLeft <= 0 {
			return Outcome{Kind: OutcomeFailed, ID: p.Object.ID}, true
		}
		return Outcome{}, false
	}

	// Optimistic lock: compare the live name of the street the entity
	// references right now, not the street recorded at detection time.
	currentName := ""
	if street, found := a.editor.Street(ent.StreetRef(p.AttrName)); found {
		currentName = street.Name
	}
	if currentName != p.Reason {
		return Outcome{Kind: OutcomeUserFixed, ID: p.Object.ID, CurrentName: currentName}, true
	}

	street, err := a.editor.AddOrGetStreet(p.CityID, p.NewStreetName, p.IsEmpty)
	if err != nil {
		a.logger.Error().
			Err(err).
			Str("entity", p.Object.ID.String()).
			Str("street", p.NewStreetName).
			Msg("Failed to resolve corrected street")
		return Outcome{Kind: OutcomeFailed, ID: p.Object.ID}, true
	}
	if err := a.editor.UpdateEntityStreet(p.Object.Type, p.Object.ID, p.AttrName, street.ID); err != nil {
		a.logger.Error().
			Err(err).
			Str("entity", p.Object.ID.String()).
			Msg("Failed to submit street update")
		return Outcome{Kind: OutcomeFailed, ID: p.Object.ID}, true
	}

	return Outcome{Kind: OutcomeFixed, ID: p.Object.ID}, true
}

// resolve publishes the terminal events for an outcome: the
// kind-specific event first, then issue.resolved exactly once.
func (a *Analyzer) resolve(outcome Outcome) Outcome {
	switch outcome.Kind {
	case OutcomeUserFixed:
		a.broker.Publish(events.UserIssueFixed, events.ResolutionData{
			ID:          outcome.ID,
			CurrentName: outcome.CurrentName,
		})
	case OutcomeFailed:
		a.broker.Publish(events.IssueFixFailed, events.ResolutionData{ID: outcome.ID})
	}
	a.broker.Publish(events.IssueResolved, events.ResolutionData{ID: outcome.ID})
	return outcome
}
