package assist

import (
	"time"

	"github.com/agentstation/utc"

	"github.com/streetlab/assist/pkg/events"
	"github.com/streetlab/assist/pkg/geomap"
)

// ProblemCallback receives each detection as it happens, alongside the
// problem.detected event. Position is in display coordinates.
type ProblemCallback func(obj ObjectRef, title, reason string, position geomap.Point)

// Analyze scans a batch of entities for street-name problems.
//
// The pass is read-only with respect to the host: it grows the
// session's problem list and analyzed set but submits no mutations.
// Every entity is analyzed at most once per session, so re-running
// Analyze over an unchanged batch detects nothing new. bounds and zoom
// describe the view the batch was loaded for, in geographic
// coordinates; their projected center is snapshotted into each problem
// for retry recentering.
func (a *Analyzer) Analyze(bounds geomap.Bounds, zoom int, batch *geomap.Batch, onProblemDetected ProblemCallback) {
	start := time.Now()
	a.logger.Info().
		Int("segments", len(batch.Segments)).
		Int("venues", len(batch.Venues)).
		Msg("Starting analysis pass")

	// One lookup table per pass, not per entity.
	streets := batch.StreetTable()
	detectPos := geomap.Project(bounds.Center())
	detected := 0

	for _, variant := range geomap.Variants() {
		attr := variant.StreetAttribute()

		for _, ent := range batch.Entities(variant) {
			ent.Type = variant
			ref := ObjectRef{ID: ent.ID, Type: variant}

			if a.alreadyAnalyzed(ref) {
				continue
			}

			// In only-visible mode (after a bulk city rename) entities
			// outside the current view are left unanalyzed so a later
			// pass can pick them up once they scroll into view.
			if a.visibleOnly() && !ent.Geometry.Intersects(a.editor.Extent()) {
				continue
			}

			if ent.Editable() {
				if p, title, center, ok := a.checkStreet(ent, attr, streets, detectPos, zoom); ok {
					a.push(p)
					detected++
					a.broker.Publish(events.ProblemDetected, events.ProblemData{
						ID:       p.Object.ID,
						Variant:  p.Object.Type,
						Title:    title,
						Reason:   p.Reason,
						Position: center,
					})
					if onProblemDetected != nil {
						onProblemDetected(p.Object, title, p.Reason, center)
					}
				}
			}

			a.markAnalyzed(ref)
		}
	}

	a.logger.Info().
		Int("detected", detected).
		Dur("elapsed", time.Since(start)).
		Msg("Analysis pass finished")
}

// checkStreet resolves an entity's street and runs it through the rule
// engine. It returns the problem, its display title, and the entity's
// projected center when a mismatch is detected.
func (a *Analyzer) checkStreet(ent *geomap.Entity, attr geomap.Attribute, streets map[geomap.StreetID]*geomap.Street, detectPos geomap.Point, zoom int) (*Problem, string, geomap.Point, bool) {
	street, ok := streets[ent.StreetRef(attr)]
	if !ok {
		return nil, "", geomap.Point{}, false
	}
	if street.IsEmpty || street.Name == "" {
		return nil, "", geomap.Point{}, false
	}
	if a.exceptions.Contains(street.Name) {
		return nil, "", geomap.Point{}, false
	}

	correction, err := a.corrector.Correct(a.variant, street.Name)
	if err != nil {
		// Non-fatal: exclude the entity from this pass only.
		a.logger.Warn().
			Err(err).
			Str("street", street.Name).
			Str("entity", ent.ID.String()).
			Msg("Street name failed rule classification")
		return nil, "", geomap.Point{}, false
	}
	if correction.Value == street.Name {
		return nil, "", geomap.Point{}, false
	}

	p := &Problem{
		Object:        ObjectRef{ID: ent.ID, Type: ent.Type},
		Reason:        street.Name,
		AttrName:      attr,
		NewStreetName: correction.Value,
		IsEmpty:       street.IsEmpty,
		CityID:        a.NewCityID(street.CityID),
		DetectPos:     detectPos,
		Zoom:          zoom,
		DetectedAt:    utc.Now(),
	}
	title := problemTitle(ent.Type, street.Name, correction.Value)
	center := geomap.Project(ent.Geometry.Center())
	return p, title, center, true
}

func (a *Analyzer) alreadyAnalyzed(ref ObjectRef) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.analyzed[ref]
	return ok
}

func (a *Analyzer) markAnalyzed(ref ObjectRef) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.analyzed[ref] = struct{}{}
}

func (a *Analyzer) push(p *Problem) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.problems = append(a.problems, p)
}

func (a *Analyzer) visibleOnly() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.onlyVisible
}
