package assist_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetlab/assist"
	"github.com/streetlab/assist/pkg/editor/memedit"
	"github.com/streetlab/assist/pkg/events"
	"github.com/streetlab/assist/pkg/geomap"
)

func TestFixSubmitsOneCorrection(t *testing.T) {
	batch := newBatch()
	an, ed := newSession(t, batch)
	an.Analyze(testBounds, testZoom, batch, nil)
	require.Len(t, an.Problems(), 1)

	got := recordEvents(t, an, events.IssueResolved)

	require.NoError(t, an.FixAll(context.Background()))

	// One get-or-create for the corrected street, one attribute update.
	journal := ed.Journal()
	require.Len(t, journal, 2)
	assert.Equal(t, memedit.ActionAddStreet, journal[0].Kind)
	assert.Equal(t, "Main Street", journal[0].Name)
	assert.Equal(t, geomap.CityID(1), journal[0].CityID)
	assert.Equal(t, memedit.ActionUpdateEntity, journal[1].Kind)
	assert.Equal(t, geomap.EntityID(100), journal[1].EntityID)

	// The venue now references the street resolved by (city, name).
	street, ok := ed.StreetByName(1, "Main Street")
	require.True(t, ok)
	ent, ok := ed.Entity(geomap.Venue, 100)
	require.True(t, ok)
	assert.Equal(t, street.ID, ent.StreetID)

	assert.Equal(t, 1, an.FixedErrorNum())
	assert.Equal(t, 0, an.UnresolvedErrorNum())
	requireInvariant(t, an)

	require.Len(t, *got, 1)
	assert.Equal(t, geomap.EntityID(100), (*got)[0].Data.(events.ResolutionData).ID)
}

func TestFixReusesExistingStreet(t *testing.T) {
	batch := newBatch()
	batch.Streets = append(batch.Streets, &geomap.Street{ID: 11, Name: "Main Street", CityID: 1})
	an, ed := newSession(t, batch)
	an.Analyze(testBounds, testZoom, batch, nil)

	require.NoError(t, an.FixAll(context.Background()))

	// The corrected street already existed, so only the update is
	// journaled.
	assert.Equal(t, 0, ed.JournalCount(memedit.ActionAddStreet))
	assert.Equal(t, 1, ed.JournalCount(memedit.ActionUpdateEntity))

	ent, _ := ed.Entity(geomap.Venue, 100)
	assert.Equal(t, geomap.StreetID(11), ent.StreetID)
}

func TestFixRespectsManualCorrection(t *testing.T) {
	batch := newBatch()
	an, ed := newSession(t, batch)
	an.Analyze(testBounds, testZoom, batch, nil)

	// The operator fixes the name by hand between detection and fix.
	street, ok := ed.Street(10)
	require.True(t, ok)
	street.Name = "Main Boulevard"

	userFixed := recordEvents(t, an, events.UserIssueFixed)
	resolved := recordEvents(t, an, events.IssueResolved)

	require.NoError(t, an.FixAll(context.Background()))

	// No mutation was submitted; the manual edit wins.
	assert.Empty(t, ed.Journal())

	require.Len(t, *userFixed, 1)
	data := (*userFixed)[0].Data.(events.ResolutionData)
	assert.Equal(t, geomap.EntityID(100), data.ID)
	assert.Equal(t, "Main Boulevard", data.CurrentName)

	require.Len(t, *resolved, 1)
	assert.Equal(t, 1, an.FixedErrorNum())
	requireInvariant(t, an)
}

func TestFixChecksLiveAttributeNotDetectionSnapshot(t *testing.T) {
	batch := newBatch()
	an, ed := newSession(t, batch)
	an.Analyze(testBounds, testZoom, batch, nil)

	// The operator repointed the venue at a different street. The lock
	// check must follow the entity's live reference.
	ed.AddStreet(&geomap.Street{ID: 50, Name: "Elm Street", CityID: 1})
	ent, _ := ed.Entity(geomap.Venue, 100)
	ent.StreetID = 50

	userFixed := recordEvents(t, an, events.UserIssueFixed)
	require.NoError(t, an.FixAll(context.Background()))

	assert.Equal(t, 0, ed.JournalCount(memedit.ActionUpdateEntity))
	require.Len(t, *userFixed, 1)
	assert.Equal(t, "Elm Street", (*userFixed)[0].Data.(events.ResolutionData).CurrentName)
}

func TestFixRetriesUntilBudgetExhausted(t *testing.T) {
	batch := newBatch()
	an, ed := newSession(t, batch, assist.WithRetryBudget(3))
	an.Analyze(testBounds, testZoom, batch, nil)

	ed.Hide(geomap.Venue, 100, -1)

	failed := recordEvents(t, an, events.IssueFixFailed)
	resolved := recordEvents(t, an, events.IssueResolved)

	require.NoError(t, an.FixAll(context.Background()))

	// No mutation, one failure signal, one resolution signal.
	assert.Empty(t, ed.Journal())
	require.Len(t, *failed, 1)
	require.Len(t, *resolved, 1)

	// Each retry recenters on the detection position; the final
	// attempt fails without another recenter.
	assert.Equal(t, 2, ed.Recenters())
	center, zoom := ed.Center()
	assert.Equal(t, geomap.Project(testBounds.Center()), center)
	assert.Equal(t, testZoom, zoom)

	// A failed problem still advances the cursor so later problems are
	// not blocked.
	assert.Equal(t, 1, an.FixedErrorNum())
	requireInvariant(t, an)
}

func TestFixSucceedsAfterTransientMiss(t *testing.T) {
	batch := newBatch()
	an, ed := newSession(t, batch)
	an.Analyze(testBounds, testZoom, batch, nil)

	// Invisible for two recenters, then found again.
	ed.Hide(geomap.Venue, 100, 2)

	failed := recordEvents(t, an, events.IssueFixFailed)
	require.NoError(t, an.FixAll(context.Background()))

	assert.Empty(t, *failed)
	assert.Equal(t, 1, ed.JournalCount(memedit.ActionUpdateEntity))
	assert.Equal(t, 2, ed.Recenters())
	assert.Equal(t, 1, an.FixedErrorNum())
}

func TestFixProblemOutcomes(t *testing.T) {
	batch := newBatch()
	an, ed := newSession(t, batch, assist.WithRetryBudget(2))
	an.Analyze(testBounds, testZoom, batch, nil)
	p := an.Problems()[0]

	ed.Hide(geomap.Venue, 100, -1)
	outcome := an.FixProblem(context.Background(), p)
	assert.Equal(t, assist.OutcomeFailed, outcome.Kind)
	assert.Equal(t, geomap.EntityID(100), outcome.ID)

	ed.Reveal(geomap.Venue, 100)
	outcome = an.FixProblem(context.Background(), p)
	assert.Equal(t, assist.OutcomeFixed, outcome.Kind)

	// The street now matches the correction, so a re-run reports a
	// user fix with the corrected name.
	outcome = an.FixProblem(context.Background(), p)
	assert.Equal(t, assist.OutcomeUserFixed, outcome.Kind)
	assert.Equal(t, "Main Street", outcome.CurrentName)
}

func TestFixAllStopsWhenCanceled(t *testing.T) {
	batch := newBatch()
	an, _ := newSession(t, batch)
	an.Analyze(testBounds, testZoom, batch, nil)

	completed := recordEvents(t, an, events.FixCompleted)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := an.FixAll(ctx)
	require.ErrorIs(t, err, context.Canceled)

	// Nothing was resolved and the run did not complete.
	assert.Equal(t, 0, an.FixedErrorNum())
	assert.Equal(t, 1, an.UnresolvedErrorNum())
	assert.Empty(t, *completed)
}
