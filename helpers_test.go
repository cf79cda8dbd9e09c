package assist_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streetlab/assist"
	"github.com/streetlab/assist/pkg/editor/memedit"
	"github.com/streetlab/assist/pkg/events"
	"github.com/streetlab/assist/pkg/geomap"
	"github.com/streetlab/assist/pkg/logging"
)

var (
	testBounds = geomap.NewBounds(-1, -1, 1, 1)
	testZoom   = 16
)

// newBatch builds the canonical fixture: one venue on "Main St", which
// the default rules correct to "Main Street".
func newBatch() *geomap.Batch {
	approved := true
	return &geomap.Batch{
		Venues: []*geomap.Entity{{
			ID:          100,
			Geometry:    geomap.BoundsAround(geomap.Point{X: 0.5, Y: 0.5}),
			Permissions: geomap.PermEditProperties,
			Approved:    &approved,
			StreetID:    10,
		}},
		Streets: []*geomap.Street{{ID: 10, Name: "Main St", CityID: 1}},
		Cities:  []*geomap.City{{ID: 1, Name: "Springfield", StateID: 2, CountryID: 3}},
	}
}

// newSession builds an analyzer over an in-memory editor holding the
// batch.
func newSession(t *testing.T, batch *geomap.Batch, opts ...assist.Option) (*assist.Analyzer, *memedit.Editor) {
	t.Helper()

	ed := memedit.FromBatch(batch)
	ed.SetExtent(testBounds)

	opts = append([]assist.Option{
		assist.WithEditor(ed),
		assist.WithLogger(&logging.Nop),
	}, opts...)

	an, err := assist.New(opts...)
	require.NoError(t, err)
	return an, ed
}

// recordEvents subscribes to the session broker and collects every
// event of the given types, in delivery order.
func recordEvents(t *testing.T, an *assist.Analyzer, types ...events.EventType) *[]events.Event {
	t.Helper()

	want := make(map[events.EventType]bool, len(types))
	for _, typ := range types {
		want[typ] = true
	}

	var got []events.Event
	cancel := an.Events().Subscribe(events.SubscriberFunc(func(e events.Event) error {
		if len(want) == 0 || want[e.Type] {
			got = append(got, e)
		}
		return nil
	}))
	t.Cleanup(cancel)
	return &got
}

// requireInvariant asserts the session's counter identity:
// unresolved + fixed + skipped always equals the problem count.
func requireInvariant(t *testing.T, an *assist.Analyzer) {
	t.Helper()
	total := len(an.Problems())
	require.Equal(t, total, an.UnresolvedErrorNum()+an.FixedErrorNum()+an.SkippedErrorNum())
	require.GreaterOrEqual(t, an.UnresolvedErrorNum(), 0)
}
