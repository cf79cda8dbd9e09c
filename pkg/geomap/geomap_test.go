package geomap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetlab/assist/pkg/geomap"
)

func TestBoundsCenter(t *testing.T) {
	b := geomap.NewBounds(0, 0, 10, 20)
	assert.Equal(t, geomap.Point{X: 5, Y: 10}, b.Center())
}

func TestNewBoundsNormalizesCorners(t *testing.T) {
	b := geomap.NewBounds(10, 20, 0, 0)
	assert.Equal(t, geomap.NewBounds(0, 0, 10, 20), b)
}

func TestBoundsIntersects(t *testing.T) {
	a := geomap.NewBounds(0, 0, 10, 10)

	tests := []struct {
		name string
		b    geomap.Bounds
		want bool
	}{
		{"overlapping", geomap.NewBounds(5, 5, 15, 15), true},
		{"contained", geomap.NewBounds(2, 2, 8, 8), true},
		{"touching edge", geomap.NewBounds(10, 0, 20, 10), true},
		{"disjoint", geomap.NewBounds(11, 11, 20, 20), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Intersects(tt.b))
			assert.Equal(t, tt.want, tt.b.Intersects(a))
		})
	}
}

func TestProjectRoundTrip(t *testing.T) {
	points := []geomap.Point{
		{X: 0, Y: 0},
		{X: 37.6173, Y: 55.7558},
		{X: -122.4194, Y: 37.7749},
	}

	for _, p := range points {
		back := geomap.Unproject(geomap.Project(p))
		assert.InDelta(t, p.X, back.X, 1e-9)
		assert.InDelta(t, p.Y, back.Y, 1e-9)
	}
}

func TestProjectClampsLatitude(t *testing.T) {
	p := geomap.Project(geomap.Point{X: 0, Y: 89})
	clamped := geomap.Project(geomap.Point{X: 0, Y: 85.05112878})
	assert.Equal(t, clamped.Y, p.Y)
}

func TestEntityEditable(t *testing.T) {
	approved := true
	rejected := false

	tests := []struct {
		name string
		ent  geomap.Entity
		want bool
	}{
		{
			"editable segment",
			geomap.Entity{Permissions: geomap.PermEditProperties},
			true,
		},
		{
			"no edit permission",
			geomap.Entity{Permissions: geomap.PermEditGeometry},
			false,
		},
		{
			"active closures",
			geomap.Entity{Permissions: geomap.PermEditProperties, HasClosures: true},
			false,
		},
		{
			"unapproved venue",
			geomap.Entity{Permissions: geomap.PermEditProperties, Approved: &rejected},
			false,
		},
		{
			"approved venue",
			geomap.Entity{Permissions: geomap.PermEditProperties, Approved: &approved},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ent.Editable())
		})
	}
}

func TestStreetRefPerAttribute(t *testing.T) {
	ent := geomap.Entity{PrimaryStreetID: 10, StreetID: 20}

	assert.Equal(t, geomap.StreetID(10), ent.StreetRef(geomap.AttrPrimaryStreetID))
	assert.Equal(t, geomap.StreetID(20), ent.StreetRef(geomap.AttrStreetID))

	ent.SetStreetRef(geomap.AttrStreetID, 30)
	assert.Equal(t, geomap.StreetID(30), ent.StreetID)
	assert.Equal(t, geomap.StreetID(10), ent.PrimaryStreetID)
}

func TestVariantStreetAttribute(t *testing.T) {
	assert.Equal(t, geomap.AttrPrimaryStreetID, geomap.Segment.StreetAttribute())
	assert.Equal(t, geomap.AttrStreetID, geomap.Venue.StreetAttribute())
}

func TestBatchStreetTable(t *testing.T) {
	batch := &geomap.Batch{
		Streets: []*geomap.Street{
			{ID: 1, Name: "Main St"},
			{ID: 2, Name: "5th Ave"},
		},
	}

	table := batch.StreetTable()
	require.Len(t, table, 2)
	assert.Equal(t, "Main St", table[1].Name)
	assert.Equal(t, "5th Ave", table[2].Name)
}
