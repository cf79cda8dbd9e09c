// Package editor defines the boundary to the host map-editing
// application. The engine never owns map data: it reads entities and
// streets through Model, submits mutations through Actions, and steers
// the view through Viewport. The host is free to reload, reindex, or
// drop entities at any time between calls.
package editor

import "github.com/streetlab/assist/pkg/geomap"

// Model is read access to the host's live object model. Lookups reflect
// the current state, which may differ from any batch handed to the
// analyzer earlier.
type Model interface {
	// Entity returns the live entity for (variant, id), or false when
	// the host has no such object loaded.
	Entity(v geomap.Variant, id geomap.EntityID) (*geomap.Entity, bool)

	// Street returns the street record for id.
	Street(id geomap.StreetID) (*geomap.Street, bool)

	// StreetByName returns the street with the given name in a city.
	StreetByName(city geomap.CityID, name string) (*geomap.Street, bool)

	// City returns the city record for id.
	City(id geomap.CityID) (*geomap.City, bool)

	// CityByName returns the first city with the given name.
	CityByName(name string) (*geomap.City, bool)
}

// Actions is the host's shared mutation log. Submissions are atomic and
// idempotent to resubmission with identical arguments: add-or-get
// returns the existing record instead of duplicating it.
type Actions interface {
	// AddOrGetStreet resolves the street (city, name), creating it when
	// absent.
	AddOrGetStreet(city geomap.CityID, name string, isEmpty bool) (*geomap.Street, error)

	// AddOrGetCity resolves the city (country, state, name), creating it
	// when absent.
	AddOrGetCity(country geomap.CountryID, state geomap.StateID, name string) (*geomap.City, error)

	// UpdateEntityStreet rewrites an entity's street-reference attribute.
	UpdateEntityStreet(v geomap.Variant, id geomap.EntityID, attr geomap.Attribute, street geomap.StreetID) error
}

// Viewport steers the host's map view. Recentering makes the host load
// the objects around the new center; the settle notification fires once
// that load completes.
type Viewport interface {
	// SetCenter pans and zooms the view.
	SetCenter(p geomap.Point, zoom int)

	// Extent returns the currently visible bounds.
	Extent() geomap.Bounds

	// SettleEvents subscribes to pan/zoom settle notifications. The
	// returned cancel must be called when the subscriber is done;
	// subscribe and cancel are paired per retry attempt so listeners
	// never leak across attempts.
	SettleEvents() (<-chan struct{}, func())
}

// Editor is the full host surface the engine needs.
type Editor interface {
	Model
	Actions
	Viewport
}
