// Package memedit provides an in-memory editor.Editor. It backs the CLI
// (batches loaded from files) and the engine's tests, where its action
// journal and entity-visibility controls stand in for a live host.
package memedit

import (
	"sync"

	"github.com/streetlab/assist/pkg/editor"
	"github.com/streetlab/assist/pkg/geomap"
)

// ActionKind labels a journal entry.
type ActionKind string

// Journal entry kinds.
const (
	ActionAddStreet    ActionKind = "add-street"
	ActionAddCity      ActionKind = "add-city"
	ActionUpdateEntity ActionKind = "update-entity"
)

// Action is one submitted mutation. Add-or-get hits that resolved an
// existing record are not journaled, matching the host's action log.
type Action struct {
	Kind      ActionKind
	Variant   geomap.Variant
	EntityID  geomap.EntityID
	Attribute geomap.Attribute
	StreetID  geomap.StreetID
	CityID    geomap.CityID
	Name      string
}

type entityKey struct {
	variant geomap.Variant
	id      geomap.EntityID
}

// Editor is an in-memory implementation of editor.Editor.
type Editor struct {
	mu sync.Mutex

	entities map[entityKey]*geomap.Entity
	streets  map[geomap.StreetID]*geomap.Street
	cities   map[geomap.CityID]*geomap.City

	nextStreetID geomap.StreetID
	nextCityID   geomap.CityID

	// hidden maps an entity to the number of recenters left before it
	// becomes visible again. Negative means hidden until Reveal.
	hidden map[entityKey]int

	journal   []Action
	center    geomap.Point
	zoom      int
	extent    geomap.Bounds
	recenters int

	settleSubs map[int]chan struct{}
	nextSubID  int
}

var _ editor.Editor = (*Editor)(nil)

// New creates an empty editor.
func New() *Editor {
	return &Editor{
		entities:   make(map[entityKey]*geomap.Entity),
		streets:    make(map[geomap.StreetID]*geomap.Street),
		cities:     make(map[geomap.CityID]*geomap.City),
		hidden:     make(map[entityKey]int),
		settleSubs: make(map[int]chan struct{}),
	}
}

// FromBatch creates an editor holding a batch's objects.
func FromBatch(b *geomap.Batch) *Editor {
	e := New()
	for _, v := range geomap.Variants() {
		for _, ent := range b.Entities(v) {
			ent.Type = v
			e.AddEntity(ent)
		}
	}
	for _, s := range b.Streets {
		e.AddStreet(s)
	}
	for _, c := range b.Cities {
		e.AddCity(c)
	}
	return e
}

// Batch exports the editor's current objects as a batch.
func (e *Editor) Batch() *geomap.Batch {
	e.mu.Lock()
	defer e.mu.Unlock()

	b := &geomap.Batch{}
	for key, ent := range e.entities {
		if key.variant == geomap.Venue {
			b.Venues = append(b.Venues, ent)
		} else {
			b.Segments = append(b.Segments, ent)
		}
	}
	for _, s := range e.streets {
		b.Streets = append(b.Streets, s)
	}
	for _, c := range e.cities {
		b.Cities = append(b.Cities, c)
	}
	return b
}

// AddEntity inserts an entity into the model.
func (e *Editor) AddEntity(ent *geomap.Entity) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.entities[entityKey{ent.Type, ent.ID}] = ent
}

// AddStreet inserts a street into the model and bumps the ID sequence
// past it.
func (e *Editor) AddStreet(s *geomap.Street) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.streets[s.ID] = s
	if s.ID >= e.nextStreetID {
		e.nextStreetID = s.ID + 1
	}
}

// AddCity inserts a city into the model and bumps the ID sequence past
// it.
func (e *Editor) AddCity(c *geomap.City) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cities[c.ID] = c
	if c.ID >= e.nextCityID {
		e.nextCityID = c.ID + 1
	}
}

// Hide makes an entity invisible to lookups until recenters view
// settles have happened. Pass a negative count to hide until Reveal.
func (e *Editor) Hide(v geomap.Variant, id geomap.EntityID, recenters int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hidden[entityKey{v, id}] = recenters
}

// Reveal makes a hidden entity visible again.
func (e *Editor) Reveal(v geomap.Variant, id geomap.EntityID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.hidden, entityKey{v, id})
}

// Journal returns a copy of the submitted mutations, in order.
func (e *Editor) Journal() []Action {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Action, len(e.journal))
	copy(out, e.journal)
	return out
}

// JournalCount returns how many mutations of the given kind were
// submitted.
func (e *Editor) JournalCount(kind ActionKind) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, a := range e.journal {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

// Recenters returns how many times SetCenter was called.
func (e *Editor) Recenters() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.recenters
}

// SetExtent sets the visible bounds returned by Extent.
func (e *Editor) SetExtent(b geomap.Bounds) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.extent = b
}

// Entity implements editor.Model.
func (e *Editor) Entity(v geomap.Variant, id geomap.EntityID) (*geomap.Entity, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	key := entityKey{v, id}
	if _, isHidden := e.hidden[key]; isHidden {
		return nil, false
	}
	ent, ok := e.entities[key]
	return ent, ok
}

// Street implements editor.Model.
func (e *Editor) Street(id geomap.StreetID) (*geomap.Street, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.streets[id]
	return s, ok
}

// StreetByName implements editor.Model.
func (e *Editor) StreetByName(city geomap.CityID, name string) (*geomap.Street, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.streetByNameLocked(city, name)
}

func (e *Editor) streetByNameLocked(city geomap.CityID, name string) (*geomap.Street, bool) {
	for _, s := range e.streets {
		if s.CityID == city && s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// City implements editor.Model.
func (e *Editor) City(id geomap.CityID) (*geomap.City, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.cities[id]
	return c, ok
}

// CityByName implements editor.Model.
func (e *Editor) CityByName(name string) (*geomap.City, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, c := range e.cities {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// AddOrGetStreet implements editor.Actions.
func (e *Editor) AddOrGetStreet(city geomap.CityID, name string, isEmpty bool) (*geomap.Street, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if s, ok := e.streetByNameLocked(city, name); ok {
		return s, nil
	}

	s := &geomap.Street{
		ID:      e.nextStreetID,
		Name:    name,
		IsEmpty: isEmpty,
		CityID:  city,
	}
	e.nextStreetID++
	e.streets[s.ID] = s
	e.journal = append(e.journal, Action{
		Kind:     ActionAddStreet,
		StreetID: s.ID,
		CityID:   city,
		Name:     name,
	})
	return s, nil
}

// AddOrGetCity implements editor.Actions.
func (e *Editor) AddOrGetCity(country geomap.CountryID, state geomap.StateID, name string) (*geomap.City, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, c := range e.cities {
		if c.CountryID == country && c.StateID == state && c.Name == name {
			return c, nil
		}
	}

	c := &geomap.City{
		ID:        e.nextCityID,
		Name:      name,
		StateID:   state,
		CountryID: country,
	}
	e.nextCityID++
	e.cities[c.ID] = c
	e.journal = append(e.journal, Action{
		Kind:   ActionAddCity,
		CityID: c.ID,
		Name:   name,
	})
	return c, nil
}

// UpdateEntityStreet implements editor.Actions.
func (e *Editor) UpdateEntityStreet(v geomap.Variant, id geomap.EntityID, attr geomap.Attribute, street geomap.StreetID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ent, ok := e.entities[entityKey{v, id}]
	if !ok {
		return &editorNotFoundError{variant: v, id: id}
	}
	ent.SetStreetRef(attr, street)
	e.journal = append(e.journal, Action{
		Kind:      ActionUpdateEntity,
		Variant:   v,
		EntityID:  id,
		Attribute: attr,
		StreetID:  street,
	})
	return nil
}

// SetCenter implements editor.Viewport. Recentering counts down hidden
// entities' remaining recenters and emits a settle notification, the
// way a live host fires its merge-complete event after a pan finishes.
func (e *Editor) SetCenter(p geomap.Point, zoom int) {
	e.mu.Lock()
	e.center = p
	e.zoom = zoom
	e.recenters++
	for key, left := range e.hidden {
		if left > 0 {
			left--
			if left == 0 {
				delete(e.hidden, key)
			} else {
				e.hidden[key] = left
			}
		}
	}
	subs := make([]chan struct{}, 0, len(e.settleSubs))
	for _, ch := range e.settleSubs {
		subs = append(subs, ch)
	}
	e.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Center returns the current view center and zoom.
func (e *Editor) Center() (geomap.Point, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.center, e.zoom
}

// Extent implements editor.Viewport.
func (e *Editor) Extent() geomap.Bounds {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.extent
}

// SettleEvents implements editor.Viewport.
func (e *Editor) SettleEvents() (<-chan struct{}, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextSubID
	e.nextSubID++
	ch := make(chan struct{}, 1)
	e.settleSubs[id] = ch

	return ch, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.settleSubs, id)
	}
}

type editorNotFoundError struct {
	variant geomap.Variant
	id      geomap.EntityID
}

func (e *editorNotFoundError) Error() string {
	return "no " + string(e.variant) + " with id " + e.id.String()
}
