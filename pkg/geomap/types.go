// Package geomap defines the map-data model the assist engine operates
// on: entities (road segments and venues), the street and city records
// they reference, and the geometry types used to position them.
package geomap

import "strconv"

// EntityID identifies a map entity within its variant's collection.
type EntityID int64

// StreetID identifies a street record.
type StreetID int64

// CityID identifies a city record.
type CityID int64

// StateID identifies a state record.
type StateID int64

// CountryID identifies a country record.
type CountryID int64

// String returns the decimal form of the ID.
func (id EntityID) String() string { return strconv.FormatInt(int64(id), 10) }

// String returns the decimal form of the ID.
func (id StreetID) String() string { return strconv.FormatInt(int64(id), 10) }

// String returns the decimal form of the ID.
func (id CityID) String() string { return strconv.FormatInt(int64(id), 10) }

// Variant is the kind of map entity under analysis.
type Variant string

// Supported entity variants.
const (
	Segment Variant = "segment"
	Venue   Variant = "venue"
)

// Variants lists the supported entity variants in analysis order.
func Variants() []Variant {
	return []Variant{Segment, Venue}
}

// Attribute names the entity attribute holding a street reference.
// Segments reference their street through a different attribute than
// venues do.
type Attribute string

// Street-reference attributes per variant.
const (
	AttrPrimaryStreetID Attribute = "primaryStreetID"
	AttrStreetID        Attribute = "streetID"
)

// StreetAttribute returns the street-reference attribute for a variant.
func (v Variant) StreetAttribute() Attribute {
	if v == Venue {
		return AttrStreetID
	}
	return AttrPrimaryStreetID
}

// Permissions is the per-entity permission bitmask granted to the
// current operator by the host editor.
type Permissions uint32

// Permission bits.
const (
	PermEditGeometry   Permissions = 1 << 0
	PermEditProperties Permissions = 1 << 1
	PermDelete         Permissions = 1 << 2
)

// Can reports whether the mask grants the given permission.
func (p Permissions) Can(bit Permissions) bool {
	return p&bit != 0
}

// Entity is a map object of one of the supported variants. Entities are
// owned by the host editor; the engine references them by (variant, id)
// and never holds one across an asynchronous boundary.
type Entity struct {
	ID          EntityID    `json:"id"`
	Type        Variant     `json:"type"`
	Geometry    Bounds      `json:"geometry"`
	Permissions Permissions `json:"permissions"`
	HasClosures bool        `json:"hasClosures,omitempty"`

	// Approved is nil when the host model carries no approval flag for
	// this entity (segments typically don't).
	Approved *bool `json:"approved,omitempty"`

	// PrimaryStreetID is the street reference for segments.
	PrimaryStreetID StreetID `json:"primaryStreetID,omitempty"`

	// StreetID is the street reference for venues.
	StreetID StreetID `json:"streetID,omitempty"`
}

// StreetRef returns the street referenced through the given attribute.
func (e *Entity) StreetRef(attr Attribute) StreetID {
	if attr == AttrStreetID {
		return e.StreetID
	}
	return e.PrimaryStreetID
}

// SetStreetRef rewrites the street referenced through the given attribute.
func (e *Entity) SetStreetRef(attr Attribute, id StreetID) {
	if attr == AttrStreetID {
		e.StreetID = id
		return
	}
	e.PrimaryStreetID = id
}

// Editable reports whether the operator may rewrite this entity's
// properties and it is in a state the engine will touch: no active
// closures, and approved when an approval flag is present.
func (e *Entity) Editable() bool {
	if !e.Permissions.Can(PermEditProperties) {
		return false
	}
	if e.HasClosures {
		return false
	}
	if e.Approved != nil && !*e.Approved {
		return false
	}
	return true
}

// Street is a named road reference owned by a city.
type Street struct {
	ID      StreetID `json:"id"`
	Name    string   `json:"name"`
	IsEmpty bool     `json:"isEmpty,omitempty"`
	CityID  CityID   `json:"cityID"`
}

// City is a city record.
type City struct {
	ID        CityID    `json:"id"`
	Name      string    `json:"name"`
	StateID   StateID   `json:"stateID"`
	CountryID CountryID `json:"countryID"`
}

// Batch is one analysis unit: the candidate entities per variant plus
// the full street table current at the time the batch was assembled.
type Batch struct {
	Segments []*Entity `json:"segments"`
	Venues   []*Entity `json:"venues"`
	Streets  []*Street `json:"streets"`
	Cities   []*City   `json:"cities,omitempty"`
}

// Entities returns the batch's candidate entities for a variant.
func (b *Batch) Entities(v Variant) []*Entity {
	if v == Venue {
		return b.Venues
	}
	return b.Segments
}

// StreetTable builds an id-indexed lookup over the batch's street table.
// Built once per analysis pass, not per entity.
func (b *Batch) StreetTable() map[StreetID]*Street {
	table := make(map[StreetID]*Street, len(b.Streets))
	for _, s := range b.Streets {
		table[s.ID] = s
	}
	return table
}
