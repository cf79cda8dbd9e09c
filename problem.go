package assist

import (
	"strings"

	"github.com/agentstation/utc"

	"github.com/streetlab/assist/pkg/geomap"
)

// ObjectRef is a detection-time snapshot of an entity's identity.
type ObjectRef struct {
	ID   geomap.EntityID `json:"id"`
	Type geomap.Variant  `json:"type"`
}

// Problem is one detected mismatch between an entity's referenced
// street name and its rule-normalized form.
//
// Reason doubles as the optimistic-lock token: at fix time the live
// name is compared against it, and a mismatch means the operator
// already corrected the entity by hand.
type Problem struct {
	Object        ObjectRef        `json:"object"`
	Reason        string           `json:"reason"`
	AttrName      geomap.Attribute `json:"attrName"`
	NewStreetName string           `json:"newStreetName"`
	IsEmpty       bool             `json:"isEmpty"`
	CityID        geomap.CityID    `json:"cityId"`

	// DetectPos and Zoom snapshot the view at detection time, in
	// display coordinates. A retry recenters here to make the host
	// reload the entity.
	DetectPos geomap.Point `json:"detectPos"`
	Zoom      int          `json:"zoom"`

	DetectedAt utc.Time `json:"detectedAt"`

	// skip is set only by exception propagation; a skipped problem is
	// passed over by the sequencer but never reordered or removed.
	skip bool
}

// Skipped reports whether the problem was excepted by the operator.
func (p *Problem) Skipped() bool { return p.skip }

// markerRune replaces invisible characters when a name is rendered in
// a problem title, so the operator can see what the rule objected to.
const markerRune = "■"

// problemTitle renders the display title for a detected problem:
// an entity-type marker for venues, the original name with non-breaking
// and leading/trailing whitespace made visible, and the corrected name.
func problemTitle(v geomap.Variant, name, corrected string) string {
	var b strings.Builder
	if v == geomap.Venue {
		b.WriteString("POI: ")
	}
	b.WriteString(visibleWhitespace(name))
	b.WriteString(" ➤ ")
	b.WriteString(corrected)
	return b.String()
}

// visibleWhitespace renders non-breaking spaces and edge whitespace
// with a marker rune.
func visibleWhitespace(name string) string {
	s := strings.ReplaceAll(name, "\u00a0", markerRune)
	if trimmed := strings.TrimLeft(s, " \t"); trimmed != s {
		s = markerRune + trimmed
	}
	if trimmed := strings.TrimRight(s, " \t"); trimmed != s {
		s = trimmed + markerRune
	}
	return s
}
