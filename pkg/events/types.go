// Package events provides a typed event system for the assist engine.
//
// The engine publishes every user-visible occurrence (problem detected,
// issue resolved, exception added, ...) through a Broker, and any number
// of subscribers (UI panels, logging, tests) receive them. This replaces
// per-concern single-subscriber callback slots, which silently clobbered
// each other when two consumers registered.
package events

import (
	"github.com/agentstation/utc"

	"github.com/streetlab/assist/pkg/geomap"
)

// EventType represents the type of engine event.
type EventType string

// Event types emitted by the engine.
const (
	// Detection events (from the analyzer).
	ProblemDetected EventType = "problem.detected"

	// Remediation events (from the fix workflow).
	IssueResolved  EventType = "issue.resolved"
	UserIssueFixed EventType = "issue.user_fixed"
	IssueFixFailed EventType = "issue.fix_failed"
	FixCompleted   EventType = "fix.completed"

	// Exception store events.
	ExceptionAdded   EventType = "exception.added"
	ExceptionRemoved EventType = "exception.removed"
)

// Event represents an engine event with type, timestamp, and payload.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp utc.Time  `json:"timestamp"`
	Data      any       `json:"data"`
}

// ProblemData is the payload of a ProblemDetected event.
type ProblemData struct {
	ID       geomap.EntityID `json:"id"`
	Variant  geomap.Variant  `json:"variant"`
	Title    string          `json:"title"`
	Reason   string          `json:"reason"`
	Position geomap.Point    `json:"position"`
}

// ResolutionData is the payload of IssueResolved, UserIssueFixed, and
// IssueFixFailed events. CurrentName is set only for UserIssueFixed.
type ResolutionData struct {
	ID          geomap.EntityID `json:"id"`
	CurrentName string          `json:"currentName,omitempty"`
}

// FixCompletedData is the payload of a FixCompleted event.
type FixCompletedData struct {
	Fixed     int `json:"fixed"`
	UserFixed int `json:"userFixed"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// ExceptionData is the payload of exception store events. Index is the
// list position: the added position for ExceptionAdded, the removed
// position for ExceptionRemoved.
type ExceptionData struct {
	Name  string `json:"name,omitempty"`
	Index int    `json:"index"`
}
