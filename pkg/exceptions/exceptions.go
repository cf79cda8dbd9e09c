// Package exceptions maintains the operator's accepted street names.
// A name on the list is never reported as a problem again. The list is
// persisted best-effort through a persist.KV backend and survives only
// the session when no backend is available.
package exceptions

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/streetlab/assist/pkg/events"
	"github.com/streetlab/assist/pkg/persist"
)

// storageKey is the KV key holding the JSON-encoded exception list.
const storageKey = "assist.exceptions"

// Store holds the accepted names, in the order the operator added them.
type Store struct {
	mu     sync.RWMutex
	values []string

	kv     persist.KV
	broker *events.Broker
	logger *zerolog.Logger
}

// New creates a store. kv may be nil for a session-only store; broker
// may be nil when nobody listens.
func New(kv persist.KV, broker *events.Broker, logger *zerolog.Logger) *Store {
	return &Store{kv: kv, broker: broker, logger: logger}
}

// Load restores the persisted list. Each restored value goes through
// Add, so subscribers see exception.added events for loaded items the
// same way they do for fresh ones.
func (s *Store) Load() {
	if s.kv == nil {
		return
	}

	data, ok, err := s.kv.Get(storageKey)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn().Err(err).Msg("Failed to load exceptions, starting empty")
		}
		return
	}
	if !ok {
		return
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		if s.logger != nil {
			s.logger.Warn().Err(err).Msg("Corrupt exception list, starting empty")
		}
		return
	}

	for _, name := range names {
		s.Add(name)
	}
}

// Contains reports whether a name is on the list.
func (s *Store) Contains(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.values {
		if v == name {
			return true
		}
	}
	return false
}

// List returns a copy of the list in insertion order.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

// Len returns the number of accepted names.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Add appends a name, persists the list, and publishes exception.added.
func (s *Store) Add(name string) {
	s.mu.Lock()
	s.values = append(s.values, name)
	index := len(s.values) - 1
	s.mu.Unlock()

	s.save()
	if s.broker != nil {
		s.broker.Publish(events.ExceptionAdded, events.ExceptionData{Name: name, Index: index})
	}
}

// Remove deletes the name at index, persists the list, and publishes
// exception.removed. Out-of-range indexes are ignored.
func (s *Store) Remove(index int) {
	s.mu.Lock()
	if index < 0 || index >= len(s.values) {
		s.mu.Unlock()
		return
	}
	name := s.values[index]
	s.values = append(s.values[:index], s.values[index+1:]...)
	s.mu.Unlock()

	s.save()
	if s.broker != nil {
		s.broker.Publish(events.ExceptionRemoved, events.ExceptionData{Name: name, Index: index})
	}
}

// save writes the list to the backend. Failures are logged, never
// surfaced: persistence is best-effort.
func (s *Store) save() {
	if s.kv == nil {
		return
	}

	s.mu.RLock()
	data, err := json.Marshal(s.values)
	s.mu.RUnlock()
	if err == nil {
		err = s.kv.Set(storageKey, data)
	}
	if err != nil && s.logger != nil {
		s.logger.Warn().Err(err).Msg("Failed to persist exceptions")
	}
}
