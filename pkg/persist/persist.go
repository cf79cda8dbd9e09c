// Package persist provides the string-keyed persistence backends the
// engine uses for operator state such as the exception list. Persistence
// is best-effort throughout: callers must keep working when a backend is
// unavailable, so Open falls back to an in-memory store rather than
// failing.
package persist

import "sync"

// KV is a minimal string-keyed byte store.
type KV interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) ([]byte, bool, error)

	// Set stores a value under a key, replacing any previous value.
	Set(key string, value []byte) error

	// Close releases backend resources. Memory backends are no-ops.
	Close() error
}

// Memory is a session-only KV store.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Get implements KV.
func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Set implements KV.
func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.values[key] = v
	return nil
}

// Close implements KV.
func (m *Memory) Close() error { return nil }
