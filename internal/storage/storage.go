// Package storage provides the key/value persistence used for user
// preferences. It plays the role browser-local storage plays for a web
// application: small string values that survive restarts.
package storage

import (
	"sort"
	"sync"
)

// Storage is a minimal key/value store.
type Storage interface {
	// Read returns the value stored under key and whether it was present.
	Read(key string) (string, bool)

	// Write stores value under key.
	Write(key, value string) error
}

// Memory is an in-process Storage. Values are lost when the process exits.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty in-memory storage.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Read implements Storage.
func (m *Memory) Read(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Write implements Storage.
func (m *Memory) Write(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Delete removes key.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Keys returns all stored keys in sorted order.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Prefixed namespaces every key of an underlying Storage.
// It is used to give each SSH user their own preferences in a shared file.
type Prefixed struct {
	inner  Storage
	prefix string
}

// NewPrefixed wraps inner so that key k is stored as prefix+k.
func NewPrefixed(inner Storage, prefix string) *Prefixed {
	return &Prefixed{inner: inner, prefix: prefix}
}

// Read implements Storage.
func (p *Prefixed) Read(key string) (string, bool) {
	return p.inner.Read(p.prefix + key)
}

// Write implements Storage.
func (p *Prefixed) Write(key, value string) error {
	return p.inner.Write(p.prefix+key, value)
}
