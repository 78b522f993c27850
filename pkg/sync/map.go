package sync

import (
	"sync"
)

// Map is like a Go map[K]V but is safe for concurrent use by multiple goroutines.
type Map[K comparable, V any] struct {
	mutex sync.RWMutex
	data  map[K]V
}

// NewMap creates map.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		data: make(map[K]V),
	}
}

// Store sets the value for a key.
func (m *Map[K, V]) Store(key K, value V) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.data[key] = value
}

// StoreIfAbsent sets the value for a key only when the key is not present yet.
// It returns false if a value was already stored for the key.
func (m *Map[K, V]) StoreIfAbsent(key K, value V) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, ok := m.data[key]; ok {
		return false
	}
	m.data[key] = value
	return true
}

// Load returns the value stored in the map for a key, or zero value if no value is present.
// The ok result indicates whether value was found in the map.
func (m *Map[K, V]) Load(key K) (value V, ok bool) {
	return m.LoadWithFunc(key, nil)
}

// LoadWithFunc loads the value for a key and, while still holding the read lock,
// passes it through onLoadFunc.
func (m *Map[K, V]) LoadWithFunc(key K, onLoadFunc func(value V) V) (V, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	value, ok := m.data[key]
	if ok && onLoadFunc != nil {
		value = onLoadFunc(value)
	}
	return value, ok
}

// Delete deletes the value for a key.
func (m *Map[K, V]) Delete(key K) (deleted bool) {
	_, deleted = m.PullOut(key)
	return deleted
}

// PullOut loads and deletes the value for a key.
func (m *Map[K, V]) PullOut(key K) (value V, ok bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	value, ok = m.data[key]
	delete(m.data, key)
	return value, ok
}

// CopyData returns a snapshot of the stored values.
func (m *Map[K, V]) CopyData() map[K]V {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	c := make(map[K]V, len(m.data))
	for key, value := range m.data {
		c[key] = value
	}
	return c
}

// Length returns number of stored values.
func (m *Map[K, V]) Length() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.data)
}
