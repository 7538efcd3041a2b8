// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package derive

// Map is an associative container keyed by derived Hash and Equal
// rather than Go's built-in key comparison. Two separately constructed
// keys that are structurally equal address the same entry; keys are
// unique and insertion order is irrelevant. Map is not safe for
// concurrent use.
type Map[K any, V any] struct {
	d       *Deriver
	buckets map[uint64][]mapEntry[K, V]
	size    int
}

type mapEntry[K any, V any] struct {
	key   K
	value V
}

// NewMap creates an empty Map backed by the default Deriver.
func NewMap[K any, V any]() *Map[K, V] {
	return NewMapWith[K, V](defaultDeriver)
}

// NewMapWith creates an empty Map backed by d.
func NewMapWith[K any, V any](d *Deriver) *Map[K, V] {
	return &Map[K, V]{
		d:       d,
		buckets: make(map[uint64][]mapEntry[K, V]),
	}
}

// Put stores value under key, replacing any structurally equal key.
func (m *Map[K, V]) Put(key K, value V) {
	h := m.d.Hash(key)
	bucket := m.buckets[h]
	for i := range bucket {
		if m.d.Equal(bucket[i].key, key) {
			bucket[i].value = value
			return
		}
	}
	m.buckets[h] = append(bucket, mapEntry[K, V]{key: key, value: value})
	m.size++
}

// Get returns the value stored under a key structurally equal to key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	for _, e := range m.buckets[m.d.Hash(key)] {
		if m.d.Equal(e.key, key) {
			return e.value, true
		}
	}
	var zero V
	return zero, false
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes key and reports whether it was present.
func (m *Map[K, V]) Delete(key K) bool {
	h := m.d.Hash(key)
	bucket := m.buckets[h]
	for i := range bucket {
		if m.d.Equal(bucket[i].key, key) {
			m.buckets[h] = append(bucket[:i], bucket[i+1:]...)
			if len(m.buckets[h]) == 0 {
				delete(m.buckets, h)
			}
			m.size--
			return true
		}
	}
	return false
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return m.size
}

// Keys returns all keys in unspecified order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.size)
	for _, bucket := range m.buckets {
		for _, e := range bucket {
			keys = append(keys, e.key)
		}
	}
	return keys
}

// Set is a generic set type using Go generics.
// Uses struct{} as value type for zero memory overhead.
type Set[T comparable] map[T]struct{}

// NewSet creates a new empty Set.
func NewSet[T comparable]() Set[T] {
	return make(Set[T])
}

// Add adds one or more elements to the set.
func (s Set[T]) Add(values ...T) {
	for _, v := range values {
		s[v] = struct{}{}
	}
}

// Remove removes an element from the set.
func (s Set[T]) Remove(value T) {
	delete(s, value)
}

// Contains checks if an element is in the set.
func (s Set[T]) Contains(value T) bool {
	_, ok := s[value]
	return ok
}

// Len returns the number of elements in the set.
func (s Set[T]) Len() int {
	return len(s)
}

// Values returns all elements as a slice.
func (s Set[T]) Values() []T {
	result := make([]T, 0, len(s))
	for v := range s {
		result = append(result, v)
	}
	return result
}
