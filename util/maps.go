package util

import (
	"iter"

	"github.com/benbjohnson/immutable"
)

// NewStringMap returns an empty persistent map keyed by name
func NewStringMap[V any]() *immutable.SortedMap[string, V] {
	return immutable.NewSortedMap[string, V](nil)
}

// SortedMapAll iterates m in key order
func SortedMapAll[K, V any](m *immutable.SortedMap[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m == nil {
			return
		}
		itr := m.Iterator()
		for !itr.Done() {
			k, v, _ := itr.Next()
			if !yield(k, v) {
				return
			}
		}
	}
}

// SortedMapsEqual reports whether a and b hold the same keys with values equal according to eq
func SortedMapsEqual[K, V any](a, b *immutable.SortedMap[K, V], eq func(V, V) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	for k, v := range SortedMapAll(a) {
		other, ok := b.Get(k)
		if !ok || !eq(v, other) {
			return false
		}
	}
	return true
}
