package types

// OrderedSet is a set that remembers insertion order. Elements are
// deduplicated by a key derived from the element itself, which allows
// normalized comparisons (for example, case-insensitive strings) while the
// originally inserted value is preserved.
//
// The zero value is not usable; construct instances with NewOrderedSet.
// This type is mutable and not safe for concurrent use.
type OrderedSet[T comparable] struct {
	keyFunc func(T) T
	index   map[T]int
	items   []T
}

// NewOrderedSet creates an empty OrderedSet. The optional key function
// normalizes elements before comparison; when nil, elements compare by
// their own value.
func NewOrderedSet[T comparable](keyFunc func(T) T) *OrderedSet[T] {
	if keyFunc == nil {
		keyFunc = func(v T) T { return v }
	}

	return &OrderedSet[T]{
		keyFunc: keyFunc,
		index:   make(map[T]int),
	}
}

// Add inserts the element at the end of the set. It reports whether the
// element was actually inserted; adding a value whose key is already present
// leaves the set unchanged and returns false.
func (s *OrderedSet[T]) Add(value T) bool {
	key := s.keyFunc(value)
	if _, ok := s.index[key]; ok {
		return false
	}

	s.index[key] = len(s.items)
	s.items = append(s.items, value)
	return true
}

// Delete removes the element matching the given value's key. It reports
// whether an element was removed. Insertion order of the remaining elements
// is preserved.
func (s *OrderedSet[T]) Delete(value T) bool {
	key := s.keyFunc(value)
	pos, ok := s.index[key]
	if !ok {
		return false
	}

	s.items = append(s.items[:pos], s.items[pos+1:]...)
	delete(s.index, key)

	// Reindex the elements shifted left by the removal.
	for i := pos; i < len(s.items); i++ {
		s.index[s.keyFunc(s.items[i])] = i
	}

	return true
}

// Contains reports whether an element matching the given value's key is
// present in the set.
func (s *OrderedSet[T]) Contains(value T) bool {
	_, ok := s.index[s.keyFunc(value)]
	return ok
}

// Len returns the number of elements in the set.
func (s *OrderedSet[T]) Len() int {
	return len(s.items)
}

// Values returns a copy of the elements in insertion order.
func (s *OrderedSet[T]) Values() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}
