package utils

// OrderedSet keeps distinct strings in the order they were first added.
type OrderedSet struct {
	seen   map[string]struct{}
	values []string
}

// NewOrderedSet creates an empty OrderedSet.
func NewOrderedSet() *OrderedSet {
	return &OrderedSet{seen: make(map[string]struct{})}
}

// Add returns true if v was newly added, false if already present.
func (s *OrderedSet) Add(v string) bool {
	if _, exists := s.seen[v]; exists {
		return false
	}
	s.seen[v] = struct{}{}
	s.values = append(s.values, v)
	return true
}

// Contains returns true if v has been added.
func (s *OrderedSet) Contains(v string) bool {
	_, exists := s.seen[v]
	return exists
}

// Size returns the number of distinct values.
func (s *OrderedSet) Size() int {
	return len(s.values)
}

// Values returns the distinct values in first-seen order.
func (s *OrderedSet) Values() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}
