package normalize

// OrderedSet is a sequence of distinct strings kept in first-insertion order.
// The zero value is ready to use.
type OrderedSet struct {
	items []string
	seen  map[string]struct{}
}

// NewOrderedSet returns a set holding items, duplicates after the first removed.
func NewOrderedSet(items ...string) *OrderedSet {
	s := &OrderedSet{
		items: make([]string, 0, len(items)),
		seen:  make(map[string]struct{}, len(items)),
	}
	s.Add(items...)
	return s
}

// Add appends each item that is not already present.
// It returns the number of items actually added.
func (s *OrderedSet) Add(items ...string) int {
	if s.seen == nil {
		s.seen = make(map[string]struct{}, len(items))
	}
	added := 0
	for _, item := range items {
		if _, ok := s.seen[item]; ok {
			continue
		}
		s.seen[item] = struct{}{}
		s.items = append(s.items, item)
		added++
	}
	return added
}

// Contains reports whether item is in the set.
func (s *OrderedSet) Contains(item string) bool {
	_, ok := s.seen[item]
	return ok
}

// Len returns the number of items.
func (s *OrderedSet) Len() int {
	return len(s.items)
}

// Items returns a copy of the items in insertion order.
func (s *OrderedSet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}
