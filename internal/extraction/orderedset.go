package extraction

// orderedSet keeps insertion order for a set of normalized keys.
// It is owned by a single extraction call.
type orderedSet struct {
	index map[string]struct{}
	keys  []string
}

func newOrderedSet(capacity int) *orderedSet {
	return &orderedSet{
		index: make(map[string]struct{}, capacity),
		keys:  make([]string, 0, capacity),
	}
}

// add inserts key and reports whether it was new
func (s *orderedSet) add(key string) bool {
	if _, ok := s.index[key]; ok {
		return false
	}
	s.index[key] = struct{}{}
	s.keys = append(s.keys, key)
	return true
}

func (s *orderedSet) contains(key string) bool {
	_, ok := s.index[key]
	return ok
}

func (s *orderedSet) len() int {
	return len(s.keys)
}
