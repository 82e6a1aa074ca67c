package poller

// SeenSet tracks the natural identifiers one feed has already handled.
// It is process-local, grows for the process lifetime, and is owned
// exclusively by its poll loop.
type SeenSet[K comparable] struct {
	members map[K]struct{}
}

// NewSeenSet creates an empty seen-set.
func NewSeenSet[K comparable]() *SeenSet[K] {
	return &SeenSet[K]{members: make(map[K]struct{})}
}

// Contains reports whether id has been handled.
func (s *SeenSet[K]) Contains(id K) bool {
	_, ok := s.members[id]
	return ok
}

// Add marks id as handled.
func (s *SeenSet[K]) Add(id K) {
	s.members[id] = struct{}{}
}

// Len returns the number of handled identifiers.
func (s *SeenSet[K]) Len() int {
	return len(s.members)
}
