package lasso

// Selection is the append-only set of triangle indices accumulated
// across the strokes of one session. Adding an index twice has no
// effect; insertion order is preserved.
type Selection struct {
	ordered []int
	members map[int]struct{}
}

// NewSelection creates an empty selection
func NewSelection() *Selection {
	return &Selection{members: make(map[int]struct{})}
}

// Add inserts a triangle index and reports whether it was new
func (s *Selection) Add(triangle int) bool {
	if _, ok := s.members[triangle]; ok {
		return false
	}
	s.members[triangle] = struct{}{}
	s.ordered = append(s.ordered, triangle)
	return true
}

// Has reports whether a triangle is already selected
func (s *Selection) Has(triangle int) bool {
	_, ok := s.members[triangle]
	return ok
}

// Len returns the number of selected triangles
func (s *Selection) Len() int {
	return len(s.ordered)
}

// Indices returns the selected triangle indices in insertion order.
// The returned slice is a copy.
func (s *Selection) Indices() []int {
	return append([]int(nil), s.ordered...)
}

// Clear empties the selection
func (s *Selection) Clear() {
	s.ordered = s.ordered[:0]
	s.members = make(map[int]struct{})
}
