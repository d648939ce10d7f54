package pythontype

type idPair struct {
	first, second ID
}

// TypeStack records the pairs of types currently being compared so that
// recursive comparisons over self-referential types terminate. It is not safe
// for concurrent use; each top-level comparison creates its own.
type TypeStack struct {
	pairs []idPair
}

// Push records that first and second are being compared
func (s *TypeStack) Push(first, second DataType) {
	s.pairs = append(s.pairs, idPair{first.ID(), second.ID()})
}

// Pop removes the most recently pushed pair
func (s *TypeStack) Pop() {
	if len(s.pairs) > 0 {
		s.pairs = s.pairs[:len(s.pairs)-1]
	}
}

// Contains checks whether the pair is being compared, in either order
func (s *TypeStack) Contains(first, second DataType) bool {
	a, b := first.ID(), second.ID()
	for _, p := range s.pairs {
		if (p.first == a && p.second == b) || (p.first == b && p.second == a) {
			return true
		}
	}
	return false
}

// Len gets the depth of the stack
func (s *TypeStack) Len() int {
	return len(s.pairs)
}
