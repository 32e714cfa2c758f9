package labels

// Set is an immutable collection of labels used for ignore lists.
type Set struct {
	m map[Label]struct{}
}

// NewSet builds a set from the given labels.
func NewSet(ls ...Label) Set {
	m := make(map[Label]struct{}, len(ls))
	for _, l := range ls {
		m[l] = struct{}{}
	}
	return Set{m: m}
}

// Contains reports whether l is in the set. The zero Set contains nothing.
func (s Set) Contains(l Label) bool {
	_, ok := s.m[l]
	return ok
}

func (s Set) Len() int { return len(s.m) }

// Labels returns the members in natural order.
func (s Set) Labels() []Label {
	out := make([]Label, 0, len(s.m))
	for l := range s.m {
		out = append(out, l)
	}
	Sort(out)
	return out
}
