package term

// VarSet is an immutable set of free-variable identifiers attached to
// a term. It is small (most terms have a handful of free variables)
// so a sorted slice outperforms a map and is trivially comparable in
// tests.
type VarSet struct {
	ids []int
}

// EmptyVarSet is the canonical empty set, safe to share.
var EmptyVarSet = VarSet{}

func newVarSet(ids map[int]struct{}) VarSet {
	if len(ids) == 0 {
		return EmptyVarSet
	}
	out := make([]int, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	// insertion sort: sets are tiny, and this keeps VarSet dependency-free.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return VarSet{ids: out}
}

// NewVarSet builds a VarSet from an explicit list of variable ids,
// used by callers (e.g. package clause) that compute a clause-wide
// free-variable set by unioning several terms' FreeVars results.
func NewVarSet(ids []int) VarSet {
	m := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return newVarSet(m)
}

// Len returns the number of distinct free variables.
func (s VarSet) Len() int { return len(s.ids) }

// Contains reports whether id is a free variable of the owning term.
func (s VarSet) Contains(id int) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Each calls fn for every free variable id in ascending order.
func (s VarSet) Each(fn func(id int)) {
	for _, v := range s.ids {
		fn(v)
	}
}

// Union returns the union of two var sets.
func (s VarSet) Union(other VarSet) VarSet {
	if s.Len() == 0 {
		return other
	}
	if other.Len() == 0 {
		return s
	}
	merged := make(map[int]struct{}, s.Len()+other.Len())
	s.Each(func(id int) { merged[id] = struct{}{} })
	other.Each(func(id int) { merged[id] = struct{}{} })
	return newVarSet(merged)
}

// Slice returns the free variable ids as a freshly-allocated, sorted slice.
func (s VarSet) Slice() []int {
	out := make([]int, len(s.ids))
	copy(out, s.ids)
	return out
}
