package clause

// SelectionPolicy names one of the literal-selection strategies, chosen via
// --select.
type SelectionPolicy int

const (
	SelectNone SelectionPolicy = iota
	SelectOneNegative
	SelectAllNegative
	SelectMaximalNegative
)

func (p SelectionPolicy) String() string {
	switch p {
	case SelectOneNegative:
		return "one-negative"
	case SelectAllNegative:
		return "all-negative"
	case SelectMaximalNegative:
		return "maximal-negative"
	default:
		return "none"
	}
}

// MaximalRank, when non-nil, reports how literal i of a clause ranks
// against the others under the ordering: true means "literal i is
// (one of) the maximal literal(s)". Selection functions that need
// ordering information receive it through this callback rather than
// importing package order directly, keeping clause free of an
// order dependency.
type MaximalRank func(c *Clause, i int) bool

// Select computes the selected-literal bit set of c according to policy and
// returns it; c itself is not modified, so the caller attaches the result
// to c.Selected.
func Select(c *Clause, policy SelectionPolicy, isMaximal MaximalRank) BitSet {
	sel := NewBitSet()
	switch policy {
	case SelectNone:
		return sel

	case SelectOneNegative:
		for i, l := range c.Lits {
			if l.IsNegative() {
				return sel.Set(i)
			}
		}
		return sel

	case SelectAllNegative:
		for i, l := range c.Lits {
			if l.IsNegative() {
				sel = sel.Set(i)
			}
		}
		return sel

	case SelectMaximalNegative:
		for i, l := range c.Lits {
			if l.IsNegative() && (isMaximal == nil || isMaximal(c, i)) {
				sel = sel.Set(i)
			}
		}
		return sel

	default:
		return sel
	}
}

// Eligible reports whether literal i of c is eligible for generating
// inferences: every literal is eligible when Selected is empty, otherwise
// only selected literals are.
func Eligible(c *Clause, i int) bool {
	if c.Selected.IsEmpty() {
		return true
	}
	return c.Selected.Has(i)
}
