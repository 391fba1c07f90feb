package replacement

// A VictimFinder decides which resident page should be evicted when every
// frame is occupied.
type VictimFinder interface {
	FindVictim(stack *Stack) (Page, bool)
}

// LIFOVictimFinder evicts the most recently loaded page. How recently a page
// was referenced does not matter, since hits never move pages in the stack.
type LIFOVictimFinder struct {
}

// NewLIFOVictimFinder returns a newly constructed LIFO victim finder.
func NewLIFOVictimFinder() *LIFOVictimFinder {
	return new(LIFOVictimFinder)
}

// FindVictim returns the page on top of the stack.
func (f *LIFOVictimFinder) FindVictim(stack *Stack) (Page, bool) {
	return stack.Top()
}
