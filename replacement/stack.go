package replacement

import "fmt"

// A Stack keeps the resident pages in the order they were loaded. The last
// element is the top, the most recently loaded page.
type Stack struct {
	pages    []Page
	capacity int
}

// NewStack creates an empty stack that can hold up to capacity pages.
func NewStack(capacity int) *Stack {
	return &Stack{
		pages:    make([]Page, 0, capacity),
		capacity: capacity,
	}
}

// Len returns the number of pages in the stack.
func (s *Stack) Len() int {
	return len(s.pages)
}

// Cap returns the maximum number of pages the stack can hold.
func (s *Stack) Cap() int {
	return s.capacity
}

// IsFull tells if no more page can be pushed.
func (s *Stack) IsFull() bool {
	return len(s.pages) >= s.capacity
}

// Contains tells if the page is in the stack.
func (s *Stack) Contains(p Page) bool {
	return s.indexOf(p) >= 0
}

// Push places the page on top of the stack. Pushing into a full stack or
// pushing a page that is already in the stack panics.
func (s *Stack) Push(p Page) {
	if s.IsFull() {
		panic(fmt.Sprintf("stack is full, cannot push page %d", p))
	}

	if s.Contains(p) {
		panic(fmt.Sprintf("page %d is already in the stack", p))
	}

	s.pages = append(s.pages, p)
}

// Top returns the top page without removing it.
func (s *Stack) Top() (Page, bool) {
	if len(s.pages) == 0 {
		return NoPage, false
	}

	return s.pages[len(s.pages)-1], true
}

// Pop removes and returns the top page.
func (s *Stack) Pop() (Page, bool) {
	top, ok := s.Top()
	if !ok {
		return NoPage, false
	}

	s.pages = s.pages[:len(s.pages)-1]

	return top, true
}

// Remove takes the page out of the stack wherever it is, keeping the order
// of the remaining pages.
func (s *Stack) Remove(p Page) bool {
	i := s.indexOf(p)
	if i < 0 {
		return false
	}

	s.pages = append(s.pages[:i], s.pages[i+1:]...)

	return true
}

// Snapshot returns a copy of the stack content, bottom first.
func (s *Stack) Snapshot() []Page {
	dup := make([]Page, len(s.pages))
	copy(dup, s.pages)

	return dup
}

func (s *Stack) indexOf(p Page) int {
	for i, q := range s.pages {
		if q == p {
			return i
		}
	}

	return -1
}
