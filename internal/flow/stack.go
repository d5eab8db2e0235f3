package flow

// Stack is the ordered navigation history. The top entry is the current screen.
type Stack struct {
	entries []Screen
}

// NewStack creates a stack holding the given entries, bottom first.
func NewStack(entries ...Screen) *Stack {
	s := &Stack{entries: make([]Screen, 0, 8)}
	s.entries = append(s.entries, entries...)
	return s
}

// Push adds screen on top.
func (s *Stack) Push(screen Screen) {
	s.entries = append(s.entries, screen)
}

// Pop removes and returns the top entry. It returns false if the stack is empty.
func (s *Stack) Pop() (Screen, bool) {
	if len(s.entries) == 0 {
		return 0, false
	}
	top := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return top, true
}

// Peek returns the top entry without removing it.
func (s *Stack) Peek() (Screen, bool) {
	if len(s.entries) == 0 {
		return 0, false
	}
	return s.entries[len(s.entries)-1], true
}

// Len returns the number of entries in the stack.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Reset replaces the whole history with a single entry.
func (s *Stack) Reset(screen Screen) {
	s.entries = append(s.entries[:0], screen)
}

// Entries returns a copy of the history, bottom first.
func (s *Stack) Entries() []Screen {
	out := make([]Screen, len(s.entries))
	copy(out, s.entries)
	return out
}
