package util

// Stack remembers the views the TUI returns to.
type Stack[T any] []T

func (s *Stack[T]) Push(item T) {
	*s = append(*s, item)
}

// Pop removes the top element. ok is false when the stack is empty.
func (s *Stack[T]) Pop() (item T, ok bool) {
	n := len(*s)
	if n == 0 {
		return item, false
	}
	item = (*s)[n-1]
	*s = (*s)[:n-1]
	return item, true
}

// Peek returns the top element without removing it.
func (s Stack[T]) Peek() (item T, ok bool) {
	if len(s) == 0 {
		return item, false
	}
	return s[len(s)-1], true
}

func (s Stack[T]) Len() int {
	return len(s)
}
