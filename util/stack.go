package util

// Stack is a LIFO worklist
type Stack[A any] struct {
	items []A
}

// NewStack returns a Stack which pops items in the order they appear in initial
func NewStack[A any](initial ...A) *Stack[A] {
	s := &Stack[A]{items: make([]A, 0, len(initial))}
	for item := range Reverse(initial) {
		s.Push(item)
	}
	return s
}

func (s *Stack[A]) Push(v ...A) {
	s.items = append(s.items, v...)
}

func (s *Stack[A]) Pop() (ret A, ok bool) {
	if len(s.items) <= 0 {
		return ret, false
	}
	lastIndex := len(s.items) - 1
	defer func() {
		s.items = s.items[:lastIndex]
	}()
	return s.items[len(s.items)-1], true
}

func (s *Stack[A]) Len() int {
	return len(s.items)
}
