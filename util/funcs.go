package util

import (
	"iter"
	"slices"

	"github.com/hashicorp/go-set/v3"
)

func Reverse[A any](slice []A) iter.Seq[A] {
	return func(yield func(A) bool) {
		for i := len(slice) - 1; i >= 0; i-- {
			if !yield(slice[i]) {
				return
			}
		}
	}
}

// SortedSetItems returns the elements of s in ascending order
func SortedSetItems(s *set.Set[string]) []string {
	if s == nil {
		return nil
	}
	return slices.Sorted(s.Items())
}
