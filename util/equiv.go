package util

import (
	"slices"
	"sort"

	"github.com/benbjohnson/immutable"
	xset "github.com/xtgo/set"
)

// Equivalence is a partition of names into disjoint equivalence classes.
// Every class is kept sorted so classes can be merged with sorted-set algebra.
type Equivalence struct {
	classes [][]string
}

// NewEquivalence computes the transitive closure of pairs: two names end up
// in the same class iff a chain of pairs connects them
func NewEquivalence(pairs []Pair[string, string]) Equivalence {
	seed := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		a, b := p.Unpack()
		class := sort.StringSlice{a, b}
		class.Sort()
		seed = append(seed, class[:xset.Uniq(class)])
	}
	// every pass merges at most one pair of classes, so there are at most len(pairs) merges
	classes, _ := FixedPointWithFuel(len(pairs)+1, seed, classesEqual, func(classes [][]string) ([][]string, error) {
		return mergeFirstOverlap(classes), nil
	})
	return Equivalence{classes: classes}
}

// mergeFirstOverlap merges the first two classes which share a member,
// or returns classes unchanged if they are all disjoint
func mergeFirstOverlap(classes [][]string) [][]string {
	for i := range classes {
		for j := i + 1; j < len(classes); j++ {
			if !overlap(classes[i], classes[j]) {
				continue
			}
			merged := make([][]string, 0, len(classes)-1)
			merged = append(merged, classes[:j]...)
			merged = append(merged, classes[j+1:]...)
			merged[i] = union(classes[i], classes[j])
			return merged
		}
	}
	return classes
}

func overlap(a, b []string) bool {
	data := make(sort.StringSlice, 0, len(a)+len(b))
	data = append(append(data, a...), b...)
	return xset.Inter(data, len(a)) > 0
}

func union(a, b []string) []string {
	data := make(sort.StringSlice, 0, len(a)+len(b))
	data = append(append(data, a...), b...)
	size := xset.Union(data, len(a))
	res := slices.Clone(data[:size])
	slices.Sort(res)
	return res
}

func classesEqual(a, b [][]string) bool {
	return slices.EqualFunc(a, b, func(c1, c2 []string) bool {
		return slices.Equal(c1, c2)
	})
}

// ClassOf returns the members of the class name belongs to, which is just
// name if no pair mentioned it
func (e Equivalence) ClassOf(name string) []string {
	for _, class := range e.classes {
		if _, found := slices.BinarySearch(class, name); found {
			return class
		}
	}
	return []string{name}
}

// Classes returns the partition, in no particular order
func (e Equivalence) Classes() [][]string {
	return e.classes
}

// Assigner writes value for name, and for every name known to be equivalent to it, into assigns
type Assigner[V any] func(name string, value V, assigns *immutable.SortedMap[string, V]) *immutable.SortedMap[string, V]

// BuildAssigner builds the equivalence classes of pairs and returns an Assigner over them
func BuildAssigner[V any](pairs []Pair[string, string]) Assigner[V] {
	return AssignerOf[V](NewEquivalence(pairs))
}

func AssignerOf[V any](e Equivalence) Assigner[V] {
	return func(name string, value V, assigns *immutable.SortedMap[string, V]) *immutable.SortedMap[string, V] {
		for _, member := range e.ClassOf(name) {
			assigns = assigns.Set(member, value)
		}
		return assigns
	}
}
