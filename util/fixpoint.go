package util

import "errors"

// DefaultFuel bounds the number of iterations FixedPoint performs before giving up
const DefaultFuel = 10_000

// ErrNoFixedPoint is returned when the fuel of a fixed point computation runs out
var ErrNoFixedPoint = errors.New("no fixed point reached")

// FixedPoint applies f to its own output, starting from initial, until two
// consecutive results are equal according to eq, and returns the last result.
//
// eq must compare by value: a state that is rebuilt on every pass is never
// identical to the previous one.
func FixedPoint[T any](initial T, eq func(T, T) bool, f func(T) (T, error)) (T, error) {
	return FixedPointWithFuel(DefaultFuel, initial, eq, f)
}

// FixedPointWithFuel is FixedPoint with an explicit bound on the number of applications of f
func FixedPointWithFuel[T any](fuel int, initial T, eq func(T, T) bool, f func(T) (T, error)) (T, error) {
	current := initial
	for ; fuel > 0; fuel-- {
		next, err := f(current)
		if err != nil {
			return current, err
		}
		if eq(current, next) {
			return next, nil
		}
		current = next
	}
	return current, ErrNoFixedPoint
}
