package util

import "strconv"

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// CanonicalName returns the i-th name of the sequence a, b, ..., z, a0, a1, a2, ...
func CanonicalName(i int) string {
	if i < len(alphabet) {
		return alphabet[i : i+1]
	}
	return "a" + strconv.Itoa(i-len(alphabet))
}
