package sorted

import (
	"bytes"
	"sort"
)

// NotFound is the index reported alongside ok == false by Find.
const NotFound = -1

// Keys is a read-only, indexable sequence of byte-string keys.
type Keys interface {
	// Len returns the number of keys.
	Len() int
	// Key returns the i-th key. The returned slice must not be modified.
	Key(i int) []byte
}

// LowerBound returns the index of the first key >= key, or keys.Len() if
// every key is smaller.
func LowerBound(keys Keys, key []byte) int {
	return sort.Search(keys.Len(), func(i int) bool {
		return bytes.Compare(keys.Key(i), key) >= 0
	})
}

// UpperBound returns the index of the first key > key, or keys.Len() if no
// key is greater.
func UpperBound(keys Keys, key []byte) int {
	return sort.Search(keys.Len(), func(i int) bool {
		return bytes.Compare(keys.Key(i), key) > 0
	})
}

// Find searches keys for an exact match.
//
// Parameters:
//   - keys: Non-decreasing key sequence
//   - key: Key to search for
//
// Returns:
//   - int: Index of a matching key (the first of a duplicate run), or NotFound
//   - bool: Whether the key was found
func Find(keys Keys, key []byte) (int, bool) {
	i := LowerBound(keys, key)
	if i < keys.Len() && bytes.Equal(keys.Key(i), key) {
		return i, true
	}

	return NotFound, false
}

// FindAll returns the half-open range [lo, hi) of every key equal to key.
//
// The range is located with two bounded binary searches, so the cost stays
// O(log n) however long the duplicate run is. An absent key yields an empty
// range positioned where the key would be inserted.
func FindAll(keys Keys, key []byte) (lo, hi int) {
	lo = LowerBound(keys, key)
	n := keys.Len()
	if lo == n || !bytes.Equal(keys.Key(lo), key) {
		return lo, lo
	}

	// Search only the tail that can still hold equal keys.
	hi = lo + 1 + sort.Search(n-lo-1, func(i int) bool {
		return !bytes.Equal(keys.Key(lo+1+i), key)
	})

	return lo, hi
}

// FindPrefixRange returns the half-open range [lo, hi) of keys that start
// with prefix.
//
// lo is the lower bound of prefix. hi is the first key that is greater than
// prefix without starting with it, which is where the exclusive successor of
// the prefix would be inserted. An empty prefix matches every key.
func FindPrefixRange(keys Keys, prefix []byte) (lo, hi int) {
	lo = LowerBound(keys, prefix)
	n := keys.Len()
	hi = lo + sort.Search(n-lo, func(i int) bool {
		return !bytes.HasPrefix(keys.Key(lo+i), prefix)
	})

	return lo, hi
}

// IsSorted reports whether keys are non-decreasing.
func IsSorted(keys Keys) bool {
	return firstUnsorted(keys) < 0
}

// firstUnsorted returns the first index i with keys[i-1] > keys[i], or -1.
func firstUnsorted(keys Keys) int {
	for i := 1; i < keys.Len(); i++ {
		if bytes.Compare(keys.Key(i-1), keys.Key(i)) > 0 {
			return i
		}
	}

	return -1
}

// Strings adapts a []string to Keys.
type Strings []string

func (s Strings) Len() int { return len(s) }

func (s Strings) Key(i int) []byte { return []byte(s[i]) }
