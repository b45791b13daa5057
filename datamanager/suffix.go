package datamanager

import (
	"fmt"

	"github.com/arloliu/mozcdata/dataset"
	"github.com/arloliu/mozcdata/errs"
	"github.com/arloliu/mozcdata/sorted"
)

// Suffix token record layout.
const (
	suffixLIDOffset  = 0
	suffixRIDOffset  = 2
	suffixCostOffset = 4
)

// SuffixEntry is one suffix dictionary token. Key and Value alias the dataset
// buffer and must not be modified.
type SuffixEntry struct {
	Key   []byte
	Value []byte
	LID   uint16
	RID   uint16
	Cost  int16
}

// SuffixDictionary is the sorted dictionary of functional suffixes.
type SuffixDictionary struct {
	keys   sorted.StringArray
	values sorted.StringArray
	tokens dataset.View
}

func newSuffixDictionary(keys, values sorted.StringArray, tokens dataset.View) (SuffixDictionary, error) {
	if keys.Records() != values.Records() || keys.Records() != tokens.Len() {
		return SuffixDictionary{}, fmt.Errorf("%w: suffix dictionary has %d keys, %d values, %d tokens",
			errs.ErrInconsistentSections, keys.Records(), values.Records(), tokens.Len())
	}

	return SuffixDictionary{keys: keys, values: values, tokens: tokens}, nil
}

// Len returns the number of entries.
func (d SuffixDictionary) Len() int {
	return d.keys.Records()
}

// Entry returns entry i.
//
// Panics with a ContractViolation if i is outside [0, Len()).
func (d SuffixDictionary) Entry(i int) SuffixEntry {
	return SuffixEntry{
		Key:   d.keys.Key(i),
		Value: d.values.Key(i),
		LID:   d.tokens.Uint16(i, suffixLIDOffset),
		RID:   d.tokens.Uint16(i, suffixRIDOffset),
		Cost:  d.tokens.Int16(i, suffixCostOffset),
	}
}

// Lookup returns every entry whose key equals key.
func (d SuffixDictionary) Lookup(key []byte) []SuffixEntry {
	return d.entries(sorted.FindAll(d.keys.Keys(), key))
}

// PrefixLookup returns every entry whose key starts with prefix.
func (d SuffixDictionary) PrefixLookup(prefix []byte) []SuffixEntry {
	return d.entries(sorted.FindPrefixRange(d.keys.Keys(), prefix))
}

func (d SuffixDictionary) entries(lo, hi int) []SuffixEntry {
	if lo >= hi {
		return nil
	}

	out := make([]SuffixEntry, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, d.Entry(i))
	}

	return out
}
