package datamanager

import (
	"bytes"

	"github.com/arloliu/mozcdata/sorted"
)

// ReadingCorrection maps a common misreading to its correct reading.
type ReadingCorrection struct {
	Value      []byte
	Error      []byte
	Correction []byte
}

// ReadingCorrections is the reading correction table.
type ReadingCorrections struct {
	items sorted.StringArray
}

// Len returns the number of corrections.
func (r ReadingCorrections) Len() int {
	return r.items.Records()
}

// Item returns correction i.
func (r ReadingCorrections) Item(i int) ReadingCorrection {
	return ReadingCorrection{
		Value:      r.items.Field(i, 0),
		Error:      r.items.Field(i, 1),
		Correction: r.items.Field(i, 2),
	}
}

// All returns every correction in table order.
func (r ReadingCorrections) All() []ReadingCorrection {
	out := make([]ReadingCorrection, r.Len())
	for i := range out {
		out[i] = r.Item(i)
	}

	return out
}

// SymbolEntry is one symbol rewriter token.
type SymbolEntry struct {
	Key         []byte
	Value       []byte
	Description []byte
}

// SymbolDictionary is the symbol rewriter dictionary, sorted by reading.
type SymbolDictionary struct {
	tokens sorted.StringArray
}

// Len returns the number of symbol entries.
func (d SymbolDictionary) Len() int {
	return d.tokens.Records()
}

// Entry returns entry i.
func (d SymbolDictionary) Entry(i int) SymbolEntry {
	return SymbolEntry{
		Key:         d.tokens.Field(i, 0),
		Value:       d.tokens.Field(i, 1),
		Description: d.tokens.Field(i, 2),
	}
}

// Lookup returns every symbol registered under reading key.
func (d SymbolDictionary) Lookup(key []byte) []SymbolEntry {
	lo, hi := sorted.FindAll(d.tokens.Keys(), key)
	if lo >= hi {
		return nil
	}

	out := make([]SymbolEntry, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, d.Entry(i))
	}

	return out
}

// CounterSuffixes is the sorted list of counter suffix words.
type CounterSuffixes struct {
	words sorted.StringArray
}

// Len returns the number of counter suffixes.
func (c CounterSuffixes) Len() int {
	return c.words.Records()
}

// At returns counter suffix i.
func (c CounterSuffixes) At(i int) []byte {
	return c.words.Key(i)
}

// Contains reports whether word is a counter suffix.
func (c CounterSuffixes) Contains(word []byte) bool {
	_, ok := sorted.Find(c.words.Keys(), word)
	return ok
}

// HasPrefix reports whether any counter suffix starts with prefix.
func (c CounterSuffixes) HasPrefix(prefix []byte) bool {
	keys := c.words.Keys()
	i := sorted.LowerBound(keys, prefix)

	return i < keys.Len() && bytes.HasPrefix(keys.Key(i), prefix)
}
